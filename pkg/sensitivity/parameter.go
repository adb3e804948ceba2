package sensitivity

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/market"
)

// ParameterSensitivity is the derivative of a value with respect to one
// curve's node parameters, expressed in a settlement currency. Index i of
// the vector corresponds to parameter i of the owning curve; no
// re-indexing happens at aggregation boundaries.
type ParameterSensitivity struct {
	CurveName   curve.Name
	Currency    market.Currency
	Sensitivity []float64
}

// Key identifies the (curve, settlement currency) pair a vector belongs to.
type Key struct {
	CurveName curve.Name
	Currency  market.Currency
}

// Key returns the grouping key of the sensitivity.
func (p ParameterSensitivity) Key() Key {
	return Key{CurveName: p.CurveName, Currency: p.Currency}
}

// MultipliedBy returns a scaled copy.
func (p ParameterSensitivity) MultipliedBy(factor float64) ParameterSensitivity {
	scaled := append([]float64(nil), p.Sensitivity...)
	floats.Scale(factor, scaled)
	return ParameterSensitivity{CurveName: p.CurveName, Currency: p.Currency, Sensitivity: scaled}
}

// ParameterSensitivities is a collection of per-curve vectors keyed by
// (curve, settlement currency). Iteration order is normalized by key so
// results are reproducible, but callers must compare by key, not position.
type ParameterSensitivities struct {
	list []ParameterSensitivity
}

// NewParameterSensitivities builds a collection, merging entries that share
// a key.
func NewParameterSensitivities(items ...ParameterSensitivity) (ParameterSensitivities, error) {
	var out ParameterSensitivities
	for _, it := range items {
		if err := out.add(it); err != nil {
			return ParameterSensitivities{}, err
		}
	}
	out.sortByKey()
	return out, nil
}

func (ps *ParameterSensitivities) add(item ParameterSensitivity) error {
	for i := range ps.list {
		if ps.list[i].Key() == item.Key() {
			if len(ps.list[i].Sensitivity) != len(item.Sensitivity) {
				return fmt.Errorf("curve %s: %w: have %d, want %d",
					item.CurveName, curve.ErrParameterLength, len(item.Sensitivity), len(ps.list[i].Sensitivity))
			}
			merged := append([]float64(nil), ps.list[i].Sensitivity...)
			floats.Add(merged, item.Sensitivity)
			ps.list[i].Sensitivity = merged
			return nil
		}
	}
	copied := item
	copied.Sensitivity = append([]float64(nil), item.Sensitivity...)
	ps.list = append(ps.list, copied)
	return nil
}

func (ps *ParameterSensitivities) sortByKey() {
	sort.Slice(ps.list, func(i, j int) bool {
		a, b := ps.list[i], ps.list[j]
		if a.CurveName != b.CurveName {
			return a.CurveName < b.CurveName
		}
		return a.Currency < b.Currency
	})
}

// List returns the sensitivities; callers must not mutate the vectors.
func (ps ParameterSensitivities) List() []ParameterSensitivity { return ps.list }

// Size returns the number of (curve, currency) entries.
func (ps ParameterSensitivities) Size() int { return len(ps.list) }

// Find returns the vector for a key, if present.
func (ps ParameterSensitivities) Find(key Key) (ParameterSensitivity, bool) {
	for _, p := range ps.list {
		if p.Key() == key {
			return p, true
		}
	}
	return ParameterSensitivity{}, false
}

// CombinedWith merges two collections, summing vectors that share a key.
func (ps ParameterSensitivities) CombinedWith(other ParameterSensitivities) (ParameterSensitivities, error) {
	return NewParameterSensitivities(append(append([]ParameterSensitivity(nil), ps.list...), other.list...)...)
}

// MultipliedBy returns a scaled copy of every vector.
func (ps ParameterSensitivities) MultipliedBy(factor float64) ParameterSensitivities {
	out := ParameterSensitivities{list: make([]ParameterSensitivity, 0, len(ps.list))}
	for _, p := range ps.list {
		out.list = append(out.list, p.MultipliedBy(factor))
	}
	return out
}

// EqualWithTolerance reports whether both collections hold the same keys
// with element-wise differences within tol.
func (ps ParameterSensitivities) EqualWithTolerance(other ParameterSensitivities, tol float64) bool {
	if len(ps.list) != len(other.list) {
		return false
	}
	for _, p := range ps.list {
		q, ok := other.Find(p.Key())
		if !ok || len(p.Sensitivity) != len(q.Sensitivity) {
			return false
		}
		for i := range p.Sensitivity {
			if math.Abs(p.Sensitivity[i]-q.Sensitivity[i]) > tol {
				return false
			}
		}
	}
	return true
}

// Total sums every element across all vectors, a quick aggregate used in
// risk summaries.
func (ps ParameterSensitivities) Total() float64 {
	total := 0.0
	for _, p := range ps.list {
		total += floats.Sum(p.Sensitivity)
	}
	return total
}
