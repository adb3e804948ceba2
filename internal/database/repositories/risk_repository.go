// Package repositories provides data access over the service database.
package repositories

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/internal/database"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// RiskRepository persists risk run results and loads stored fixings.
type RiskRepository struct {
	db *database.DB
}

// NewRiskRepository creates a repository over the given database.
func NewRiskRepository(db *database.DB) *RiskRepository {
	return &RiskRepository{db: db}
}

const dateLayout = "2006-01-02"

// SaveRun stores one revaluation: per-currency present values and the
// flattened parameter sensitivities.
func (r *RiskRepository) SaveRun(valuationDate time.Time, pvByCurrency map[market.Currency]float64, sens sensitivity.ParameterSensitivities) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin risk run: %w", err)
	}
	defer tx.Rollback()

	runAt := time.Now().UTC().Format(time.RFC3339)
	var runID int64
	for ccy, pv := range pvByCurrency {
		res, err := tx.Exec(
			`INSERT INTO risk_runs (run_at, valuation_date, currency, present_value) VALUES (?, ?, ?, ?)`,
			runAt, valuationDate.Format(dateLayout), string(ccy), pv,
		)
		if err != nil {
			return fmt.Errorf("insert risk run: %w", err)
		}
		if runID == 0 {
			runID, _ = res.LastInsertId()
		}
	}

	for _, ps := range sens.List() {
		for i, v := range ps.Sensitivity {
			if _, err := tx.Exec(
				`INSERT INTO risk_sensitivities (run_id, curve_name, currency, parameter_index, sensitivity)
				 VALUES (?, ?, ?, ?, ?)`,
				runID, string(ps.CurveName), string(ps.Currency), i, v,
			); err != nil {
				return fmt.Errorf("insert sensitivity: %w", err)
			}
		}
	}

	return tx.Commit()
}

// LoadFixings reads all stored fixing series keyed by index name.
func (r *RiskRepository) LoadFixings() (map[string]market.TimeSeries, error) {
	rows, err := r.db.Query(`SELECT index_name, fixing_date, value FROM fixings ORDER BY index_name, fixing_date`)
	if err != nil {
		return nil, fmt.Errorf("load fixings: %w", err)
	}
	defer rows.Close()

	points := make(map[string]map[time.Time]float64)
	for rows.Next() {
		var indexName, dateStr string
		var value float64
		if err := rows.Scan(&indexName, &dateStr, &value); err != nil {
			return nil, fmt.Errorf("scan fixing: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("fixing date %q: %w", dateStr, err)
		}
		if points[indexName] == nil {
			points[indexName] = make(map[time.Time]float64)
		}
		points[indexName][date] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]market.TimeSeries, len(points))
	for name, pts := range points {
		out[name] = market.NewTimeSeries(pts)
	}
	return out, nil
}

// SaveFixing upserts one fixing.
func (r *RiskRepository) SaveFixing(indexName string, date time.Time, value float64) error {
	_, err := r.db.Exec(
		`INSERT INTO fixings (index_name, fixing_date, value) VALUES (?, ?, ?)
		 ON CONFLICT(index_name, fixing_date) DO UPDATE SET value = excluded.value`,
		indexName, date.Format(dateLayout), value,
	)
	if err != nil {
		return fmt.Errorf("save fixing: %w", err)
	}
	return nil
}
