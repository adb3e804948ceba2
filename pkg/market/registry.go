package market

// Lookup of the common benchmark definitions by name, used when wiring
// curve-set configuration files to index definitions.

var iborIndices = map[string]IborIndex{
	Euribor3M.IndexName:  Euribor3M,
	Euribor6M.IndexName:  Euribor6M,
	USDLibor3M.IndexName: USDLibor3M,
}

var overnightIndices = map[string]OvernightIndex{
	Sofr.IndexName:  Sofr,
	Estr.IndexName:  Estr,
	Tonar.IndexName: Tonar,
}

var priceIndices = map[string]PriceIndex{
	EUHICP.IndexName: EUHICP,
	USCPIU.IndexName: USCPIU,
}

// IborIndexByName resolves a term index definition by name.
func IborIndexByName(name string) (IborIndex, bool) {
	i, ok := iborIndices[name]
	return i, ok
}

// OvernightIndexByName resolves an overnight index definition by name.
func OvernightIndexByName(name string) (OvernightIndex, bool) {
	i, ok := overnightIndices[name]
	return i, ok
}

// PriceIndexByName resolves a price index definition by name.
func PriceIndexByName(name string) (PriceIndex, bool) {
	i, ok := priceIndices[name]
	return i, ok
}
