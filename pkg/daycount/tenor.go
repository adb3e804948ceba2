package daycount

import (
	"fmt"
	"strconv"
	"strings"
)

// TenorYears converts tenor strings like "1W", "3M", "10Y" to year fractions.
func TenorYears(tenor string) (float64, error) {
	s := strings.TrimSpace(strings.ToUpper(tenor))
	if s == "" {
		return 0, fmt.Errorf("empty tenor")
	}
	suffix := s[len(s)-1:]
	if n, err := strconv.Atoi(s[:len(s)-1]); err == nil {
		switch suffix {
		case "D":
			return float64(n) / 365.0, nil
		case "W":
			return float64(n) * 7.0 / 365.0, nil
		case "M":
			return float64(n) / 12.0, nil
		case "Y":
			return float64(n), nil
		}
	}
	// Bare numbers are read as years.
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("invalid tenor %q", tenor)
}
