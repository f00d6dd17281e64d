package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Normalize reduce un valor de campo a un conjunto pequeño de tipos:
// nil, bool, int64, float64, string, time.Time o decimal.Decimal.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return normalizeUint(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return normalizeUint(t)
	case float32:
		return float64(t)
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case *int64:
		if t == nil {
			return nil
		}
		return *t
	case *bool:
		if t == nil {
			return nil
		}
		return *t
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	case fmt.Stringer:
		if d, ok := v.(decimal.Decimal); ok {
			return d
		}
		if tm, ok := v.(time.Time); ok {
			return tm
		}
		return t.String()
	default:
		return v
	}
}

// normalizeUint pasa a decimal lo que no cabe en int64.
func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return decimal.RequireFromString(strconv.FormatUint(u, 10))
	}
	return int64(u)
}

// Compare ordena dos valores de campo: -1, 0 o 1. nil va primero.
// Los tipos mezclados se comparan convirtiendo el lado textual.
func Compare(a, b any) int {
	a, b = Normalize(a), Normalize(b)

	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return cmpOrdered(x, y)
		case float64:
			return cmpOrdered(float64(x), y)
		case decimal.Decimal:
			return decimal.NewFromInt(x).Cmp(y)
		case string:
			if f, err := strconv.ParseFloat(y, 64); err == nil {
				return cmpOrdered(float64(x), f)
			}
		}
	case float64:
		switch y := b.(type) {
		case int64:
			return cmpOrdered(x, float64(y))
		case float64:
			return cmpOrdered(x, y)
		case decimal.Decimal:
			return decimal.NewFromFloat(x).Cmp(y)
		case string:
			if f, err := strconv.ParseFloat(y, 64); err == nil {
				return cmpOrdered(x, f)
			}
		}
	case decimal.Decimal:
		switch y := b.(type) {
		case decimal.Decimal:
			return x.Cmp(y)
		case int64:
			return x.Cmp(decimal.NewFromInt(y))
		case float64:
			return x.Cmp(decimal.NewFromFloat(y))
		case string:
			if d, err := decimal.NewFromString(y); err == nil {
				return x.Cmp(d)
			}
		}
	case time.Time:
		switch y := b.(type) {
		case time.Time:
			return x.Compare(y)
		case string:
			if t, ok := parseTime(y); ok {
				return x.Compare(t)
			}
		}
	case bool:
		switch y := b.(type) {
		case bool:
			return cmpBool(x, y)
		case string:
			return cmpBool(x, ParseBool(y))
		case int64:
			return cmpBool(x, y != 0)
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
		// lado textual a la izquierda: invertimos
		return -Compare(b, a)
	}

	return strings.Compare(FormatValue(a), FormatValue(b))
}

// Equal es Compare(a, b) == 0.
func Equal(a, b any) bool { return Compare(a, b) == 0 }

// ParseBool sigue las reglas de un checkbox HTML: 1, true, on y yes son verdadero.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type ordered interface {
	~int64 | ~float64
}

func cmpOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
