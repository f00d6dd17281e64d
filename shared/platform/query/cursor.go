package query

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// SortKey es un campo del orden efectivo.
type SortKey struct {
	Field     string    `json:"f"`
	Direction Direction `json:"d"`
}

// Cursor guarda la clave de orden de la última fila vista.
// Values va alineado con Order.
type Cursor struct {
	Order  []SortKey
	Values []any
}

// Matches indica si el cursor se generó con el mismo orden.
func (c Cursor) Matches(order []SortKey) bool {
	if len(c.Order) != len(order) || len(c.Values) != len(order) {
		return false
	}
	for i := range order {
		if c.Order[i] != order[i] {
			return false
		}
	}
	return true
}

// CursorFrom construye el cursor de una fila para el orden dado.
func CursorFrom(row Record, order []SortKey) *Cursor {
	c := &Cursor{Order: append([]SortKey(nil), order...), Values: make([]any, len(order))}
	for i, k := range order {
		v, _ := row.Field(k.Field)
		c.Values[i] = Normalize(v)
	}
	return c
}

// ---------------- Formato del token ----------------

// Los valores viajan con su tipo para que el adaptador reciba time.Time,
// int64 o decimal en lugar de cadenas.
type wireValue struct {
	Kind  string          `json:"k"`
	Value json.RawMessage `json:"v,omitempty"`
}

type wireCursor struct {
	Order  []SortKey   `json:"o"`
	Values []wireValue `json:"v"`
}

// EncodeCursor serializa el cursor como base64url(JSON).
func EncodeCursor(c Cursor) string {
	w := wireCursor{Order: c.Order, Values: make([]wireValue, 0, len(c.Values))}
	for _, v := range c.Values {
		w.Values = append(w.Values, encodeValue(Normalize(v)))
	}
	b, _ := json.Marshal(w)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor es el inverso de EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var w wireCursor
	if err := json.Unmarshal(raw, &w); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if len(w.Order) == 0 || len(w.Order) != len(w.Values) {
		return Cursor{}, ErrInvalidCursor
	}

	c := Cursor{Order: w.Order, Values: make([]any, len(w.Values))}
	for i, wv := range w.Values {
		v, err := decodeValue(wv)
		if err != nil {
			return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		c.Values[i] = v
	}
	return c, nil
}

func encodeValue(v any) wireValue {
	var kind string
	switch t := v.(type) {
	case nil:
		return wireValue{Kind: "n"}
	case bool:
		kind = "b"
	case int64:
		kind = "i"
	case float64:
		kind = "f"
	case time.Time:
		kind = "t"
		v = t.UTC().Format(time.RFC3339Nano)
	case decimal.Decimal:
		kind = "d"
		v = t.String()
	case string:
		kind = "s"
	default:
		kind = "s"
		v = fmt.Sprint(t)
	}
	b, _ := json.Marshal(v)
	return wireValue{Kind: kind, Value: b}
}

func decodeValue(w wireValue) (any, error) {
	switch w.Kind {
	case "n":
		return nil, nil
	case "b":
		var b bool
		err := json.Unmarshal(w.Value, &b)
		return b, err
	case "i":
		var i int64
		err := json.Unmarshal(w.Value, &i)
		return i, err
	case "f":
		var f float64
		err := json.Unmarshal(w.Value, &f)
		return f, err
	case "t":
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return nil, err
		}
		return time.Parse(time.RFC3339Nano, s)
	case "d":
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return nil, err
		}
		return decimal.NewFromString(s)
	case "s":
		var s string
		err := json.Unmarshal(w.Value, &s)
		return s, err
	default:
		return nil, fmt.Errorf("unknown value kind %q", w.Kind)
	}
}
