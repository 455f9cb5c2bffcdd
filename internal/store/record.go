package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// IDKey is the record key holding the store-assigned id.
const IDKey = "id"

// Record is a single stored entity: string keys mapped to strings, numbers,
// or nested Records. Numbers read back from disk are json.Number.
type Record map[string]any

// Clone returns a deep copy of r. Nested maps are copied; leaves are shared
// because they are immutable values.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		switch nested := v.(type) {
		case Record:
			out[k] = nested.Clone()
		case map[string]any:
			out[k] = map[string]any(Record(nested).Clone())
		default:
			out[k] = v
		}
	}
	return out
}

// ID returns the record's id if it holds an integral number.
func (r Record) ID() (int, bool) {
	v, ok := r[IDKey]
	if !ok {
		return 0, false
	}
	return AsInt(v)
}

// validateRecord checks that every leaf is a string or a number,
// descending into nested maps. It returns the dotted path of the first
// offending key.
func validateRecord(r map[string]any, prefix string) error {
	for k, v := range r {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch val := v.(type) {
		case Record:
			if err := validateRecord(val, path); err != nil {
				return err
			}
		case map[string]any:
			if err := validateRecord(val, path); err != nil {
				return err
			}
		default:
			if !isLeaf(v) {
				return fmt.Errorf("field %q has type %T: values may only be strings or numbers", path, v)
			}
		}
	}
	return nil
}

func isLeaf(v any) bool {
	switch n := v.(type) {
	case string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	}
	return false
}

// AsInt converts a numeric record value to int. Non-integral or
// non-numeric values report false.
func AsInt(v any) (int, bool) {
	n, ok := AsInt64(v)
	if !ok || n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// AsInt64 converts a numeric record value to int64.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
