package domain

import (
	"encoding/json"
	"math/big"
	"reflect"
)

// Text extracts the text of a string or byte slice value. Bytes are decoded
// as UTF-8 with each invalid byte replaced by U+FFFD, so decoding never fails.
func Text(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string([]rune(string(v))), true
	default:
		return "", false
	}
}

// IsText reports whether value is a string or byte slice.
func IsText(value interface{}) bool {
	_, ok := Text(value)
	return ok
}

// Truthy reports the truthiness of an arbitrary value: nil, false, zero
// numbers and empty strings, slices, maps, arrays and channels are false,
// nil pointers and funcs are false, everything else is true.
func Truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f != 0
		}
		return v != ""
	case *Array:
		return v != nil && v.Len() > 0
	case Array:
		return v.Len() > 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		if rv.Kind() != reflect.Array && rv.Kind() != reflect.String && rv.IsNil() {
			return false
		}
		return rv.Len() > 0
	case reflect.Ptr, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return !rv.IsNil()
	default:
		return true
	}
}

// ParseInteger parses a base 10 integer of any size: an optional sign
// followed by ASCII digits, where single underscores may separate digits.
func ParseInteger(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	digits := make([]byte, 0, len(s))
	i := 0
	if s[0] == '+' || s[0] == '-' {
		digits = append(digits, s[0])
		i++
	}
	prevDigit := false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
			digits = append(digits, c)
			prevDigit = true
		case c == '_' && prevDigit && i+1 < len(s):
			prevDigit = false
		default:
			return nil, false
		}
	}
	if !prevDigit {
		return nil, false
	}
	n, ok := new(big.Int).SetString(string(digits), 10)
	return n, ok
}

// IsNumber reports whether value is a Go integer or floating point number.
// Booleans are not numbers.
func IsNumber(value interface{}) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Float converts a Go integer or floating point number to float64.
func Float(value interface{}) (float64, bool) {
	return floatValue(reflect.ValueOf(value))
}
