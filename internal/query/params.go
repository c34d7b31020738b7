package query

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query string parameters.
//
// Values that are nil, nil pointers or empty strings are left out when encoding.
type Params []Param

func (p Params) With(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode the parameters as a query string, keeping insertion order
func (p Params) Encode() string {
	var sb strings.Builder
	for _, param := range p {
		value, ok := stringValue(param.Value)
		if !ok {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(value))
	}
	return sb.String()
}

func stringValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	// Stringers are checked at every level, so pointer receivers are found too
	rv := reflect.ValueOf(value)
	for {
		isRef := rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface
		if isRef && rv.IsNil() {
			return "", false
		}
		if stringer, ok := rv.Interface().(fmt.Stringer); ok {
			s := stringer.String()
			return s, s != ""
		}
		if !isRef {
			break
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s, s != ""
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}

	s := fmt.Sprint(rv.Interface())
	return s, s != ""
}
