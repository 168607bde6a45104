package firestore

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Value is the Firestore REST representation of a single field value: a
// tagged variant where exactly one member is set. Pointer members keep
// zero values (false, "", 0) from being dropped by omitempty.
type Value struct {
	NullValue      *string     `json:"nullValue,omitempty"`
	StringValue    *string     `json:"stringValue,omitempty"`
	IntegerValue   *string     `json:"integerValue,omitempty"`
	DoubleValue    *float64    `json:"doubleValue,omitempty"`
	BooleanValue   *bool       `json:"booleanValue,omitempty"`
	TimestampValue *string     `json:"timestampValue,omitempty"`
	ArrayValue     *ArrayValue `json:"arrayValue,omitempty"`
	MapValue       *MapValue   `json:"mapValue,omitempty"`
}

// ArrayValue holds an ordered sequence of values.
type ArrayValue struct {
	Values []Value `json:"values"`
}

// MapValue holds a nested document.
type MapValue struct {
	Fields map[string]Value `json:"fields"`
}

// nullEnum is the JSON enum literal Firestore uses for null fields.
const nullEnum = "NULL_VALUE"

// ErrUnsupportedType is returned when a Go value falls outside the closed
// set of types the codec round-trips.
var ErrUnsupportedType = errors.New("unsupported value type for document encoding")

// EncodeFields converts a plain Go document into Firestore's typed field
// representation. The codec is a total function over a closed set of
// semantic types: nil, string, bool, integers, float64, time.Time, ordered
// sequences ([]any) and nested documents (map[string]any). Integers are
// encoded as integerValue (a string-wrapped int64 on the wire) and never
// collapse into doubles.
func EncodeFields(doc map[string]any) (map[string]Value, error) {
	fields := make(map[string]Value, len(doc))
	for key, v := range doc {
		val, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields[key] = val
	}
	return fields, nil
}

func encodeValue(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		null := nullEnum
		return Value{NullValue: &null}, nil
	case string:
		return Value{StringValue: &t}, nil
	case bool:
		return Value{BooleanValue: &t}, nil
	case int:
		return encodeInt(int64(t)), nil
	case int32:
		return encodeInt(int64(t)), nil
	case int64:
		return encodeInt(t), nil
	case float64:
		return Value{DoubleValue: &t}, nil
	case time.Time:
		ts := t.UTC().Format(time.RFC3339Nano)
		return Value{TimestampValue: &ts}, nil
	case []any:
		values := make([]Value, 0, len(t))
		for i, elem := range t {
			val, err := encodeValue(elem)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			values = append(values, val)
		}
		return Value{ArrayValue: &ArrayValue{Values: values}}, nil
	case map[string]any:
		fields, err := EncodeFields(t)
		if err != nil {
			return Value{}, err
		}
		return Value{MapValue: &MapValue{Fields: fields}}, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// DecodeFields is the inverse of EncodeFields: it converts Firestore typed
// fields back into a plain Go document. Integer values come back as int64
// and timestamps as time.Time, so decode∘encode is the identity over the
// codec's type set.
func DecodeFields(fields map[string]Value) (map[string]any, error) {
	doc := make(map[string]any, len(fields))
	for key, val := range fields {
		v, err := decodeValue(val)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		doc[key] = v
	}
	return doc, nil
}

func decodeValue(val Value) (any, error) {
	switch {
	case val.NullValue != nil:
		return nil, nil
	case val.StringValue != nil:
		return *val.StringValue, nil
	case val.IntegerValue != nil:
		n, err := strconv.ParseInt(*val.IntegerValue, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed integerValue %q: %w", *val.IntegerValue, err)
		}
		return n, nil
	case val.DoubleValue != nil:
		return *val.DoubleValue, nil
	case val.BooleanValue != nil:
		return *val.BooleanValue, nil
	case val.TimestampValue != nil:
		ts, err := time.Parse(time.RFC3339Nano, *val.TimestampValue)
		if err != nil {
			return nil, fmt.Errorf("malformed timestampValue %q: %w", *val.TimestampValue, err)
		}
		return ts.UTC(), nil
	case val.ArrayValue != nil:
		out := make([]any, 0, len(val.ArrayValue.Values))
		for i, elem := range val.ArrayValue.Values {
			v, err := decodeValue(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	case val.MapValue != nil:
		return DecodeFields(val.MapValue.Fields)
	default:
		return nil, fmt.Errorf("%w: empty value variant", ErrUnsupportedType)
	}
}

func encodeInt(n int64) Value {
	s := strconv.FormatInt(n, 10)
	return Value{IntegerValue: &s}
}
