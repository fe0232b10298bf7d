package msgpackstrict

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// parseDefaultLiteral parses a struct tag's `default=literal` text into a
// value of goType. An empty literal (bare `default`) yields goType's zero
// value. A non-empty literal is supported for the primitive kinds only; for
// any other shape (Nullable included) only a bare `default` is accepted,
// yielding the zero value (a nil pointer for Nullable).
func parseDefaultLiteral(literal string, goType reflect.Type) (reflect.Value, error) {
	if literal == "" {
		return reflect.Zero(goType), nil
	}

	if kind, ok := primitiveKindOf(goType); ok {
		return parsePrimitiveLiteral(literal, kind, goType)
	}

	return reflect.Value{}, fmt.Errorf("default literal %q not supported for type %s", literal, goType)
}

func parsePrimitiveLiteral(literal string, kind Kind, goType reflect.Type) (reflect.Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b).Convert(goType), nil
	case KindInt8, KindInt16, KindInt32, KindInt64:
		i, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(goType).Elem()
		v.SetInt(i)
		return v, nil
	case KindUint8, KindUint16, KindUint32, KindUint64:
		u, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(goType).Elem()
		v.SetUint(u)
		return v, nil
	case KindFloat32, KindFloat64:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(goType).Elem()
		v.SetFloat(f)
		return v, nil
	case KindString:
		return reflect.ValueOf(literal).Convert(goType), nil
	case KindDecimal:
		return reflect.ValueOf(Decimal(literal)).Convert(goType), nil
	case KindTimestamp:
		t, err := time.Parse(time.RFC3339Nano, literal)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t).Convert(goType), nil
	case KindBytes:
		return reflect.ValueOf([]byte(literal)).Convert(goType), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported default kind %s", kind)
	}
}
