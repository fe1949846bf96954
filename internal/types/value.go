package types

import (
	"time"
)

func AsBool(v Value) bool {
	bv, ok := v.(BooleanValue)
	if !ok {
		return v.V().(bool)
	}

	return bool(bv)
}

func AsInt32(v Value) int32 {
	iv, ok := v.(IntegerValue)
	if !ok {
		return v.V().(int32)
	}

	return int32(iv)
}

func AsInt64(v Value) int64 {
	biv, ok := v.(BigintValue)
	if ok {
		return int64(biv)
	}

	iv, ok := v.(IntegerValue)
	if ok {
		return int64(iv)
	}

	return v.V().(int64)
}

func AsFloat64(v Value) float64 {
	dv, ok := v.(DoubleValue)
	if !ok {
		return v.V().(float64)
	}

	return float64(dv)
}

func AsTime(v Value) time.Time {
	tv, ok := v.(TimestampValue)
	if !ok {
		return v.V().(time.Time)
	}

	return time.Time(tv)
}

func AsString(v Value) string {
	tv, ok := v.(TextValue)
	if !ok {
		return v.V().(string)
	}

	return string(tv)
}

func AsByteSlice(v Value) []byte {
	bv, ok := v.(BlobValue)
	if !ok {
		return v.V().([]byte)
	}

	return bv
}

func AsArray(v Value) Array {
	return v.V().(Array)
}

func AsObject(v Value) Object {
	return v.V().(Object)
}

func IsNull(v Value) bool {
	return v == nil || v.Type() == TypeNull
}
