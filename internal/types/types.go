package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrFieldNotFound must be returned by object implementations, when calling the GetByField method and
	// the field doesn't exist.
	ErrFieldNotFound = errors.New("field not found")

	// ErrValueNotFound must be returned by array implementations, when calling the GetByIndex method and
	// the index doesn't exist.
	ErrValueNotFound = errors.New("value not found")
)

// Type represents a type supported by records and document trees.
type Type uint8

// List of supported types.
const (
	// TypeAny denotes the absence of type
	TypeAny Type = iota
	TypeNull
	TypeBoolean
	TypeInteger
	TypeBigint
	TypeDouble
	TypeTimestamp
	TypeText
	TypeBlob
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeBigint:
		return "bigint"
	case TypeDouble:
		return "double"
	case TypeTimestamp:
		return "timestamp"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// IsNumber returns true if t is either an integer or a float.
func (t Type) IsNumber() bool {
	return t == TypeInteger || t == TypeBigint || t == TypeDouble
}

func (t Type) IsInteger() bool {
	return t == TypeInteger || t == TypeBigint
}

// IsField reports whether t can be the type of a schema field.
// Null, arrays and objects only exist inside document trees.
func (t Type) IsField() bool {
	switch t {
	case TypeBoolean, TypeInteger, TypeBigint, TypeDouble, TypeTimestamp, TypeText, TypeBlob:
		return true
	}

	return false
}

// IsAny returns whether this is type is Any or a real type
func (t Type) IsAny() bool {
	return t == TypeAny
}

// A Value stores encoded data alongside its type.
type Value interface {
	Type() Type
	V() any
	String() string
	MarshalJSON() ([]byte, error)
	CastAs(target Type) (Value, error)
	EQ(other Value) (bool, error)
}

// An Object is a group of ordered key value pairs.
type Object interface {
	// Iterate goes through all the fields of the object and calls the given function by passing each one of them.
	// If the given function returns an error, the iteration stops.
	Iterate(fn func(field string, value Value) error) error
	// GetByField returns a value by field name.
	// Must return ErrFieldNotFound if the field doesn't exist.
	GetByField(field string) (Value, error)
	// Len returns the number of fields.
	Len() int
}

// An Array contains a set of values.
type Array interface {
	// Iterate goes through all the values of the array and calls the given function by passing each one of them.
	// If the given function returns an error, the iteration stops.
	Iterate(fn func(i int, value Value) error) error
	// GetByIndex returns a value by index of the array.
	GetByIndex(i int) (Value, error)
	// Len returns the number of values.
	Len() int
}

func castError(v Value, target Type) error {
	return errors.Errorf("cannot cast %s as %s", v.Type(), target)
}
