package types

var _ Value = NewNullValue()

type NullValue struct{}

// NewNullValue returns a NULL value.
func NewNullValue() NullValue {
	return NullValue{}
}

func (v NullValue) V() any {
	return nil
}

func (v NullValue) Type() Type {
	return TypeNull
}

func (v NullValue) String() string {
	return "NULL"
}

func (v NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// CastAs returns the null value itself: null is a member of every type.
func (v NullValue) CastAs(target Type) (Value, error) {
	return v, nil
}

func (v NullValue) EQ(other Value) (bool, error) {
	return other.Type() == TypeNull, nil
}
