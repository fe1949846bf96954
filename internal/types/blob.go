package types

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strconv"
)

var _ Value = NewBlobValue(nil)

type BlobValue []byte

// NewBlobValue returns a BLOB value.
func NewBlobValue(x []byte) BlobValue {
	return BlobValue(x)
}

func (v BlobValue) V() any {
	return []byte(v)
}

func (v BlobValue) Type() Type {
	return TypeBlob
}

func (v BlobValue) String() string {
	var dst bytes.Buffer
	dst.WriteString("\"\\x")
	_, _ = hex.NewEncoder(&dst).Write(v)
	dst.WriteByte('"')
	return dst.String()
}

// MarshalJSON encodes the blob as an array of byte values.
func (v BlobValue) MarshalJSON() ([]byte, error) {
	dst := make([]byte, 0, 2+len(v)*4)
	dst = append(dst, '[')
	for i, b := range v {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendUint(dst, uint64(b), 10)
	}
	dst = append(dst, ']')
	return dst, nil
}

func (v BlobValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeBlob:
		return v, nil
	case TypeText:
		return NewTextValue(base64.StdEncoding.EncodeToString([]byte(v))), nil
	}

	return nil, castError(v, target)
}

func (v BlobValue) EQ(other Value) (bool, error) {
	if other.Type() != TypeBlob {
		return false, nil
	}

	return bytes.Equal([]byte(v), AsByteSlice(other)), nil
}
