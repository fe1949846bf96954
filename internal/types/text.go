package types

import (
	"encoding/base64"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

var _ Value = NewTextValue("")

type TextValue string

// NewTextValue returns a TEXT value.
func NewTextValue(x string) TextValue {
	return TextValue(x)
}

func (v TextValue) V() any {
	return string(v)
}

func (v TextValue) Type() Type {
	return TypeText
}

func (v TextValue) String() string {
	return strconv.Quote(string(v))
}

func (v TextValue) MarshalJSON() ([]byte, error) {
	return AppendJSONString(nil, string(v)), nil
}

// CastAs parses the text as the target type. Parsing is strict: numbers
// must be in range and fully consumed.
func (v TextValue) CastAs(target Type) (Value, error) {
	s := string(v)

	switch target {
	case TypeText:
		return v, nil
	case TypeBoolean:
		switch strings.ToLower(s) {
		case "1", "t", "true", "y", "yes", "on":
			return NewBooleanValue(true), nil
		case "0", "f", "false", "n", "no", "off":
			return NewBooleanValue(false), nil
		}

		return nil, errors.Errorf("cannot cast %q as boolean", s)
	case TypeInteger:
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as integer", s)
		}
		return NewIntegerValue(int32(i)), nil
	case TypeBigint:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as bigint", s)
		}
		return NewBigintValue(i), nil
	case TypeDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as double", s)
		}
		return NewDoubleValue(f), nil
	case TypeTimestamp:
		ts, err := ParseTimestamp(s)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as timestamp", s)
		}
		return NewTimestampValue(ts), nil
	case TypeBlob:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot cast %q as blob", s)
		}
		return NewBlobValue(b), nil
	}

	return nil, castError(v, target)
}

func (v TextValue) EQ(other Value) (bool, error) {
	switch other.Type() {
	case TypeText:
		return string(v) == AsString(other), nil
	case TypeTimestamp:
		return other.EQ(v)
	}

	return false, nil
}

const hexDigits = "0123456789abcdef"

// AppendJSONString appends s to dst as a quoted json string.
// Invalid UTF-8 sequences are replaced by U+FFFD.
func AppendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				dst = append(dst, '\\', c)
			case c == '\n':
				dst = append(dst, '\\', 'n')
			case c == '\r':
				dst = append(dst, '\\', 'r')
			case c == '\t':
				dst = append(dst, '\\', 't')
			case c < 0x20:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			default:
				dst = append(dst, c)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, `\ufffd`...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}
