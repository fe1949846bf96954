package xmltree_test

import (
	"testing"

	"github.com/chaisql/docbridge/internal/object"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/chaisql/docbridge/internal/xmltree"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{"empty", ``, `{}`},
		{"whitespace", "  \n", `{}`},
		{"single", `<a>1</a>`, `{"a":"1"}`},
		{"empty element", `<a/>`, `{"a":null}`},
		{"nested", `<root><a>1</a><b> x </b></root>`, `{"root":{"a":"1","b":"x"}}`},
		{"repeated", `<root><row><a>1</a></row><row><a>2</a></row></root>`, `{"root":{"row":[{"a":"1"},{"a":"2"}]}}`},
		{"repeated kept at first position", `<r><a>1</a><b>2</b><a>3</a></r>`, `{"r":{"a":["1","3"],"b":"2"}}`},
		{"three repeated", `<r><a>1</a><a>2</a><a>3</a></r>`, `{"r":{"a":["1","2","3"]}}`},
		{"attributes", `<r id="7"><a>1</a></r>`, `{"r":{"id":"7","a":"1"}}`},
		{"attribute and text", `<a unit="kg">12</a>`, `{"a":{"unit":"kg","content":"12"}}`},
		{"prolog and comments", `<?xml version="1.0"?><!-- c --><a>1</a>`, `{"a":"1"}`},
		{"entities and cdata", `<a>&lt;b&gt; &amp; <![CDATA[<c>]]></a>`, `{"a":"<b> & <c>"}`},
		{"namespaces", `<r xmlns="urn:x" xmlns:p="urn:p"><p:a>1</p:a></r>`, `{"r":{"a":"1"}}`},
		{"several roots", `<a>1</a><b>2</b>`, `{"a":"1","b":"2"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fb, err := xmltree.Decode([]byte(test.xml))
			require.NoError(t, err)

			data, err := fb.MarshalJSON()
			require.NoError(t, err)
			require.Equal(t, test.want, string(data))
		})
	}

	for _, bad := range []string{`<a>`, `<a></b>`, `<a>1</a`, `text<`} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := xmltree.Decode([]byte(bad))
			require.Error(t, err)
		})
	}
}

func TestEncode(t *testing.T) {
	o := object.NewFieldBuffer().
		Add("a", types.NewIntegerValue(1)).
		Add("b", types.NewTextValue("x < y & z")).
		Add("c", types.NewNullValue()).
		Add("d", types.NewArrayValue(object.NewValueBuffer(types.NewIntegerValue(1), types.NewIntegerValue(2)))).
		Add("e", types.NewObjectValue(object.NewFieldBuffer().Add("f", types.NewBooleanValue(true)))).
		Add("g", types.NewDoubleValue(1.5)).
		Add("h", types.NewArrayValue(object.NewValueBuffer()))

	data, err := xmltree.Encode(o)
	require.NoError(t, err)
	require.Equal(t, `<a>1</a><b>x &lt; y &amp; z</b><c/><d>1</d><d>2</d><e><f>true</f></e><g>1.5</g><h/>`, string(data))

	back, err := xmltree.Decode([]byte("<root>" + string(data) + "</root>"))
	require.NoError(t, err)
	j, err := back.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"root":{"a":"1","b":"x < y & z","c":null,"d":["1","2"],"e":{"f":"true"},"g":"1.5","h":null}}`, string(j))
}
