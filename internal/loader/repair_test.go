package loader

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTrailingCommas(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"before bracket", `[a, b,]`, `[a, b]`},
		{"before brace keeps whitespace", "{\"a\":1,\n}", "{\"a\":1\n}"},
		{"multiple with newlines", "[a,, ,\n]", "[a \n]"},
		{"at end of text", `x:{},`, `x:{}`},
		{"at end with trailing space inside", "x:{},\n ,", "x:{}\n "},
		{"inside string untouched", `["a,]"]`, `["a,]"]`},
		{"separators kept", `[a, b]`, `[a, b]`},
		{"nested", `{"a":{"in":[x,],},}`, `{"a":{"in":[x]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTrailingCommas(tt.in))
		})
	}
}

func TestEnsureEnvelope(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing both braces", `a:{}`, `{a:{}}`},
		{"already enveloped", `{"a":{}}`, `{"a":{}}`},
		{"missing closing brace", `{"a":{}`, `{"a":{}}`},
		{"missing opening brace", `"a":{}}`, `{"a":{}}`},
		{"empty", ``, `{}`},
		{"body starting with an entry object", `{"in":[]}`, `{"in":[]}`},
		{"brace inside string ignored", `"a}":{}`, `{"a}":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnsureEnvelope(tt.in))
		})
	}
}

func TestInsertKeySeparators(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare key", `{面{"in":[]}}`, `{面:{"in":[]}}`},
		{"quoted key", `{"面"{"in":[]}}`, `{"面":{"in":[]}}`},
		{"after comma", `{a:{},b {}}`, `{a:{},b: {}}`},
		{"separator present", `{a:{}}`, `{a:{}}`},
		{"array elements untouched", `{"a":{"in":[x,{}]}}`, `{"a":{"in":[x,{}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertKeySeparators(tt.in))
		})
	}
}

func TestQuoteKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unquoted", `{a:{in:[x]}}`, `{"a":{"in":[x]}}`},
		{"already quoted", `{"a":{"in":[]}}`, `{"a":{"in":[]}}`},
		{"whitespace around", `{ a :{}}`, `{ "a" :{}}`},
		{"mixed", `{"a":{in:[],"out":[]}}`, `{"a":{"in":[],"out":[]}}`},
		{"glued to quote left alone", `{"a"b:{}}`, `{"a"b:{}}`},
		{"backslash escaped", `{a\b:{}}`, `{"a\\b":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteKeys(tt.in))
		})
	}
}

func TestQuoteSymbols(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"array elements", `{"a":{"in":[x, y],"out":[]}}`, `{"a":{"in":["x", "y"],"out":[]}}`},
		{"object value", `{"a":b}`, `{"a":"b"}`},
		{"quoted untouched", `{"a":{"in":["x"]}}`, `{"a":{"in":["x"]}}`},
		{"stray token left alone", `{"a":{}, junk}`, `{"a":{}, junk}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteSymbols(tt.in))
		})
	}
}

func TestRepair(t *testing.T) {
	t.Run("missing braces and key separators", func(t *testing.T) {
		in := `面{"in":["一","丿"],"out":["面白"]},一{"in":[],"out":["面"]}`
		want := `{"面":{"in":["一","丿"],"out":["面白"]},"一":{"in":[],"out":["面"]}}`
		assert.Equal(t, want, Repair(in))
	})

	t.Run("unquoted keys and symbols with trailing comma", func(t *testing.T) {
		in := `愛:{in:[心,受],out:[愛情,愛着,恋愛,愛する,愛情深い,可愛い]},`
		want := `{"愛":{"in":["心","受"],"out":["愛情","愛着","恋愛","愛する","愛情深い","可愛い"]}}`
		assert.Equal(t, want, Repair(in))
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, `{"a":{"in":[],"out":[]}}`, Repair("\n\t a:{in:[],out:[]}  \n"))
	})

	t.Run("ideographic space is whitespace", func(t *testing.T) {
		assert.Equal(t, `{"a":{"in":["x"],　"out":[]}}`, Repair(`a:{in:[x],　out:[]}`))
	})
}

func TestRepairProperties(t *testing.T) {
	inputs := []string{
		`a:{in:[b,c],out:[d]}`,
		`a:{in:[b,c,],out:[d,],},b:{in:[],out:[a]},`,
		"a : { in : [ b ,\n ,\n ] , out : [ ] , } ,\n",
		`{"a":{"in":["b"],"out":["c"]}}`,
		`"a":{"in":[],"out":[]},b:{in:[a],out:[]}`,
		`面{"in":["一","丿"],"out":["面白"]},一{"in":[],"out":["面"]}`,
		`愛:{in:[心,受],out:[愛情,愛着,恋愛,愛する,愛情深い,可愛い]},`,
	}
	trailingComma := regexp.MustCompile(`,\s*[}\]]`)

	for _, in := range inputs {
		once := Repair(in)

		assert.NotRegexp(t, trailingComma, once, "input %q", in)
		assert.NotContains(t, once, `""`, "key quoted twice for input %q", in)

		first, err := Decode(once)
		require.NoError(t, err, "input %q repaired to %q", in, once)

		twice := Repair(once)
		assert.Equal(t, once, twice, "repair is idempotent for %q", in)

		second, err := Decode(twice)
		require.NoError(t, err)
		assert.Equal(t, first.Entries(), second.Entries())
	}
}

func TestStepsOrder(t *testing.T) {
	var names []string
	for _, s := range Steps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"trim-space",
		"strip-trailing-commas",
		"ensure-envelope",
		"insert-key-separators",
		"quote-keys",
		"quote-symbols",
	}, names)
}

func TestLexRoundTrip(t *testing.T) {
	inputs := []string{
		``,
		`{"a\"b":[x, "y\\"]}`,
		"面 {　\"in\" :[]}",
		`"unterminated`,
	}
	for _, in := range inputs {
		assert.Equal(t, in, join(lex(in)))
	}
}
