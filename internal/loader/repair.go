package loader

import "strings"

// RepairStep is one text transformation of the repair pipeline
type RepairStep struct {
	Name  string
	Apply func(string) string
}

// Steps is the repair pipeline. Order matters: each step assumes the
// previous ones already ran.
var Steps = []RepairStep{
	{Name: "trim-space", Apply: TrimSpace},
	{Name: "strip-trailing-commas", Apply: StripTrailingCommas},
	{Name: "ensure-envelope", Apply: EnsureEnvelope},
	{Name: "insert-key-separators", Apply: InsertKeySeparators},
	{Name: "quote-keys", Apply: QuoteKeys},
	{Name: "quote-symbols", Apply: QuoteSymbols},
}

// Repair runs every step of the pipeline once, in order
func Repair(text string) string {
	for _, step := range Steps {
		text = step.Apply(text)
	}
	return text
}

// TrimSpace removes surrounding whitespace.
//
// Post: the text neither starts nor ends with whitespace.
func TrimSpace(text string) string {
	return strings.TrimSpace(text)
}

// StripTrailingCommas drops separators that close nothing.
//
// Pre: any text. Post: outside strings, no comma is followed (ignoring
// whitespace and other such commas) by '}', ']' or the end of the text.
// The end of the text counts because EnsureEnvelope closes it next.
func StripTrailingCommas(text string) string {
	toks := lex(text)
	out := toks[:0:0]
	for i, t := range toks {
		if t.is(',') && trailing(toks, i) {
			continue
		}
		out = append(out, t)
	}
	return join(out)
}

func trailing(toks []token, i int) bool {
	for j := i + 1; j < len(toks); j++ {
		switch {
		case toks[j].kind == tokSpace, toks[j].is(','):
			continue
		case toks[j].is('}'), toks[j].is(']'):
			return true
		default:
			return false
		}
	}
	return true
}

// EnsureEnvelope wraps the body in one enclosing object.
//
// Pre: trimmed text. Post: the text starts with '{' and, if brackets are
// balanced, the brace at offset 0 is closed by the last character.
// A text that does not start with '{', or whose first object closes before
// the end (as in `a:{...}`), gets a '{' prepended. An enclosing object that
// is never closed gets a '}' appended.
func EnsureEnvelope(text string) string {
	if !strings.HasPrefix(text, "{") {
		text = "{" + text
	} else if end := enclosingEnd(text); end != -1 && end != len(text)-1 {
		text = "{" + text
	}
	if enclosingEnd(text) == -1 {
		text += "}"
	}
	return text
}

// enclosingEnd returns the byte offset of the bracket closing the one at
// offset 0, or -1 when it is never closed.
func enclosingEnd(text string) int {
	depth := 0
	offset := 0
	for _, t := range lex(text) {
		if t.kind == tokPunct {
			switch t.text[0] {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return offset
				}
			}
		}
		offset += len(t.text)
	}
	return -1
}

// InsertKeySeparators restores the ':' dropped between a key and its object.
//
// Pre: enveloped text. Post: a key (bare or quoted) that directly follows '{'
// or ',' inside an object and is followed by '{' is followed by ':'.
func InsertKeySeparators(text string) string {
	toks := lex(text)
	within := containers(toks)
	out := make([]token, 0, len(toks))
	for i, t := range toks {
		out = append(out, t)
		if t.kind != tokBare && t.kind != tokString {
			continue
		}
		if within[i] != '{' || !keyPosition(toks, i) {
			continue
		}
		if t.kind == tokBare && gluedToString(toks, i) {
			continue
		}
		if next := nextSignificant(toks, i); next != -1 && toks[next].is('{') {
			out = append(out, token{tokPunct, ":"})
		}
	}
	return join(out)
}

func keyPosition(toks []token, i int) bool {
	prev := prevSignificant(toks, i)
	return prev != -1 && (toks[prev].is('{') || toks[prev].is(','))
}

// QuoteKeys wraps unquoted keys in quotes.
//
// Pre: enveloped text. Post: every bare token followed by optional whitespace
// and ':' is quoted. Quoted keys are strings, not bare tokens, so they are
// never quoted twice; a bare token touching a quote is left alone.
func QuoteKeys(text string) string {
	toks := lex(text)
	for i, t := range toks {
		if t.kind != tokBare || gluedToString(toks, i) {
			continue
		}
		if next := nextSignificant(toks, i); next != -1 && toks[next].is(':') {
			toks[i] = token{tokString, quote(t.text)}
		}
	}
	return join(toks)
}

// QuoteSymbols wraps unquoted symbols in value position in quotes.
//
// Pre: keys already quoted. Post: no bare token remains inside an array or
// after a ':' (every value in this dataset is a symbol or a list of them).
func QuoteSymbols(text string) string {
	toks := lex(text)
	within := containers(toks)
	for i, t := range toks {
		if t.kind != tokBare || gluedToString(toks, i) {
			continue
		}
		prev := prevSignificant(toks, i)
		if within[i] == '[' || (prev != -1 && toks[prev].is(':')) {
			toks[i] = token{tokString, quote(t.text)}
		}
	}
	return join(toks)
}
