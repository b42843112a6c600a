package loader

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokSpace  tokenKind = iota
	tokString           // double-quoted, quotes included; may be unterminated
	tokPunct            // one of { } [ ] , :
	tokBare             // anything else, up to whitespace, quote or punctuation
)

type token struct {
	kind tokenKind
	text string
}

func (t token) is(punct byte) bool {
	return t.kind == tokPunct && t.text[0] == punct
}

func isPunct(r rune) bool {
	switch r {
	case '{', '}', '[', ']', ',', ':':
		return true
	}
	return false
}

// lex splits text into tokens. Concatenating the token texts yields the
// input unchanged, so every repair step is a rewrite of selected tokens.
func lex(s string) []token {
	var toks []token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			j := i + 1
			for j < len(s) {
				if s[j] == '\\' {
					j += 2
					continue
				}
				if s[j] == '"' {
					j++
					break
				}
				j++
			}
			if j > len(s) {
				j = len(s)
			}
			toks = append(toks, token{tokString, s[i:j]})
			i = j
		case unicode.IsSpace(r):
			j := i + size
			for j < len(s) {
				r, n := utf8.DecodeRuneInString(s[j:])
				if !unicode.IsSpace(r) {
					break
				}
				j += n
			}
			toks = append(toks, token{tokSpace, s[i:j]})
			i = j
		case isPunct(r):
			toks = append(toks, token{tokPunct, s[i : i+1]})
			i++
		default:
			j := i + size
			for j < len(s) {
				r, n := utf8.DecodeRuneInString(s[j:])
				if r == '"' || unicode.IsSpace(r) || isPunct(r) {
					break
				}
				j += n
			}
			toks = append(toks, token{tokBare, s[i:j]})
			i = j
		}
	}
	return toks
}

func join(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}

// nextSignificant returns the index of the first non-space token after i, or -1
func nextSignificant(toks []token, i int) int {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].kind != tokSpace {
			return j
		}
	}
	return -1
}

// prevSignificant returns the index of the last non-space token before i, or -1
func prevSignificant(toks []token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if toks[j].kind != tokSpace {
			return j
		}
	}
	return -1
}

// gluedToString reports whether the token at i touches a string token
func gluedToString(toks []token, i int) bool {
	if i > 0 && toks[i-1].kind == tokString {
		return true
	}
	return i+1 < len(toks) && toks[i+1].kind == tokString
}

// containers returns, for every token, the innermost open bracket ('{', '[')
// enclosing it, or 0 at top level.
func containers(toks []token) []byte {
	out := make([]byte, len(toks))
	var stack []byte
	for i, t := range toks {
		if len(stack) > 0 {
			out[i] = stack[len(stack)-1]
		}
		if t.kind != tokPunct {
			continue
		}
		switch t.text[0] {
		case '{', '[':
			stack = append(stack, t.text[0])
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return out
}

// quote renders s as a JSON string literal
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
