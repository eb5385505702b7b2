package transform

import "strings"

// Token is one unit of a transformation string.
type Token string

// Key returns the parameter code of t: "w" for "w-300", "e-shadow" for
// "e-shadow_bl-10", "l-image" for layer markers and the whole token for
// bare flags like "e-grayscale".
func (t Token) Key() string {
	s := string(t)
	if strings.HasPrefix(s, "e-") || strings.HasPrefix(s, "l-") {
		rest := s[2:]
		if i := strings.IndexAny(rest, "-_"); i >= 0 {
			return s[:2+i]
		}
		return s
	}
	if strings.HasPrefix(s, "ik-genimg-") {
		return "ik-genimg"
	}
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		return s[:i]
	}
	return s
}

// Value returns the part of t after its key and separator, if any.
func (t Token) Value() string {
	k := t.Key()
	if len(k) >= len(t) {
		return ""
	}
	return string(t)[len(k)+1:]
}

// Layer is an overlay block between l-<kind> and l-end.
type Layer struct {
	Kind   string // image, text, video
	Tokens []Token
}

// Chain is a parsed transformation string.
type Chain struct {
	Tokens []Token // tokens outside any layer, in order
	Layers []Layer
}

// Len returns the total number of tokens, layer markers included.
func (c Chain) Len() int {
	n := len(c.Tokens)
	for _, l := range c.Layers {
		n += len(l.Tokens) + 2
	}
	return n
}

// Parse splits a transformation string into plain tokens and layers. An
// unterminated layer keeps the tokens that follow its start marker.
func Parse(tr string) Chain {
	var c Chain
	if tr == "" {
		return c
	}
	var cur *Layer
	for _, raw := range strings.Split(tr, ",") {
		tok := Token(raw)
		switch {
		case raw == "":
			continue
		case raw == "l-end":
			if cur != nil {
				c.Layers = append(c.Layers, *cur)
				cur = nil
			}
		case strings.HasPrefix(raw, "l-"):
			if cur != nil {
				c.Layers = append(c.Layers, *cur)
			}
			cur = &Layer{Kind: strings.TrimPrefix(raw, "l-")}
		case cur != nil:
			cur.Tokens = append(cur.Tokens, tok)
		default:
			c.Tokens = append(c.Tokens, tok)
		}
	}
	if cur != nil {
		c.Layers = append(c.Layers, *cur)
	}
	return c
}
