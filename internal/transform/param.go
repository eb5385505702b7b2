package transform

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Param is a number-or-keyword value such as a dimension ("300", "bw_mul_0.5"),
// a radius ("max") or a dpr ("auto"). The literal spelling is kept as given.
// The zero value means the field is absent.
type Param string

// Num returns a Param holding the shortest decimal spelling of v.
func Num(v float64) Param { return Param(formatFloat(v)) }

// Set reports whether the field was provided at all.
func (p Param) Set() bool { return p != "" }

// truthy mirrors fields that are only emitted when non-zero.
func (p Param) truthy() bool {
	if p == "" || p == "false" {
		return false
	}
	if f, err := strconv.ParseFloat(string(p), 64); err == nil {
		return f != 0
	}
	return true
}

func (p Param) String() string { return string(p) }

// UnmarshalJSON accepts numbers, strings and booleans.
func (p *Param) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Param(s)
		return nil
	}
	switch string(data) {
	case "true", "false":
		*p = Param(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("param: %w", err)
	}
	*p = Param(n.String())
	return nil
}

// Float returns a pointer to v, for presence-checked fields.
func Float(v float64) *float64 { return &v }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// signed encodes a possibly negative offset with an N prefix, since the
// token grammar reserves '-' as the key separator.
func signed(v float64) string {
	if v < 0 {
		return "N" + formatFloat(-v)
	}
	return formatFloat(v)
}

// color drops a leading '#' from hex colors.
func color(c string) string {
	return strings.TrimPrefix(c, "#")
}

// escapeComponent percent-encodes s like encodeURIComponent: everything but
// ALPHA / DIGIT / "-_.!~*'()" is escaped, spaces become %20.
func escapeComponent(s string) string {
	e := url.QueryEscape(s)
	if !strings.ContainsAny(e, "+%") {
		return e
	}
	return componentFixer.Replace(e)
}

var componentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// packSource encodes an arbitrary overlay source into the inline form used
// by ie- tokens.
func packSource(src string) string {
	return escapeComponent(base64.StdEncoding.EncodeToString([]byte(src)))
}

// tokens is an ordered token accumulator.
type tokens []string

func (t *tokens) add(tok ...string) { *t = append(*t, tok...) }

func (t *tokens) kv(key, value string) { *t = append(*t, key+"-"+value) }

// str emits key-value when value is non-empty.
func (t *tokens) str(key, value string) {
	if value != "" {
		t.kv(key, value)
	}
}

// num emits key-value when v is non-zero.
func (t *tokens) num(key string, v float64) {
	if v != 0 {
		t.kv(key, formatFloat(v))
	}
}

// ptr emits key-value when v is present, zero included.
func (t *tokens) ptr(key string, v *float64) {
	if v != nil {
		t.kv(key, formatFloat(*v))
	}
}

// param emits key-value when p is present, zero included.
func (t *tokens) param(key string, p Param) {
	if p.Set() {
		t.kv(key, string(p))
	}
}

// nonzero emits key-value when p is present and not zero.
func (t *tokens) nonzero(key string, p Param) {
	if p.truthy() {
		t.kv(key, string(p))
	}
}

func (t *tokens) flag(on bool, tok string) {
	if on {
		*t = append(*t, tok)
	}
}
