package codec

import (
	"bytes"
	"encoding/json"
)

// JSONDecoder decodes JSON documents with encoding/json. Unknown fields are
// rejected so that misspelled transformation keys surface as errors.
type JSONDecoder struct{}

func (JSONDecoder) Format() string       { return "json" }
func (JSONDecoder) Extensions() []string { return []string{".json"} }

func (JSONDecoder) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
