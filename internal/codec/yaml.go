package codec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLDecoder decodes YAML documents. The document is first read into
// generic values and re-encoded as JSON, so targets only need JSON
// unmarshalers.
type YAMLDecoder struct{}

func (YAMLDecoder) Format() string       { return "yaml" }
func (YAMLDecoder) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAMLDecoder) Decode(data []byte, v any) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	doc, err := jsonCompatible(doc)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}
	return JSONDecoder{}.Decode(raw, v)
}

// jsonCompatible rewrites maps with non-string keys, which encoding/json
// cannot marshal.
func jsonCompatible(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			c, err := jsonCompatible(e)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			c, err := jsonCompatible(e)
			if err != nil {
				return nil, err
			}
			m[fmt.Sprint(k)] = c
		}
		return m, nil
	case []any:
		for i, e := range t {
			c, err := jsonCompatible(e)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	default:
		return v, nil
	}
}
