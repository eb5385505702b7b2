package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Registry maps file extensions to decoders.
type Registry struct {
	decoders map[string]Decoder
	formats  []string
}

// NewRegistry creates a registry with the JSON and YAML decoders.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]Decoder)}
	for _, d := range []Decoder{JSONDecoder{}, YAMLDecoder{}} {
		r.Register(d)
	}
	return r
}

// Register adds d for all of its extensions, replacing earlier entries.
func (r *Registry) Register(d Decoder) {
	for _, ext := range d.Extensions() {
		r.decoders[strings.ToLower(ext)] = d
	}
	for _, f := range r.formats {
		if f == d.Format() {
			return
		}
	}
	r.formats = append(r.formats, d.Format())
}

// ForPath returns the decoder for path's extension, or nil.
func (r *Registry) ForPath(path string) Decoder {
	return r.decoders[strings.ToLower(filepath.Ext(path))]
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	return r.ForPath(path) != nil
}

// DecodeFile reads path and decodes it into v.
func (r *Registry) DecodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return r.Decode(path, data, v)
}

// Decode decodes data read from path, choosing the decoder by path's
// extension.
func (r *Registry) Decode(path string, data []byte, v any) error {
	d := r.ForPath(path)
	if d == nil {
		return fmt.Errorf("no decoder for %q", filepath.Ext(path))
	}
	if err := d.Decode(data, v); err != nil {
		return fmt.Errorf("decode %s (%s): %w", filepath.Base(path), d.Format(), err)
	}
	return nil
}

// String returns a summary of registered formats.
func (r *Registry) String() string {
	if len(r.formats) == 0 {
		return "no decoders registered"
	}
	return fmt.Sprintf("decoders: %s", strings.Join(r.formats, ", "))
}
