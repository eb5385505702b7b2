package codec

// Decoder parses a config document into v. Implementations must accept the
// same documents as encoding/json would, so that custom UnmarshalJSON
// methods on v apply regardless of the source format.
type Decoder interface {
	// Format returns the document format name (e.g. "json", "yaml").
	Format() string

	// Extensions returns the file extensions handled, with leading dot.
	Extensions() []string

	// Decode parses data into v.
	Decode(data []byte, v any) error
}
