package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MediaType discriminates the Config union.
type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

// ErrUnknownMediaType is returned when a config's "type" is neither IMAGE
// nor VIDEO.
var ErrUnknownMediaType = errors.New("unknown media type")

// Config is a complete transformation description: *ImageConfig or
// *VideoConfig.
type Config interface {
	MediaType() MediaType
}

// ImageConfig groups the image sub-configs. Groups are compiled in field
// order.
type ImageConfig struct {
	Basics       *Basics       `json:"basics,omitempty"`
	Enhancements *Enhancements `json:"enhancements,omitempty"`
	AI           *AiMagic      `json:"ai,omitempty"`
	Overlays     Overlays      `json:"overlays,omitempty"`
}

// VideoConfig groups the video sub-configs. Groups are compiled in field
// order.
type VideoConfig struct {
	Basics       *VideoBasics       `json:"basics,omitempty"`
	Enhancements *VideoEnhancements `json:"enhancements,omitempty"`
	Overlays     VideoOverlays      `json:"overlays,omitempty"`
	Audio        *Audio             `json:"audio,omitempty"`
}

func (*ImageConfig) MediaType() MediaType { return MediaImage }
func (*VideoConfig) MediaType() MediaType { return MediaVideo }

func (c *ImageConfig) MarshalJSON() ([]byte, error) {
	type plain ImageConfig
	return tagged(string(MediaImage), (*plain)(c))
}

func (c *VideoConfig) MarshalJSON() ([]byte, error) {
	type plain VideoConfig
	return tagged(string(MediaVideo), (*plain)(c))
}

// DecodeConfig parses a JSON config document, dispatching on "type".
func DecodeConfig(data []byte) (Config, error) {
	typ, err := peekType(data)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	var cfg Config
	switch MediaType(typ) {
	case MediaImage:
		cfg = &ImageConfig{}
	case MediaVideo:
		cfg = &VideoConfig{}
	default:
		return nil, fmt.Errorf("decode config: %w: %q", ErrUnknownMediaType, typ)
	}
	if err := decodeTagged(data, cfg); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", typ, err)
	}
	return cfg, nil
}

// decodeTagged decodes a "type"-tagged object into v. Members other than
// "type" must match a field of v, so misspelled keys are errors.
func decodeTagged(data []byte, v any) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	delete(members, "type")
	body, err := json.Marshal(members)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Envelope wraps a Config so it can be embedded in other JSON documents.
type Envelope struct {
	Config
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	cfg, err := DecodeConfig(data)
	if err != nil {
		return err
	}
	e.Config = cfg
	return nil
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Config == nil {
		return []byte("null"), nil
	}
	return json.Marshal(e.Config)
}
