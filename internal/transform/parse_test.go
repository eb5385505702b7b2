package transform

import "testing"

func TestParse_CompiledChain(t *testing.T) {
	cfg := &ImageConfig{
		Basics:       &Basics{Width: 300, Height: 200},
		Enhancements: &Enhancements{Grayscale: true, Shadow: &Shadow{OffsetX: Float(-5)}},
		Overlays: Overlays{
			&TextOverlay{Text: "Hi, you", FontSize: "20"},
			&SolidBlock{Color: "000", Width: "50"},
		},
	}
	c := Parse(Compile(cfg))

	if len(c.Tokens) != 4 {
		t.Fatalf("tokens: got %d (%v), want 4", len(c.Tokens), c.Tokens)
	}
	if len(c.Layers) != 2 {
		t.Fatalf("layers: got %d, want 2", len(c.Layers))
	}
	if c.Layers[0].Kind != "text" || c.Layers[1].Kind != "image" {
		t.Errorf("layer kinds: got %q, %q", c.Layers[0].Kind, c.Layers[1].Kind)
	}
	if got := c.Layers[0].Tokens[0]; got != "i-Hi%2C%20you" {
		t.Errorf("text token: got %q", got)
	}
	if got := c.Len(); got != 4+(2+2)+(3+2) {
		t.Errorf("len: got %d", got)
	}
}

func TestParse_Edges(t *testing.T) {
	if c := Parse(""); len(c.Tokens) != 0 || len(c.Layers) != 0 {
		t.Errorf("empty: got %+v", c)
	}
	c := Parse("w-1,,l-image,i-a.png")
	if len(c.Tokens) != 1 || len(c.Layers) != 1 {
		t.Fatalf("unterminated: got %+v", c)
	}
	if len(c.Layers[0].Tokens) != 1 {
		t.Errorf("unterminated layer tokens: got %v", c.Layers[0].Tokens)
	}
	c = Parse("l-end,h-2")
	if len(c.Tokens) != 1 || len(c.Layers) != 0 {
		t.Errorf("stray end: got %+v", c)
	}
}

func TestToken_KeyValue(t *testing.T) {
	cases := []struct {
		tok        Token
		key, value string
	}{
		{"w-300", "w", "300"},
		{"e-grayscale", "e-grayscale", ""},
		{"e-sharpen-10", "e-sharpen", "10"},
		{"e-shadow_bl-10_x-N5", "e-shadow", "bl-10_x-N5"},
		{"e-usm-2-2-0.8-0.024", "e-usm", "2-2-0.8-0.024"},
		{"bg-blurred_auto", "bg", "blurred_auto"},
		{"ie-aGVsbG8%3D", "ie", "aGVsbG8%3D"},
		{"ik-genimg-prompt-a%20cat", "ik-genimg", "prompt-a%20cat"},
		{"l-image", "l-image", ""},
		{"ac-none", "ac", "none"},
	}
	for _, c := range cases {
		if got := c.tok.Key(); got != c.key {
			t.Errorf("%q key: got %q, want %q", c.tok, got, c.key)
		}
		if got := c.tok.Value(); got != c.value {
			t.Errorf("%q value: got %q, want %q", c.tok, got, c.value)
		}
	}
}
