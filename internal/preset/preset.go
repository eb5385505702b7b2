package preset

import (
	"sort"

	"github.com/AnyUserName/trc/internal/transform"
)

// DefaultName is used when a job names neither a preset nor a config.
const DefaultName = "thumbnail"

// Preset is a named, reusable transformation.
type Preset struct {
	Name        string
	Description string
	Widths      []int // responsive widths, images only
	Retina      bool  // also emit 2x widths
	build       func() transform.Config
}

// Config returns a fresh copy of the preset's transformation, safe to
// modify.
func (p Preset) Config() transform.Config {
	return p.build()
}

// Built-in presets. Configs are built on demand so callers never share
// pointers.
var presets = map[string]Preset{
	"thumbnail": {
		Name:        "thumbnail",
		Description: "square crop centered on the most relevant area",
		Widths:      []int{150},
		Retina:      true,
		build: func() transform.Config {
			return &transform.ImageConfig{
				Basics: &transform.Basics{
					Width: 150, Height: 150,
					CropMode: transform.CropMaintainRatio,
					Focus:    transform.FocusAuto,
				},
			}
		},
	},
	"avatar": {
		Name:        "avatar",
		Description: "round face-centered profile picture",
		Widths:      []int{64, 128},
		Retina:      true,
		build: func() transform.Config {
			return &transform.ImageConfig{
				Basics:       &transform.Basics{Width: 128, Height: 128, Focus: transform.FocusFace},
				Enhancements: &transform.Enhancements{Radius: "max"},
			}
		},
	},
	"banner": {
		Name:        "banner",
		Description: "wide 3:1 hero image",
		Widths:      []int{640, 960, 1280, 1920},
		build: func() transform.Config {
			return &transform.ImageConfig{
				Basics: &transform.Basics{
					Width: 1280, AspectRatio: "3-1",
					CropMode: transform.CropMaintainRatio,
					DPR:      "auto",
				},
			}
		},
	},
	"social-card": {
		Name:        "social-card",
		Description: "1200x630 padded card on the dominant color",
		build: func() transform.Config {
			return &transform.ImageConfig{
				Basics: &transform.Basics{Width: 1200, Height: 630, CropMode: transform.CropPadResize},
				Enhancements: &transform.Enhancements{
					Background: &transform.Background{Type: transform.BackgroundDominant},
				},
			}
		},
	},
	"product-shot": {
		Name:        "product-shot",
		Description: "background removed, soft drop shadow",
		Widths:      []int{400, 800},
		Retina:      true,
		build: func() transform.Config {
			return &transform.ImageConfig{
				Basics: &transform.Basics{Width: 800},
				AI: &transform.AiMagic{
					Background: &transform.AIBackground{Remove: true, Mode: transform.RemovalEconomy},
					ShadowLighting: &transform.ShadowLighting{
						DropShadow: &transform.Shadow{Blur: transform.Float(10), Saturation: transform.Float(30)},
					},
				},
			}
		},
	},
	"video-preview": {
		Name:        "video-preview",
		Description: "muted 10 second 640px preview clip",
		build: func() transform.Config {
			return &transform.VideoConfig{
				Basics:       &transform.VideoBasics{Width: 640},
				Enhancements: &transform.VideoEnhancements{Trimming: &transform.Trimming{Duration: transform.Float(10)}},
				Audio:        &transform.Audio{Mute: true},
			}
		},
	},
	"video-thumbnail": {
		Name:        "video-thumbnail",
		Description: "16:9 still frame taken at 2s",
		build: func() transform.Config {
			return &transform.VideoConfig{
				Enhancements: &transform.VideoEnhancements{Thumbnail: &transform.Thumbnail{
					Time: transform.Float(2), Width: 480, AspectRatio: "16-9",
				}},
			}
		},
	},
}

// Get returns a preset by name. Falls back to DefaultName if unknown.
func Get(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	p := presets[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Lookup returns the preset and whether it is built in.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns all built-in preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EffectiveWidths returns the responsive widths including retina variants,
// in first-seen order. Widths above maxWidth are skipped when maxWidth > 0.
func (p Preset) EffectiveWidths(maxWidth int) []int {
	seen := map[int]bool{}
	var result []int

	for _, w := range p.Widths {
		if maxWidth > 0 && w > maxWidth {
			continue
		}
		if !seen[w] {
			seen[w] = true
			result = append(result, w)
		}
		if p.Retina {
			w2 := w * 2
			if (maxWidth <= 0 || w2 <= maxWidth) && !seen[w2] {
				seen[w2] = true
				result = append(result, w2)
			}
		}
	}
	return result
}

// WithWidth returns a copy of cfg resized to width. Only image configs are
// resized; the height is scaled to keep an explicit width/height ratio.
func WithWidth(cfg transform.Config, width int) transform.Config {
	img, ok := cfg.(*transform.ImageConfig)
	if !ok || img == nil || width <= 0 {
		return cfg
	}
	out := *img
	var b transform.Basics
	if img.Basics != nil {
		b = *img.Basics
	}
	if b.Width > 0 && b.Height > 0 {
		b.Height = float64(int(b.Height*float64(width)/b.Width + 0.5))
		if b.Height < 1 {
			b.Height = 1
		}
	}
	b.Width = float64(width)
	out.Basics = &b
	return &out
}
