package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOverlayType is returned when an overlay's type discriminator is
// not recognized.
var ErrUnknownOverlayType = errors.New("unknown overlay type")

// Overlay is one layer composited onto an image: *ImageOverlay,
// *TextOverlay, *GradientBlock or *SolidBlock.
type Overlay interface {
	OverlayType() string
}

// ImageOverlay places another image on top of the base image.
type ImageOverlay struct {
	Src         string       `json:"src"`
	Width       Param        `json:"width,omitempty"`
	Height      Param        `json:"height,omitempty"`
	AspectRatio string       `json:"aspectRatio,omitempty"`
	X           Param        `json:"x,omitempty"`
	Y           Param        `json:"y,omitempty"`
	Opacity     *float64     `json:"opacity,omitempty"`
	BgColor     string       `json:"bgColor,omitempty"`
	Border      *Border      `json:"border,omitempty"`
	Radius      Param        `json:"radius,omitempty"`
	Rotation    *float64     `json:"rotation,omitempty"`
	Flip        FlipMode     `json:"flip,omitempty"`
	CropMode    CropMode     `json:"cropMode,omitempty"` // extract or pad_resize
	Focus       FocusMode    `json:"focus,omitempty"`
	Zoom        *float64     `json:"zoom,omitempty"`
	Trim        Param        `json:"trim,omitempty"`
	Blur        float64      `json:"blur,omitempty"`
	Quality     float64      `json:"quality,omitempty"`
	DPR         Param        `json:"dpr,omitempty"`
	Grayscale   bool         `json:"grayscale,omitempty"`
	Contrast    bool         `json:"contrast,omitempty"`
	Sharpen     *float64     `json:"sharpen,omitempty"`
	UnsharpMask *UnsharpMask `json:"unsharpMask,omitempty"`
	Shadow      *Shadow      `json:"shadow,omitempty"`
	Gradient    *Gradient    `json:"gradient,omitempty"`
}

// Typography toggles text styles.
type Typography struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// TextOverlay renders a text layer.
type TextOverlay struct {
	Text            string      `json:"text"`
	Width           Param       `json:"width,omitempty"`
	FontSize        Param       `json:"fontSize,omitempty"`
	FontFamily      string      `json:"fontFamily,omitempty"`
	Color           string      `json:"color,omitempty"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
	Padding         string      `json:"padding,omitempty"`
	Align           string      `json:"align,omitempty"` // left, center, right
	LineHeight      Param       `json:"lineHeight,omitempty"`
	X               Param       `json:"x,omitempty"`
	Y               Param       `json:"y,omitempty"`
	Opacity         *float64    `json:"opacity,omitempty"`
	Typography      *Typography `json:"typography,omitempty"`
	Rotation        *float64    `json:"rotation,omitempty"`
	Flip            FlipMode    `json:"flip,omitempty"`
	Radius          Param       `json:"radius,omitempty"`
}

// GradientBlock is a rectangle filled with a gradient.
type GradientBlock struct {
	Direction Param   `json:"direction,omitempty"`
	FromColor string  `json:"fromColor,omitempty"`
	ToColor   string  `json:"toColor,omitempty"`
	StopPoint Param   `json:"stopPoint,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
}

// SolidBlock is a rectangle filled with one color, optionally with a
// gradient on top.
type SolidBlock struct {
	Color    string    `json:"color"`
	Width    Param     `json:"width,omitempty"`
	Height   Param     `json:"height,omitempty"`
	X        Param     `json:"x,omitempty"`
	Y        Param     `json:"y,omitempty"`
	Opacity  *float64  `json:"opacity,omitempty"`
	Radius   Param     `json:"radius,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

func (*ImageOverlay) OverlayType() string  { return "image" }
func (*TextOverlay) OverlayType() string   { return "text" }
func (*GradientBlock) OverlayType() string { return "gradient" }
func (*SolidBlock) OverlayType() string    { return "solid" }

func (o *ImageOverlay) MarshalJSON() ([]byte, error) {
	type plain ImageOverlay
	return tagged("image", (*plain)(o))
}

func (o *TextOverlay) MarshalJSON() ([]byte, error) {
	type plain TextOverlay
	return tagged("text", (*plain)(o))
}

func (o *GradientBlock) MarshalJSON() ([]byte, error) {
	type plain GradientBlock
	return tagged("gradient", (*plain)(o))
}

func (o *SolidBlock) MarshalJSON() ([]byte, error) {
	type plain SolidBlock
	return tagged("solid", (*plain)(o))
}

// Overlays is an ordered overlay list that decodes by the "type" field.
type Overlays []Overlay

func (l *Overlays) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Overlays, 0, len(raw))
	for i, r := range raw {
		typ, err := peekType(r)
		if err != nil {
			return fmt.Errorf("overlay[%d]: %w", i, err)
		}
		var o Overlay
		switch typ {
		case "image":
			o = &ImageOverlay{}
		case "text":
			o = &TextOverlay{}
		case "gradient":
			o = &GradientBlock{}
		case "solid":
			o = &SolidBlock{}
		default:
			return fmt.Errorf("overlay[%d]: %w: %q", i, ErrUnknownOverlayType, typ)
		}
		if err := decodeTagged(r, o); err != nil {
			return fmt.Errorf("overlay[%d] (%s): %w", i, typ, err)
		}
		out = append(out, o)
	}
	*l = out
	return nil
}

// Sources longer than this, or containing '/', ' ' or a data: scheme, are
// sent inline-encoded instead of as a media library reference.
const maxLibraryRefLen = 100

const (
	stockDropLen = 200
	longSrcLen   = 500
)

var stockHosts = []string{"istockphoto.com", "shutterstock.com", "gettyimages.com"}

func overlaysToTokens(list Overlays, report func(Diagnostic)) []string {
	var out []string
	for i, o := range list {
		var layer tokens
		switch o := o.(type) {
		case *ImageOverlay:
			if o != nil {
				layer = imageOverlayTokens(o, i, report)
			}
		case *TextOverlay:
			if o != nil {
				layer = textOverlayTokens(o, i, report)
			}
		case *GradientBlock:
			if o != nil {
				layer = gradientBlockTokens(o)
			}
		case *SolidBlock:
			if o != nil {
				layer = solidBlockTokens(o)
			}
		}
		if layer != nil {
			out = append(out, strings.Join(layer, ","))
		}
	}
	return out
}

// isLibraryRef reports whether src can be sent verbatim as i-<src>.
func isLibraryRef(src string) bool {
	return !strings.HasPrefix(src, "data:") &&
		!strings.ContainsAny(src, "/ ") &&
		len(src) <= maxLibraryRefLen
}

func sourceToken(src string) string {
	if isLibraryRef(src) {
		return "i-" + src
	}
	return "ie-" + packSource(src)
}

// reportBlank records an overlay dropped for lacking a source or text.
func reportBlank(kind string, idx int, report func(Diagnostic)) {
	report(Diagnostic{
		Severity: SeverityInfo,
		Code:     CodeOverlayDroppedBlank,
		Overlay:  idx,
		Message:  "skipping " + kind + " overlay without content",
	})
}

func imageOverlayTokens(o *ImageOverlay, idx int, report func(Diagnostic)) tokens {
	if strings.TrimSpace(o.Src) == "" {
		reportBlank("image", idx, report)
		return nil
	}
	if strings.Contains(o.Src, "istockphoto.com") && len(o.Src) > stockDropLen {
		report(Diagnostic{
			Severity: SeverityWarn,
			Code:     CodeOverlayDroppedStock,
			Overlay:  idx,
			Src:      o.Src,
			Message:  "skipping stock photo overlay with overly complex URL",
		})
		return nil
	}
	if !isLibraryRef(o.Src) {
		adviseSource(o.Src, idx, report)
	}

	t := tokens{"l-image", sourceToken(o.Src)}
	t.nonzero("w", o.Width)
	t.nonzero("h", o.Height)
	t.str("ar", o.AspectRatio)
	t.param("lx", o.X)
	t.param("ly", o.Y)
	t.ptr("o", o.Opacity)
	t.str("bg", color(o.BgColor))
	if o.Border != nil {
		t.add(borderToken(o.Border))
	}
	t.param("r", o.Radius)
	t.ptr("rt", o.Rotation)
	t.str("fl", string(o.Flip))
	t.str("cm", string(o.CropMode))
	t.str("fo", o.Focus.wire())
	t.ptr("z", o.Zoom)
	trimToken(&t, o.Trim)
	t.num("bl", o.Blur)
	t.num("q", o.Quality)
	t.nonzero("dpr", o.DPR)
	t.flag(o.Grayscale, "e-grayscale")
	t.flag(o.Contrast, "e-contrast")
	t.ptr("e-sharpen", o.Sharpen)
	if o.UnsharpMask != nil {
		t.add(usmToken(o.UnsharpMask))
	}
	if o.Shadow != nil {
		t.add(shadowToken(o.Shadow))
	}
	if o.Gradient != nil {
		t.add(gradientToken(o.Gradient))
	}
	t.add("l-end")
	return t
}

// adviseSource records advisory diagnostics for inline-encoded sources.
// It never changes the output.
func adviseSource(src string, idx int, report func(Diagnostic)) {
	if len(src) > longSrcLen {
		report(Diagnostic{
			Severity: SeverityWarn,
			Code:     CodeOverlayLongSrc,
			Overlay:  idx,
			Src:      src,
			Message:  fmt.Sprintf("overlay source is very long (%d chars); consider uploading it to the media library", len(src)),
		})
	}
	for _, host := range stockHosts {
		if strings.Contains(src, host) {
			report(Diagnostic{
				Severity: SeverityWarn,
				Code:     CodeOverlayStockHost,
				Overlay:  idx,
				Src:      src,
				Message:  "external stock photo URLs may not work reliably as overlays",
			})
			return
		}
	}
}

func textOverlayTokens(o *TextOverlay, idx int, report func(Diagnostic)) tokens {
	if strings.TrimSpace(o.Text) == "" {
		reportBlank("text", idx, report)
		return nil
	}
	t := tokens{"l-text", "i-" + escapeComponent(o.Text)}
	t.nonzero("w", o.Width)
	t.nonzero("fs", o.FontSize)
	t.str("ff", o.FontFamily)
	t.str("co", color(o.Color))
	t.str("bg", color(o.BackgroundColor))
	t.str("pa", o.Padding)
	t.str("ia", o.Align)
	t.nonzero("lh", o.LineHeight)
	t.param("lx", o.X)
	t.param("ly", o.Y)
	t.ptr("al", o.Opacity)
	if ty := o.Typography; ty != nil {
		var styles []string
		if ty.Bold {
			styles = append(styles, "b")
		}
		if ty.Italic {
			styles = append(styles, "i")
		}
		if ty.Strikethrough {
			styles = append(styles, "s")
		}
		if len(styles) > 0 {
			t.kv("tg", strings.Join(styles, "_"))
		}
	}
	t.ptr("rt", o.Rotation)
	t.str("fl", string(o.Flip))
	t.param("r", o.Radius)
	t.add("l-end")
	return t
}

// Gradient and solid blocks have no native layer type; they are drawn on a
// generated canvas inside an image layer.
func gradientBlockTokens(o *GradientBlock) tokens {
	t := tokens{"l-image", "i-ik_canvas", "e-gradient"}
	t.param("ld", o.Direction)
	t.str("from", color(o.FromColor))
	t.str("to", color(o.ToColor))
	t.param("sp", o.StopPoint)
	t.num("w", o.Width)
	t.num("h", o.Height)
	t.num("r", o.Radius)
	t.add("l-end")
	return t
}

func solidBlockTokens(o *SolidBlock) tokens {
	t := tokens{"l-image", "i-ik_canvas"}
	t.str("bg", color(o.Color))
	t.nonzero("w", o.Width)
	t.nonzero("h", o.Height)
	t.param("lx", o.X)
	t.param("ly", o.Y)
	t.ptr("al", o.Opacity)
	t.param("r", o.Radius)
	if o.Gradient != nil {
		t.add(gradientToken(o.Gradient))
	}
	t.add("l-end")
	return t
}

func peekType(raw json.RawMessage) (string, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return "", err
	}
	return head.Type, nil
}

// tagged marshals v and prepends a "type" member.
func tagged(typ string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head := `{"type":` + fmt.Sprintf("%q", typ)
	if len(body) <= 2 {
		return []byte(head + "}"), nil
	}
	return append([]byte(head+","), body[1:]...), nil
}
