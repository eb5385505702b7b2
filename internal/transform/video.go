package transform

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VideoBasics is the geometry transform of a video. Border and Background
// are pre-joined values such as "5_FF0000".
type VideoBasics struct {
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	AspectRatio string    `json:"aspectRatio,omitempty"`
	CropMode    CropMode  `json:"cropMode,omitempty"`
	Focus       FocusMode `json:"focus,omitempty"`
	Rotate      Param     `json:"rotate,omitempty"`
	Border      string    `json:"border,omitempty"`
	Radius      Param     `json:"radius,omitempty"`
	Background  string    `json:"background,omitempty"`
}

// Trimming cuts the video to a time window, in seconds.
type Trimming struct {
	StartOffset *float64 `json:"startOffset,omitempty"`
	EndOffset   *float64 `json:"endOffset,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
}

// Thumbnail extracts a still frame at Time and shapes it.
type Thumbnail struct {
	Time        *float64  `json:"time,omitempty"`
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	AspectRatio string    `json:"aspectRatio,omitempty"`
	CropMode    CropMode  `json:"cropMode,omitempty"`
	Focus       FocusMode `json:"focus,omitempty"`
	Border      *Border   `json:"border,omitempty"`
	Bg          string    `json:"bg,omitempty"`
	Radius      Param     `json:"radius,omitempty"`
}

// VideoEnhancements share no fields with image Enhancements.
type VideoEnhancements struct {
	Trimming  *Trimming  `json:"trimming,omitempty"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
}

// Audio flags are independent; each emits its own token.
type Audio struct {
	Mute         bool `json:"mute,omitempty"`
	ExtractAudio bool `json:"extractAudio,omitempty"`
}

// Placement holds the position and timing shared by every video overlay.
type Placement struct {
	X           Param   `json:"x,omitempty"`
	Y           Param   `json:"y,omitempty"`
	StartOffset float64 `json:"startOffset,omitempty"`
	EndOffset   float64 `json:"endOffset,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
}

// VideoOverlay is one layer on a video: *VideoImageOverlay,
// *VideoClipOverlay, *VideoTextOverlay or *VideoSolidOverlay.
type VideoOverlay interface {
	OverlayType() string
	placement() *Placement
}

type VideoImageOverlay struct {
	Src    string `json:"src"`
	Width  Param  `json:"width,omitempty"`
	Height Param  `json:"height,omitempty"`
	Placement
}

// VideoClipOverlay places another video on top.
type VideoClipOverlay struct {
	Src    string `json:"src"`
	Width  Param  `json:"width,omitempty"`
	Height Param  `json:"height,omitempty"`
	Placement
}

type VideoTextOverlay struct {
	Text       string `json:"text"`
	FontSize   Param  `json:"fontSize,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	Color      string `json:"color,omitempty"`
	Padding    string `json:"padding,omitempty"`
	Placement
}

type VideoSolidOverlay struct {
	Color  string `json:"color"`
	Width  Param  `json:"width,omitempty"`
	Height Param  `json:"height,omitempty"`
	Radius Param  `json:"radius,omitempty"`
	Placement
}

func (*VideoImageOverlay) OverlayType() string { return "image" }
func (*VideoClipOverlay) OverlayType() string  { return "video" }
func (*VideoTextOverlay) OverlayType() string  { return "text" }
func (*VideoSolidOverlay) OverlayType() string { return "solid" }

func (o *VideoImageOverlay) placement() *Placement { return &o.Placement }
func (o *VideoClipOverlay) placement() *Placement  { return &o.Placement }
func (o *VideoTextOverlay) placement() *Placement  { return &o.Placement }
func (o *VideoSolidOverlay) placement() *Placement { return &o.Placement }

func (o *VideoImageOverlay) MarshalJSON() ([]byte, error) {
	type plain VideoImageOverlay
	return tagged("image", (*plain)(o))
}

func (o *VideoClipOverlay) MarshalJSON() ([]byte, error) {
	type plain VideoClipOverlay
	return tagged("video", (*plain)(o))
}

func (o *VideoTextOverlay) MarshalJSON() ([]byte, error) {
	type plain VideoTextOverlay
	return tagged("text", (*plain)(o))
}

func (o *VideoSolidOverlay) MarshalJSON() ([]byte, error) {
	type plain VideoSolidOverlay
	return tagged("solid", (*plain)(o))
}

// VideoOverlays is an ordered video overlay list that decodes by "type".
type VideoOverlays []VideoOverlay

func (l *VideoOverlays) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(VideoOverlays, 0, len(raw))
	for i, r := range raw {
		typ, err := peekType(r)
		if err != nil {
			return fmt.Errorf("overlay[%d]: %w", i, err)
		}
		var o VideoOverlay
		switch typ {
		case "image":
			o = &VideoImageOverlay{}
		case "video":
			o = &VideoClipOverlay{}
		case "text":
			o = &VideoTextOverlay{}
		case "solid":
			o = &VideoSolidOverlay{}
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

func videoBasicsToTokens(b *VideoBasics) []string {
	var t tokens
	t.num("w", b.Width)
	t.num("h", b.Height)
	t.str("ar", b.AspectRatio)
	t.str("c", string(b.CropMode))
	t.str("fo", b.Focus.wire())
	t.param("rt", b.Rotate)
	t.str("b", b.Border)
	t.param("r", b.Radius)
	t.str("bg", color(b.Background))
	return t
}

func videoEnhancementsToTokens(e *VideoEnhancements) []string {
	var t tokens
	if tr := e.Trimming; tr != nil {
		t.ptr("so", tr.StartOffset)
		t.ptr("eo", tr.EndOffset)
		t.ptr("du", tr.Duration)
	}
	if th := e.Thumbnail; th != nil {
		t.ptr("so", th.Time)
		t.num("w", th.Width)
		t.num("h", th.Height)
		t.str("ar", th.AspectRatio)
		switch th.CropMode {
		case "":
		case CropExtract, CropPadResize:
			t.kv("cm", string(th.CropMode))
		default:
			t.kv("c", string(th.CropMode))
		}
		t.str("fo", th.Focus.wire())
		if th.Border != nil {
			t.add(borderToken(th.Border))
		}
		t.str("bg", color(th.Bg))
		t.param("r", th.Radius)
	}
	return t
}

func videoOverlaysToTokens(list VideoOverlays, report func(Diagnostic)) []string {
	var out []string
	for i, o := range list {
		var t tokens
		switch o := o.(type) {
		case *VideoImageOverlay:
			if o == nil {
				continue
			}
			if strings.TrimSpace(o.Src) == "" {
				reportBlank("image", i, report)
				continue
			}
			t.add("l-image", sourceToken(o.Src))
			t.nonzero("w", o.Width)
			t.nonzero("h", o.Height)
		case *VideoClipOverlay:
			if o == nil {
				continue
			}
			if strings.TrimSpace(o.Src) == "" {
				reportBlank("video", i, report)
				continue
			}
			t.add("l-video", sourceToken(o.Src))
			t.nonzero("w", o.Width)
			t.nonzero("h", o.Height)
		case *VideoTextOverlay:
			if o == nil {
				continue
			}
			if strings.TrimSpace(o.Text) == "" {
				reportBlank("text", i, report)
				continue
			}
			t.add("l-text", "i-"+escapeComponent(o.Text))
			t.nonzero("fs", o.FontSize)
			t.str("ff", o.FontFamily)
			t.str("co", color(o.Color))
			t.str("pa", o.Padding)
		case *VideoSolidOverlay:
			if o == nil {
				continue
			}
			t.add("l-image", "i-ik_canvas")
			t.str("bg", color(o.Color))
			t.nonzero("w", o.Width)
			t.nonzero("h", o.Height)
			t.nonzero("r", o.Radius)
		default:
			continue
		}
		p := o.placement()
		t.nonzero("lx", p.X)
		t.nonzero("ly", p.Y)
		t.num("lso", p.StartOffset)
		t.num("leo", p.EndOffset)
		t.num("ldu", p.Duration)
		t.add("l-end")
		out = append(out, strings.Join(t, ","))
	}
	return out
}

func audioToTokens(a *Audio) []string {
	var t tokens
	t.flag(a.Mute, "ac-none")
	t.flag(a.ExtractAudio, "vc-none")
	return t
}
