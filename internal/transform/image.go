package transform

import "strings"

// CropMode selects how the CDN fits the image into the requested box.
type CropMode string

const (
	CropMaintainRatio CropMode = "maintain_ratio"
	CropPadResize     CropMode = "pad_resize"
	CropForce         CropMode = "force"
	CropAtMax         CropMode = "at_max"
	CropAtMaxEnlarge  CropMode = "at_max_enlarge"
	CropAtLeast       CropMode = "at_least"
	CropExtract       CropMode = "extract"
	CropPadExtract    CropMode = "pad_extract"
)

// FocusMode is an anchor ("center", "top_left", "face", ...) or an object
// focus written as "object-<name>".
type FocusMode string

const (
	FocusCenter      FocusMode = "center"
	FocusTop         FocusMode = "top"
	FocusBottom      FocusMode = "bottom"
	FocusLeft        FocusMode = "left"
	FocusRight       FocusMode = "right"
	FocusTopLeft     FocusMode = "top_left"
	FocusTopRight    FocusMode = "top_right"
	FocusBottomLeft  FocusMode = "bottom_left"
	FocusBottomRight FocusMode = "bottom_right"
	FocusAuto        FocusMode = "auto"
	FocusFace        FocusMode = "face"
	FocusCustom      FocusMode = "custom"
)

const objectFocusPrefix = "object-"

// ObjectFocus returns the focus mode that centers on a detected object.
func ObjectFocus(name string) FocusMode { return FocusMode(objectFocusPrefix + name) }

// wire returns the value carried by the fo- token. Object focus is sent as
// the bare object name; an object focus without a name is dropped.
func (f FocusMode) wire() string {
	if name, ok := strings.CutPrefix(string(f), objectFocusPrefix); ok {
		return name
	}
	return string(f)
}

// FlipMode mirrors horizontally, vertically or both.
type FlipMode string

const (
	FlipH  FlipMode = "h"
	FlipV  FlipMode = "v"
	FlipHV FlipMode = "h_v"
)

// Basics is the primary geometry transform of an image.
type Basics struct {
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	AspectRatio string    `json:"aspectRatio,omitempty"` // e.g. "16-9"
	CropMode    CropMode  `json:"cropMode,omitempty"`
	Focus       FocusMode `json:"focus,omitempty"`
	X           *float64  `json:"x,omitempty"`
	Y           *float64  `json:"y,omitempty"`
	XC          *float64  `json:"xc,omitempty"`
	YC          *float64  `json:"yc,omitempty"`
	Zoom        *float64  `json:"zoom,omitempty"`
	DPR         Param     `json:"dpr,omitempty"` // number or "auto"
}

// UnsharpMask parameters; each component is optional.
type UnsharpMask struct {
	Radius    *float64 `json:"radius,omitempty"`
	Sigma     *float64 `json:"sigma,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// Shadow is a drop shadow. Offsets may be negative.
type Shadow struct {
	Blur       *float64 `json:"blur,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	OffsetX    *float64 `json:"offsetX,omitempty"`
	OffsetY    *float64 `json:"offsetY,omitempty"`
}

// Gradient is a linear gradient effect.
type Gradient struct {
	Direction Param  `json:"direction,omitempty"` // degrees or "top", "bottom_right", ...
	FromColor string `json:"fromColor,omitempty"`
	ToColor   string `json:"toColor,omitempty"`
	StopPoint Param  `json:"stopPoint,omitempty"`
}

// Border is a solid frame.
type Border struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// BackgroundType selects the background fill used by padding crops.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundBlurred  BackgroundType = "blurred"
	BackgroundDominant BackgroundType = "dominant"
)

// Background configures the fill behind padded images.
type Background struct {
	Type          BackgroundType `json:"type"`
	Color         string         `json:"color,omitempty"`
	BlurIntensity Param          `json:"blurIntensity,omitempty"` // number or "auto"
	Brightness    float64        `json:"brightness,omitempty"`
}

// Enhancements are the secondary visual effects of an image.
type Enhancements struct {
	Blur        float64      `json:"blur,omitempty"`
	Grayscale   bool         `json:"grayscale,omitempty"`
	Opacity     *float64     `json:"opacity,omitempty"`
	Contrast    bool         `json:"contrast,omitempty"`
	Sharpen     *float64     `json:"sharpen,omitempty"`
	UnsharpMask *UnsharpMask `json:"unsharpMask,omitempty"`
	Shadow      *Shadow      `json:"shadow,omitempty"`
	Gradient    *Gradient    `json:"gradient,omitempty"`
	Background  *Background  `json:"background,omitempty"`
	Trim        Param        `json:"trim,omitempty"` // true or a numeric level
	Border      *Border      `json:"border,omitempty"`
	Rotate      Param        `json:"rotate,omitempty"` // degrees or "auto"
	Flip        FlipMode     `json:"flip,omitempty"`
	Radius      Param        `json:"radius,omitempty"` // number or "max"
}

// RemovalMode picks the background removal engine.
type RemovalMode string

const (
	RemovalStandard RemovalMode = "standard"
	RemovalEconomy  RemovalMode = "economy"
)

// GenerativeFill extends the canvas with generated content.
type GenerativeFill struct {
	Prompt   string   `json:"prompt,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	CropMode CropMode `json:"cropMode,omitempty"` // pad_resize or pad_extract
}

// AIBackground groups background removal and replacement.
type AIBackground struct {
	Remove         bool            `json:"remove,omitempty"`
	Mode           RemovalMode     `json:"mode,omitempty"`
	ChangePrompt   string          `json:"changePrompt,omitempty"`
	GenerativeFill *GenerativeFill `json:"generativeFill,omitempty"`
}

// AIEditing groups prompt edits, retouch and upscale.
type AIEditing struct {
	Prompt  string `json:"prompt,omitempty"`
	Retouch bool   `json:"retouch,omitempty"`
	Upscale bool   `json:"upscale,omitempty"`
}

// ShadowLighting holds the AI drop shadow. It is independent of
// Enhancements.Shadow; both may be set and both emit shadow tokens.
type ShadowLighting struct {
	DropShadow *Shadow `json:"dropShadow,omitempty"`
}

// AIGeneration creates or varies images from prompts.
type AIGeneration struct {
	TextPrompt string `json:"textPrompt,omitempty"`
	Variation  bool   `json:"variation,omitempty"`
}

// CroppingType selects the AI crop strategy.
type CroppingType string

const (
	CroppingSmart  CroppingType = "smart"
	CroppingFace   CroppingType = "face"
	CroppingObject CroppingType = "object"
)

// AICropping is content-aware cropping.
type AICropping struct {
	Type       CroppingType `json:"type,omitempty"`
	ObjectName string       `json:"objectName,omitempty"`
	Zoom       *float64     `json:"zoom,omitempty"`
	Width      float64      `json:"width,omitempty"`
	Height     float64      `json:"height,omitempty"`
}

// AiMagic groups operations run by the CDN's generative pipeline.
type AiMagic struct {
	Background     *AIBackground   `json:"background,omitempty"`
	Editing        *AIEditing      `json:"editing,omitempty"`
	ShadowLighting *ShadowLighting `json:"shadowLighting,omitempty"`
	Generation     *AIGeneration   `json:"generation,omitempty"`
	Cropping       *AICropping     `json:"cropping,omitempty"`
}
