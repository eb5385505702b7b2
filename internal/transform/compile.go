// Package transform compiles structured image and video edit descriptions
// into the comma-joined transformation string ("tr") understood by the media
// CDN, and splices that string into media URLs.
//
// Compilation is pure: it performs no I/O, never mutates its input and never
// fails. Overlays that cannot be expressed are dropped; questionable inputs
// are reported to an optional Observer without changing the output.
package transform

import "strings"

// Severity grades a Diagnostic.
type Severity int8

const (
	SeverityInfo Severity = iota
	SeverityWarn
)

func (s Severity) String() string {
	if s == SeverityWarn {
		return "warn"
	}
	return "info"
}

// Diagnostic codes.
const (
	CodeOverlayDroppedBlank = "overlay-dropped-blank"
	CodeOverlayDroppedStock = "overlay-dropped-stock"
	CodeOverlayLongSrc      = "overlay-long-src"
	CodeOverlayStockHost    = "overlay-stock-host"
)

// Diagnostic describes an input the compiler accepted but found suspicious,
// or dropped.
type Diagnostic struct {
	Severity Severity
	Code     string
	Overlay  int // index into the overlay list
	Src      string
	Message  string
}

// Observer receives diagnostics during compilation.
type Observer interface {
	Observe(Diagnostic)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Diagnostic)

func (f ObserverFunc) Observe(d Diagnostic) { f(d) }

type nopObserver struct{}

func (nopObserver) Observe(Diagnostic) {}

// Compiler turns configs into transformation strings. The zero value is
// ready to use and discards diagnostics. A Compiler is safe for concurrent
// use if its Observer is.
type Compiler struct {
	observer Observer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithObserver routes diagnostics to o.
func WithObserver(o Observer) Option {
	return func(c *Compiler) { c.observer = o }
}

// NewCompiler returns a Compiler configured by opts.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) report(d Diagnostic) {
	if c == nil || c.observer == nil {
		return
	}
	c.observer.Observe(d)
}

// Tokens returns the ordered tokens of cfg. Each overlay contributes one
// element holding its whole comma-joined layer block.
func (c *Compiler) Tokens(cfg Config) []string {
	var parts []string
	switch cfg := cfg.(type) {
	case *ImageConfig:
		if cfg == nil {
			return nil
		}
		if cfg.Basics != nil {
			parts = append(parts, basicsToTokens(cfg.Basics)...)
		}
		if cfg.Enhancements != nil {
			parts = append(parts, enhancementsToTokens(cfg.Enhancements)...)
		}
		if cfg.AI != nil {
			parts = append(parts, aiToTokens(cfg.AI)...)
		}
		if len(cfg.Overlays) > 0 {
			parts = append(parts, overlaysToTokens(cfg.Overlays, c.report)...)
		}
	case *VideoConfig:
		if cfg == nil {
			return nil
		}
		if cfg.Basics != nil {
			parts = append(parts, videoBasicsToTokens(cfg.Basics)...)
		}
		if cfg.Enhancements != nil {
			parts = append(parts, videoEnhancementsToTokens(cfg.Enhancements)...)
		}
		if len(cfg.Overlays) > 0 {
			parts = append(parts, videoOverlaysToTokens(cfg.Overlays, c.report)...)
		}
		if cfg.Audio != nil {
			parts = append(parts, audioToTokens(cfg.Audio)...)
		}
	case Envelope:
		return c.Tokens(cfg.Config)
	case *Envelope:
		if cfg == nil {
			return nil
		}
		return c.Tokens(cfg.Config)
	}
	return parts
}

// Compile returns the transformation string for cfg, or "" when cfg sets
// nothing.
func (c *Compiler) Compile(cfg Config) string {
	return strings.Join(c.Tokens(cfg), ",")
}

// BuildURL compiles cfg and appends it to src as the tr query parameter.
func (c *Compiler) BuildURL(src string, cfg Config) string {
	return AppendTr(src, c.Compile(cfg))
}

var defaultCompiler = &Compiler{observer: nopObserver{}}

// Compile compiles cfg without reporting diagnostics.
func Compile(cfg Config) string { return defaultCompiler.Compile(cfg) }

// BuildURL compiles cfg and splices it into src without reporting
// diagnostics.
func BuildURL(src string, cfg Config) string { return defaultCompiler.BuildURL(src, cfg) }
