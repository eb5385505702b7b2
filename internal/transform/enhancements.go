package transform

import "strings"

func enhancementsToTokens(e *Enhancements) []string {
	var t tokens
	t.num("bl", e.Blur)
	t.flag(e.Grayscale, "e-grayscale")
	t.ptr("o", e.Opacity)
	t.flag(e.Contrast, "e-contrast")
	t.ptr("e-sharpen", e.Sharpen)
	if e.UnsharpMask != nil {
		t.add(usmToken(e.UnsharpMask))
	}
	if e.Shadow != nil {
		t.add(shadowToken(e.Shadow))
	}
	if e.Gradient != nil {
		t.add(gradientToken(e.Gradient))
	}
	if e.Background != nil {
		backgroundTokens(&t, e.Background)
	}
	trimToken(&t, e.Trim)
	if e.Border != nil {
		t.add(borderToken(e.Border))
	}
	t.param("rt", e.Rotate)
	t.str("fl", string(e.Flip))
	t.param("r", e.Radius)
	return t
}

func backgroundTokens(t *tokens, bg *Background) {
	switch bg.Type {
	case BackgroundSolid:
		t.str("bg", color(bg.Color))
	case BackgroundBlurred:
		parts := []string{"bg-blurred"}
		if bg.BlurIntensity.truthy() {
			parts = append(parts, string(bg.BlurIntensity))
		}
		if bg.Brightness != 0 {
			parts = append(parts, formatFloat(bg.Brightness))
		}
		t.add(strings.Join(parts, "_"))
	case BackgroundDominant:
		t.add("bg-dominant")
	}
}

// trimToken emits t-true for automatic trimming or t-<level> for a threshold.
// An explicit false disables trimming.
func trimToken(t *tokens, trim Param) {
	switch trim {
	case "", "false":
	default:
		t.kv("t", string(trim))
	}
}

func borderToken(b *Border) string {
	return "b-" + formatFloat(b.Width) + "_" + color(b.Color)
}

// usmToken joins the provided unsharp mask components with '-'.
func usmToken(u *UnsharpMask) string {
	parts := []string{"e-usm"}
	for _, v := range []*float64{u.Radius, u.Sigma, u.Amount, u.Threshold} {
		if v != nil {
			parts = append(parts, formatFloat(*v))
		}
	}
	return strings.Join(parts, "-")
}

func shadowParts(s *Shadow) []string {
	var parts []string
	if s.Blur != nil {
		parts = append(parts, "bl-"+formatFloat(*s.Blur))
	}
	if s.Saturation != nil {
		parts = append(parts, "st-"+formatFloat(*s.Saturation))
	}
	if s.OffsetX != nil {
		parts = append(parts, "x-"+signed(*s.OffsetX))
	}
	if s.OffsetY != nil {
		parts = append(parts, "y-"+signed(*s.OffsetY))
	}
	return parts
}

func shadowToken(s *Shadow) string {
	return strings.Join(append([]string{"e-shadow"}, shadowParts(s)...), "_")
}

func gradientToken(g *Gradient) string {
	var t tokens
	t.add("e-gradient")
	t.param("ld", g.Direction)
	t.str("from", color(g.FromColor))
	t.str("to", color(g.ToColor))
	t.param("sp", g.StopPoint)
	return strings.Join(t, "_")
}
