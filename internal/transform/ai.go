package transform

import "strings"

func aiToTokens(ai *AiMagic) []string {
	var t tokens

	if bg := ai.Background; bg != nil {
		if bg.Remove {
			if bg.Mode == RemovalEconomy {
				t.add("e-bgremove")
			} else {
				t.add("e-removedotbg")
			}
		}
		if bg.ChangePrompt != "" {
			t.add("e-changebg-prompt-" + escapeComponent(bg.ChangePrompt))
		}
		if g := bg.GenerativeFill; g != nil {
			fill := "bg-genfill"
			if g.Prompt != "" {
				fill += "-prompt-" + escapeComponent(g.Prompt)
			}
			t.add(fill)
			t.num("w", g.Width)
			t.num("h", g.Height)
			t.str("cm", string(g.CropMode))
		}
	}

	if e := ai.Editing; e != nil {
		if e.Prompt != "" {
			t.add("e-edit-prompt-" + escapeComponent(e.Prompt))
		}
		t.flag(e.Retouch, "e-retouch")
		t.flag(e.Upscale, "e-upscale")
	}

	if sl := ai.ShadowLighting; sl != nil && sl.DropShadow != nil {
		if parts := shadowParts(sl.DropShadow); len(parts) > 0 {
			t.add("e-shadow-" + strings.Join(parts, "_"))
		}
	}

	if g := ai.Generation; g != nil {
		if g.TextPrompt != "" {
			t.add("ik-genimg-prompt-" + escapeComponent(g.TextPrompt))
		}
		t.flag(g.Variation, "e-genvar")
	}

	if c := ai.Cropping; c != nil {
		switch c.Type {
		case CroppingSmart:
			t.add("fo-auto")
		case CroppingFace:
			t.add("fo-face")
		case CroppingObject:
			if c.ObjectName != "" {
				t.str("fo", ObjectFocus(c.ObjectName).wire())
			}
		}
		t.ptr("z", c.Zoom)
		t.num("w", c.Width)
		t.num("h", c.Height)
	}

	return t
}
