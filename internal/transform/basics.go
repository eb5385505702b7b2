package transform

func basicsToTokens(b *Basics) []string {
	var t tokens
	t.num("w", b.Width)
	t.num("h", b.Height)
	t.str("ar", b.AspectRatio)
	t.str("c", string(b.CropMode))
	t.str("fo", b.Focus.wire())
	t.ptr("x", b.X)
	t.ptr("y", b.Y)
	t.ptr("xc", b.XC)
	t.ptr("yc", b.YC)
	t.ptr("z", b.Zoom)
	t.nonzero("dpr", b.DPR)
	return t
}
