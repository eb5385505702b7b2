package transform

import (
	"net/url"
	"strings"
)

// AppendTr adds tr=<tr> to the query string of src, keeping any existing
// query parameters. An empty tr returns src unchanged. When src is not an
// absolute URL the parameter is appended as plain text. tr is never escaped.
// The host and port of an absolute src are not normalized.
func AppendTr(src, tr string) string {
	if tr == "" {
		return src
	}
	u, err := url.Parse(src)
	if err != nil || !u.IsAbs() || u.Host == "" {
		if strings.Contains(src, "?") {
			return src + "&tr=" + tr
		}
		return src + "?tr=" + tr
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	base := u.Scheme + "://" + u.Host + path
	if u.RawQuery != "" {
		return base + "?" + u.RawQuery + "&tr=" + tr
	}
	return base + "?tr=" + tr
}

// ResolveSource turns a media library path into a URL under endpoint.
// Absolute URLs and an empty endpoint leave src as is.
func ResolveSource(endpoint, src string) string {
	if endpoint == "" || isAbsURL(src) {
		return src
	}
	return strings.TrimRight(endpoint, "/") + "/" + strings.TrimLeft(src, "/")
}

func isAbsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}
