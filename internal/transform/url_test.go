package transform

import "testing"

func TestAppendTr(t *testing.T) {
	cases := []struct {
		src, tr, want string
	}{
		{"https://ik.example.com/img.jpg", "", "https://ik.example.com/img.jpg"},
		{"https://ik.example.com/img.jpg", "w-300", "https://ik.example.com/img.jpg?tr=w-300"},
		{"https://ik.example.com/img.jpg?v=2", "w-300", "https://ik.example.com/img.jpg?v=2&tr=w-300"},
		{"https://ik.example.com/img.jpg?a=1&b=2", "w-1,h-2", "https://ik.example.com/img.jpg?a=1&b=2&tr=w-1,h-2"},
		{"https://ik.example.com", "w-1", "https://ik.example.com/?tr=w-1"},
		{"https://ik.example.com:8443/a/b.png", "w-1", "https://ik.example.com:8443/a/b.png?tr=w-1"},
		// The origin is kept as given, default port and host case included.
		{"https://ik.example.com:443/img.jpg", "w-1", "https://ik.example.com:443/img.jpg?tr=w-1"},
		{"https://IK.Example.com/img.jpg", "w-1", "https://IK.Example.com/img.jpg?tr=w-1"},
		{"https://ik.example.com/img.jpg#frag", "w-1", "https://ik.example.com/img.jpg?tr=w-1"},
		{"https://ik.example.com/my%20img.jpg", "w-1", "https://ik.example.com/my%20img.jpg?tr=w-1"},
		// tr is spliced verbatim.
		{"https://ik.example.com/img.jpg", "l-text,i-a%20b,l-end", "https://ik.example.com/img.jpg?tr=l-text,i-a%20b,l-end"},
		// Not absolute URLs: plain concatenation.
		{"img.jpg", "w-1", "img.jpg?tr=w-1"},
		{"/media/img.jpg?v=3", "w-1", "/media/img.jpg?v=3&tr=w-1"},
		{"http://[::1", "w-1", "http://[::1?tr=w-1"},
		{"", "w-1", "?tr=w-1"},
	}
	for _, c := range cases {
		if got := AppendTr(c.src, c.tr); got != c.want {
			t.Errorf("AppendTr(%q, %q): got %q, want %q", c.src, c.tr, got, c.want)
		}
	}
}

func TestResolveSource(t *testing.T) {
	cases := []struct {
		endpoint, src, want string
	}{
		{"", "img.jpg", "img.jpg"},
		{"https://ik.example.com/demo", "img.jpg", "https://ik.example.com/demo/img.jpg"},
		{"https://ik.example.com/demo/", "/users/u1/img.jpg", "https://ik.example.com/demo/users/u1/img.jpg"},
		{"https://ik.example.com/demo", "https://other.example.com/x.png", "https://other.example.com/x.png"},
	}
	for _, c := range cases {
		if got := ResolveSource(c.endpoint, c.src); got != c.want {
			t.Errorf("ResolveSource(%q, %q): got %q, want %q", c.endpoint, c.src, got, c.want)
		}
	}
}

func TestEscapeComponent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a sunny beach", "a%20sunny%20beach"},
		{"a&b=c/d", "a%26b%3Dc%2Fd"},
		{"it's (ok)*~!", "it's%20(ok)*~!"},
		{"1+1", "1%2B1"},
		{"café", "caf%C3%A9"},
	}
	for _, c := range cases {
		if got := escapeComponent(c.in); got != c.want {
			t.Errorf("escapeComponent(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}
