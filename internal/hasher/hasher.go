package hasher

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// KeyLen is the number of hex chars used for cache keys (64 bits).
const KeyLen = 16

// CacheKey derives a stable key for a source rendered with a transformation
// string. Identical (src, tr) pairs always map to the same key, so it can
// be used for CDN cache busting and manifest diffing.
func CacheKey(src, tr string) string {
	d := xxhash.New()
	d.WriteString(src)
	d.Write([]byte{0}) // separator, so ("ab","c") != ("a","bc")
	d.WriteString(tr)
	return encode(d.Sum64(), KeyLen)
}

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to the given length. Used to fingerprint job files.
func ContentHash(data []byte, hexLen int) string {
	return encode(xxhash.Sum64(data), hexLen)
}

func encode(v uint64, hexLen int) string {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	full := hex.EncodeToString(b)
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
