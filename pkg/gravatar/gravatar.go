// Package gravatar builds avatar URLs following the Gravatar convention.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

var defaultParams = url.Values{
	"s": {"200"}, // size
	"r": {"pg"},  // rating
	"d": {"mm"},  // fallback image
}

// URL returns the avatar address for email. Case and surrounding whitespace
// are ignored, so equal addresses always map to the same URL.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return baseURL + hex.EncodeToString(sum[:]) + "?" + defaultParams.Encode()
}
