// Package fingerprint derives and persists a best-effort anonymous identity
// for one client installation. The identity is heuristic, not a credential:
// signals can collide or change between sessions.
package fingerprint

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// renderHashPlaceholder substitutes for the rendering signal on hosts that
// cannot produce one. Hash must always return a usable string.
const renderHashPlaceholder = "no-canvas"

// Signals are the ambient environment attributes a fingerprint is derived from.
type Signals struct {
	UserAgent      string // platform/browser identification string
	Language       string // locale setting
	Screen         string // display resolution, "WxH"
	TimezoneOffset int    // minutes west of UTC
	RenderHash     string // hash of a fixed off-screen rendering, or placeholder
}

// Hash reduces the signals to a short base-36 string with a rolling
// multiplicative hash. 32-bit signed overflow wraps by design, matching the
// original client algorithm bit for bit.
func Hash(s Signals) string {
	if s.RenderHash == "" {
		s.RenderHash = renderHashPlaceholder
	}
	joined := strings.Join([]string{
		s.UserAgent,
		s.Language,
		s.Screen,
		strconv.Itoa(s.TimezoneOffset),
		s.RenderHash,
	}, "|")

	var h int32
	for _, c := range joined {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}

// Collect reads host signals. Browsers feed user agent, locale, screen size,
// timezone offset and a canvas hash into the same shape; on a plain host we
// substitute the nearest equivalents and the fixed rendering placeholder.
func Collect() Signals {
	host, _ := os.Hostname()
	ua := runtime.GOOS + "/" + runtime.GOARCH
	if host != "" {
		ua += " " + host
	}

	lang := os.Getenv("LC_ALL")
	if lang == "" {
		lang = os.Getenv("LANG")
	}

	_, secsEast := time.Now().Zone()

	return Signals{
		UserAgent:      ua,
		Language:       lang,
		Screen:         "0x0",
		TimezoneOffset: -secsEast / 60,
		RenderHash:     renderHashPlaceholder,
	}
}
