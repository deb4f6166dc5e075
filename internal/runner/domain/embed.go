package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	embedBaseURL  = "https://www.figma.com/embed"
	scalingSuffix = "&scaling=contain&content-scaling=responsive"

	// Viewports narrower than this are treated as mobile even when the user
	// agent looks like a desktop browser.
	mobileWidthThreshold = 800

	// AdvisoryTTL is how long a mobile experience advisory stays visible
	// before dismissing itself.
	AdvisoryTTL = 8 * time.Second
)

var mobileAgentPattern = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// BuildEmbedURL converts a raw design-tool share link into an embeddable URL.
// Prototype links are wrapped through the embed endpoint so the third party's
// content-security restrictions accept them; other links pass through as-is.
// Forced scaling parameters are appended in both cases.
func BuildEmbedURL(link string, logger Logger) string {
	link = strings.TrimSpace(link)

	if !strings.HasPrefix(link, "http") {
		// The third party rejects non-HTTPS embeds; proceed anyway and let
		// the iframe surface the rejection.
		logger.Error(fmt.Sprintf("prototype link without protocol, embedding will likely fail: %q", link))
	}

	final := link
	if strings.Contains(link, "/proto/") {
		logger.Debug("prototype link detected, applying embed wrapper")
		final = embedBaseURL + "?embed_host=share&url=" + url.QueryEscape(link)
	}

	return final + scalingSuffix
}

// Viewport describes the tester's screen as seen by a presenter.
type Viewport struct {
	Width     int
	Height    int
	UserAgent string
}

// IsMobile classifies the viewport as a touch/narrow device: a known mobile
// user agent, or any viewport narrower than 800 logical pixels.
func (v Viewport) IsMobile() bool {
	return mobileAgentPattern.MatchString(v.UserAgent) || v.Width < mobileWidthThreshold
}

// IsPortrait reports whether the viewport is taller than it is wide.
func (v Viewport) IsPortrait() bool {
	return v.Height > v.Width
}

// Geometry is the device-specific shape of the prototype container.
type Geometry struct {
	AspectWidth   int
	AspectHeight  int
	HeightPercent int  // portion of the viewport height the container takes
	MaxWidthVW    int  // cap as a portion of viewport width
	CapHeight     bool // strict max-height cap to prevent vertical overflow
}

// ContainerGeometry computes the prototype container shape for a device type.
// Web mockups are landscape 16:10 at 92% of the viewport height. App mockups
// are portrait 9:21; on a desktop viewport they additionally get capped at 92%
// of both axes so the tall frame cannot overflow vertically.
func ContainerGeometry(device DeviceType, v Viewport) Geometry {
	if device == DeviceWeb {
		return Geometry{AspectWidth: 16, AspectHeight: 10, HeightPercent: 92, MaxWidthVW: 98}
	}
	if v.IsMobile() {
		return Geometry{AspectWidth: 9, AspectHeight: 21, HeightPercent: 92, MaxWidthVW: 100}
	}
	return Geometry{AspectWidth: 9, AspectHeight: 21, HeightPercent: 92, MaxWidthVW: 92, CapHeight: true}
}

// CSS renders the geometry as an inline style for the web presenter.
func (g Geometry) CSS() string {
	var b strings.Builder
	if g.CapHeight {
		fmt.Fprintf(&b, "height: %dsvh; max-height: %dsvh; ", g.HeightPercent, g.HeightPercent)
	} else {
		fmt.Fprintf(&b, "height: %d%%; ", g.HeightPercent)
	}
	fmt.Fprintf(&b, "width: auto; max-width: %dvw; aspect-ratio: %d / %d; ", g.MaxWidthVW, g.AspectWidth, g.AspectHeight)
	b.WriteString("margin: auto; border-radius: 12px; overflow: hidden; background-color: black;")
	return b.String()
}

// Advisory is a transient, dismissible prompt shown on mobile devices. At most
// one is visible at a time; presenters enforce that.
type Advisory struct {
	Message string
	TTL     time.Duration
}

// MobileAdvisory returns the experience advisory for the given device and
// viewport, or nil when the viewport is not mobile. Web prototypes viewed in
// portrait ask the tester to rotate; every other mobile case asks for
// fullscreen only.
func MobileAdvisory(device DeviceType, v Viewport) *Advisory {
	if !v.IsMobile() {
		return nil
	}
	if device == DeviceWeb && v.IsPortrait() {
		return &Advisory{
			Message: "Girá tu celular y activá pantalla completa para una mejor experiencia",
			TTL:     AdvisoryTTL,
		}
	}
	return &Advisory{
		Message: "Activá pantalla completa para una mejor experiencia",
		TTL:     AdvisoryTTL,
	}
}
