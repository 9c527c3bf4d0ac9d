// Package qr builds QR image URLs against an external rendering endpoint.
package qr

import (
	"fmt"
	"net/url"
	"strings"
)

// Builder produces QR image URLs that encode the public page of a sauce.
type Builder struct {
	// RenderBaseURL is the external QR rendering endpoint.
	RenderBaseURL string
	// PublicBaseURL is the public site prefix the QR code points at.
	PublicBaseURL string
	// Size is the rendered square size in pixels.
	Size int
}

const defaultSize = 300

// ImageURL returns the rendering URL for one sauce code.
func (b Builder) ImageURL(sauceCode string) (string, error) {
	code := strings.TrimSpace(sauceCode)
	if code == "" {
		return "", fmt.Errorf("qr: sauce code is required")
	}
	base := strings.TrimRight(strings.TrimSpace(b.RenderBaseURL), "/")
	if base == "" {
		return "", fmt.Errorf("qr: render base url is required")
	}
	size := b.Size
	if size <= 0 {
		size = defaultSize
	}
	target := fmt.Sprintf("%s/sauces/%s", strings.TrimRight(b.PublicBaseURL, "/"), url.PathEscape(code))
	query := url.Values{}
	query.Set("size", fmt.Sprintf("%dx%d", size, size))
	query.Set("data", target)
	return base + "/?" + query.Encode(), nil
}
