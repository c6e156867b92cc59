// Package media resolves stored media paths to public URLs and removes
// stored files.
package media

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/pitchfund/internal/config"
)

const (
	VideoPlaceholder = "/static/img/video_placeholder.png"
	CoverPlaceholder = "/placeholder.svg"
)

// URLBuilder builds absolute URLs for one base URL.
type URLBuilder struct {
	baseURL  string
	mediaURL string
}

func NewURLBuilder(baseURL, mediaURL string) URLBuilder {
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return URLBuilder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		mediaURL: mediaURL,
	}
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Absolute joins an absolute path such as "/static/x.png" onto the base URL.
func (b URLBuilder) Absolute(path string) string {
	if isAbsolute(path) {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + path
}

func (b URLBuilder) mediaPath(path string) string {
	if isAbsolute(path) {
		return path
	}
	return b.Absolute(b.mediaURL + strings.TrimLeft(path, "/"))
}

func (b URLBuilder) File(path string) *string {
	if path == "" {
		return nil
	}
	u := b.mediaPath(path)
	return &u
}

func (b URLBuilder) Thumbnail(path string) string {
	if path == "" {
		return b.Absolute(VideoPlaceholder)
	}
	return b.mediaPath(path)
}

func (b URLBuilder) Cover(path *string) string {
	if path == nil || *path == "" {
		return CoverPlaceholder
	}
	return b.mediaPath(*path)
}

// Resolver creates a URLBuilder per request.
type Resolver struct {
	cfg config.MediaConfig
}

func NewResolver(cfg config.MediaConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// ForRequest uses the configured base URL, or the request's scheme and host.
func (r *Resolver) ForRequest(c echo.Context) URLBuilder {
	base := r.cfg.BaseURL
	if base == "" {
		base = c.Scheme() + "://" + c.Request().Host
	}
	return NewURLBuilder(base, r.cfg.URL)
}
