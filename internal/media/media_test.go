package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/pitchfund/internal/config"
)

func TestURLBuilder(t *testing.T) {
	b := NewURLBuilder("http://api.test/", "/media")

	assert.Equal(t, "http://api.test/media/business_images/a.png", *b.File("business_images/a.png"))
	assert.Nil(t, b.File(""))
	assert.Equal(t, "https://cdn.test/a.png", *b.File("https://cdn.test/a.png"))

	assert.Equal(t, "http://api.test/static/img/video_placeholder.png", b.Thumbnail(""))
	assert.Equal(t, "http://api.test/media/thumbs/t.png", b.Thumbnail("thumbs/t.png"))

	assert.Equal(t, "/placeholder.svg", b.Cover(nil))
	empty := ""
	assert.Equal(t, "/placeholder.svg", b.Cover(&empty))
	cover := "a.png"
	assert.Equal(t, "http://api.test/media/a.png", b.Cover(&cover))
}

func TestResolver_ForRequest(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name  string
		cfg   config.MediaConfig
		setup func(r *http.Request)
		want  string
	}{
		{
			name: "request host",
			cfg:  config.MediaConfig{URL: "/media/"},
			want: "http://example.com/media/a.png",
		},
		{
			name:  "forwarded proto",
			cfg:   config.MediaConfig{URL: "/media/"},
			setup: func(r *http.Request) { r.Header.Set(echo.HeaderXForwardedProto, "https") },
			want:  "https://example.com/media/a.png",
		},
		{
			name: "configured base",
			cfg:  config.MediaConfig{URL: "/media/", BaseURL: "https://files.pitchfund.test"},
			want: "https://files.pitchfund.test/media/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
			if tt.setup != nil {
				tt.setup(req)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			got := NewResolver(tt.cfg).ForRequest(c).File("a.png")
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestStore_Remove(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "business_images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "business_images", "a.png"), []byte("x"), 0o644))

	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	logger := zerolog.Nop()
	store := NewStore(root, &logger)

	removed, err := store.Remove(context.Background(), []string{
		"business_images/a.png",
		"business_images/missing.png",
		"../" + filepath.Base(filepath.Dir(outside)) + "/keep.txt",
		outside,
		"",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(root, "business_images", "a.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
