package utils

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servePNG(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sample.png":
			w.Write(buf.Bytes())
		case "/notes.txt":
			w.Write([]byte("not an image at all"))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	srv := servePNG(t)
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/sample.png")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	_, err = png.Decode(f)
	assert.NoError(t, err, "the temporary file should be readable from its start")
}

func TestUtils_ShouldRejectDownloads(t *testing.T) {
	srv := servePNG(t)
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/missing.png")
	assert.Error(t, err)
	assert.Nil(t, f)

	f, err = DownloadImage(srv.URL + "/notes.txt")
	assert.Error(t, err)
	if f != nil {
		f.Close()
		os.Remove(f.Name())
	}
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/pixtrace/"))
	assert.False(t, IsValidUrl("testdata/sample.png"))
	assert.False(t, IsValidUrl("-"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "sample-*.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 2, 2))))
	require.NoError(t, f.Close())

	ftype, err := DetectContentType(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "image/png", ftype)
}
