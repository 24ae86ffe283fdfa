package fonts_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayvaroff/ayvaroff.github.io/fonts"
)

func TestEmbeddedFacesValidate(t *testing.T) {
	for _, name := range fonts.EmbeddedNames() {
		t.Run(name, func(t *testing.T) {
			data, err := fonts.Embedded(name)
			require.NoError(t, err)
			family, err := fonts.Validate(data)
			require.NoError(t, err)
			assert.NotEmpty(t, family)
		})
	}
}

func TestLoadEmbedded(t *testing.T) {
	data, err := fonts.Load(context.Background(), fonts.DefaultBold)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = fonts.Load(context.Background(), "embed:calibri")
	assert.ErrorContains(t, err, "unknown embedded font")
}

func TestLoadFromFile(t *testing.T) {
	src, err := fonts.Embedded("lmroman10-regular")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "roman.otf")
	require.NoError(t, os.WriteFile(path, src, 0o644))

	face, err := new(fonts.Loader).LoadFace(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, src, face.Data)
	assert.Equal(t, path, face.Src)

	_, err = fonts.Load(context.Background(), filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.ttf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := fonts.Load(context.Background(), path)
	assert.ErrorIs(t, err, fonts.ErrEmptyFont)
}

func TestLoadOverHTTP(t *testing.T) {
	body, err := fonts.Embedded("lmsans10-regular")
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/calibri.ttf":
			_, _ = w.Write(body)
		case "/broken.ttf":
			_, _ = w.Write([]byte("not a font"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := &fonts.Loader{Client: srv.Client()}
	face, err := loader.LoadFace(context.Background(), srv.URL+"/calibri.ttf")
	require.NoError(t, err)
	assert.Equal(t, body, face.Data)
	assert.NotEmpty(t, face.Family)

	_, err = loader.Load(context.Background(), srv.URL+"/missing.ttf")
	assert.ErrorContains(t, err, "unexpected status")

	_, err = loader.LoadFace(context.Background(), srv.URL+"/broken.ttf")
	assert.ErrorContains(t, err, "parse font")
}

func TestLoadHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := (&fonts.Loader{Client: srv.Client()}).Load(ctx, srv.URL+"/slow.ttf")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestValidateRejectsEmpty(t *testing.T) {
	_, err := fonts.Validate(nil)
	assert.ErrorIs(t, err, fonts.ErrEmptyFont)
}
