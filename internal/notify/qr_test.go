package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPQRRendererRenderPNG(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://gate.example.com/checkin/abc", r.URL.Query().Get("data"))
		assert.Equal(t, "300x300", r.URL.Query().Get("size"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	r := NewHTTPQRRenderer(srv.URL, 300)
	got, err := r.RenderPNG(context.Background(), "https://gate.example.com/checkin/abc")
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestHTTPQRRendererErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewHTTPQRRenderer(srv.URL, 300).RenderPNG(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		_, err := NewHTTPQRRenderer(srv.URL, 300).RenderPNG(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty response")
	})

	t.Run("unreachable service", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // shut down before the call

		_, err := NewHTTPQRRenderer(srv.URL, 300).RenderPNG(context.Background(), "x")
		assert.Error(t, err)
	})
}
