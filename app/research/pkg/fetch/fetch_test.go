package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientFetch_Success(t *testing.T) {
	var gotUA, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Test")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	res := NewClient(0).Fetch(context.Background(), srv.URL, WithHeader("X-Test", "1"))

	assert.True(t, res.OK())
	assert.Equal(t, "<html>ok</html>", res.Content)
	assert.Equal(t, srv.URL, res.URL)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "1", gotCustom)
}

func TestClientFetch_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	res := NewClient(0).Fetch(context.Background(), srv.URL)

	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "HTTP 404", res.Error)
	assert.Empty(t, res.Content)
}

func TestClientFetch_Timeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	res := NewClient(time.Second).Fetch(context.Background(), srv.URL, WithTimeout(50*time.Millisecond))

	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "Request timeout", res.Error)
}

func TestClientFetch_TransportError(t *testing.T) {
	res := NewClient(0).Fetch(context.Background(), "http://127.0.0.1:1/unreachable")

	assert.Equal(t, StatusError, res.Status)
	assert.NotEmpty(t, res.Error)
}

func TestClientFetch_InvalidURL(t *testing.T) {
	res := NewClient(0).Fetch(context.Background(), "://bad")

	assert.False(t, res.OK())
	assert.NotEmpty(t, res.Error)
}
