package revx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func uploadTestServers(t *testing.T) (*Uploader, *atomic.Int64) {
	t.Helper()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/imagekit/auth", r.URL.Path)
		respond(w, http.StatusOK, map[string]interface{}{
			"token":     "sig-token",
			"signature": "deadbeef",
			"expire":    1900000000,
		})
	}))
	t.Cleanup(api.Close)

	var uploads atomic.Int64
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		require.Equal(t, "pk_test", r.FormValue("publicKey"))
		require.Equal(t, "deadbeef", r.FormValue("signature"))
		require.Equal(t, "sig-token", r.FormValue("token"))
		require.Equal(t, "1900000000", r.FormValue("expire"))
		require.Equal(t, "true", r.FormValue("useUniqueFileName"))

		fileName := r.FormValue("fileName")
		require.True(t, strings.HasSuffix(fileName, ".png"))

		n := uploads.Add(1)
		respond(w, http.StatusOK, map[string]string{
			"url": fmt.Sprintf("https://cdn.example.com/%d.png", n),
		})
	}))
	t.Cleanup(host.Close)

	uploader := NewUploader(NewClient(api.URL), "pk_test")
	uploader.UploadURL = host.URL
	return uploader, &uploads
}

func TestUploader_UploadFile(t *testing.T) {
	uploader, uploads := uploadTestServers(t)

	url, err := uploader.UploadFile(context.Background(), "photo.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	require.Contains(t, url, "https://cdn.example.com/")
	require.Equal(t, int64(1), uploads.Load())
}

func TestUploader_UploadFiles_ProgressIsAdditive(t *testing.T) {
	uploader, uploads := uploadTestServers(t)

	files := []File{
		{Name: "a.png", Content: strings.NewReader("a")},
		{Name: "b.png", Content: strings.NewReader("b")},
		{Name: "c.png", Content: strings.NewReader("c")},
	}

	var reported []int
	var mu sync.Mutex
	urls, err := uploader.UploadFiles(context.Background(), files, func(done, total int) {
		mu.Lock()
		reported = append(reported, done)
		mu.Unlock()
		require.Equal(t, 3, total)
	})
	require.NoError(t, err)
	require.Len(t, urls, 3)
	for _, u := range urls {
		require.NotEmpty(t, u)
	}
	require.Equal(t, int64(3), uploads.Load())
	require.ElementsMatch(t, []int{1, 2, 3}, reported)
}

func TestUploader_UploadFiles_FailureAborts(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, map[string]interface{}{
			"token": "t", "signature": "s", "expire": 1900000000,
		})
	}))
	defer api.Close()

	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusForbidden, map[string]string{"detail": "signature expired"})
	}))
	defer host.Close()

	uploader := NewUploader(NewClient(api.URL), "pk_test")
	uploader.UploadURL = host.URL

	_, err := uploader.UploadFiles(context.Background(), []File{
		{Name: "a.png", Content: strings.NewReader("a")},
	}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "signature expired", apiErr.Detail)
}
