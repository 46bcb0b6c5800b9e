package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPhotos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "mountain lakes", r.URL.Query().Get("query"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "v1", r.Header.Get("Accept-Version"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 133,
			"total_pages": 7,
			"results": [
				{
					"id": "photo-1",
					"urls": {
						"raw": "https://images.example.com/raw",
						"full": "https://images.example.com/full",
						"regular": "https://images.example.com/regular",
						"small": "https://images.example.com/small",
						"thumb": "https://images.example.com/thumb"
					},
					"alt_description": "lake surrounded by mountains",
					"description": null,
					"user": {"name": "Jane", "username": "jane"},
					"likes": 42
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	result, err := client.SearchPhotos(context.Background(), "mountain lakes")

	require.NoError(t, err)
	assert.Equal(t, 133, result.Total)
	assert.Equal(t, 7, result.TotalPages)
	require.Len(t, result.Results, 1)
	photo := result.Results[0]
	assert.Equal(t, "photo-1", photo.ID)
	assert.Equal(t, "https://images.example.com/regular", photo.URLs.Regular)
	assert.Equal(t, "lake surrounded by mountains", photo.AltDescription)
	assert.Equal(t, "jane", photo.User.Username)
	assert.Equal(t, 42, photo.Likes)
}

func TestSearchPhotosEmptyQuery(t *testing.T) {
	client := NewClient("test-key")

	result, err := client.SearchPhotos(context.Background(), "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchPhotosNoAccessKey(t *testing.T) {
	client := NewClient("")

	result, err := client.SearchPhotos(context.Background(), "mountains")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoAccessKey)
}

func TestSearchPhotosUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	result, err := client.SearchPhotos(context.Background(), "mountains")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestSearchPhotosRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Rate Limit Exceeded"))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	result, err := client.SearchPhotos(context.Background(), "mountains")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSearchPhotosMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	result, err := client.SearchPhotos(context.Background(), "mountains")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestSearchPhotosContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 0, "total_pages": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := client.SearchPhotos(ctx, "mountains")

	assert.Nil(t, result)
	require.Error(t, err)
}
