package repository_provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nsvip/anidex-backend/domain/domain_provider"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestMovieDBGetDetails_Movie(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           603,
			"title":        "The Matrix",
			"overview":     "A hacker learns the truth.",
			"release_date": "1999-03-31",
			"vote_average": 8.2,
		})
	}))
	defer server.Close()

	client := NewMovieDBClient(MovieDBConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Logger:  quietLogger(),
	})

	details, err := client.GetDetails(context.Background(), "603", domain_provider.MediaKindMovie)
	require.NoError(t, err)
	assert.Equal(t, "/movie/603", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "The Matrix", details.DisplayTitle())
	assert.Equal(t, "1999-03-31", details.DisplayDate())
	require.NotNil(t, details.VoteAverage)
	assert.InDelta(t, 8.2, *details.VoteAverage, 0.001)
}

func TestMovieDBGetDetails_SeriesPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             1429,
			"name":           "Attack on Titan",
			"first_air_date": "2013-04-07",
		})
	}))
	defer server.Close()

	client := NewMovieDBClient(MovieDBConfig{BaseURL: server.URL, APIKey: "k", Logger: quietLogger()})

	details, err := client.GetDetails(context.Background(), "1429", domain_provider.MediaKindSeries)
	require.NoError(t, err)
	assert.Equal(t, "/tv/1429", gotPath)
	assert.Equal(t, "Attack on Titan", details.DisplayTitle())
	assert.Equal(t, "2013-04-07", details.DisplayDate())
}

func TestMovieDBGetDetails_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewMovieDBClient(MovieDBConfig{BaseURL: server.URL, APIKey: "k", Logger: quietLogger()})

	_, err := client.GetDetails(context.Background(), "999999", domain_provider.MediaKindMovie)
	assert.Error(t, err)
}

func TestMovieDBGetDetails_EmptyID(t *testing.T) {
	client := NewMovieDBClient(MovieDBConfig{APIKey: "k", Logger: quietLogger()})

	_, err := client.GetDetails(context.Background(), "", domain_provider.MediaKindMovie)
	assert.Error(t, err)
}

func TestAniListGetMedia(t *testing.T) {
	score := 85
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(16498), req.Variables["id"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"Media": map[string]interface{}{
					"id":           16498,
					"title":        map[string]string{"romaji": "Shingeki no Kyojin", "english": "Attack on Titan"},
					"genres":       []string{"Action", "Drama"},
					"status":       "FINISHED",
					"format":       "TV",
					"averageScore": score,
					"startDate":    map[string]int{"year": 2013, "month": 4, "day": 7},
					"trailer":      map[string]string{"id": "abc123", "site": "youtube"},
				},
			},
		})
	}))
	defer server.Close()

	client := NewAniListClient(AniListConfig{BaseURL: server.URL, Logger: quietLogger()})

	media, err := client.GetMedia(context.Background(), 16498)
	require.NoError(t, err)
	assert.Equal(t, "Shingeki no Kyojin", media.PreferredTitle())
	assert.Equal(t, []string{"Action", "Drama"}, media.Genres)
	require.NotNil(t, media.AverageScore)
	assert.Equal(t, 85, *media.AverageScore)
	require.NotNil(t, media.StartDate.Year)
	assert.Equal(t, 2013, *media.StartDate.Year)
	require.NotNil(t, media.Trailer)
	assert.Equal(t, "youtube", media.Trailer.Site)
}

func TestAniListGetMedia_GraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"Media": nil},
			"errors": []map[string]interface{}{
				{"message": "Not Found."},
			},
		})
	}))
	defer server.Close()

	client := NewAniListClient(AniListConfig{BaseURL: server.URL, Logger: quietLogger()})

	_, err := client.GetMedia(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found.")
}

func TestAniListGetMedia_InvalidID(t *testing.T) {
	client := NewAniListClient(AniListConfig{Logger: quietLogger()})

	_, err := client.GetMedia(context.Background(), 0)
	assert.Error(t, err)
}
