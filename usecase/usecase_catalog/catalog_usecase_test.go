package usecase_catalog

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/domain/domain_provider"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	domain_catalog.AnimeRepository
	anime *domain_catalog.Anime
	err   error
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*domain_catalog.Anime, error) {
	return r.anime, r.err
}

type stubMovieDB struct {
	details *domain_provider.MovieDBDetails
	err     error
	kind    domain_provider.MediaKind
	calls   int
}

func (s *stubMovieDB) GetDetails(ctx context.Context, externalID string, kind domain_provider.MediaKind) (*domain_provider.MovieDBDetails, error) {
	s.calls++
	s.kind = kind
	return s.details, s.err
}

type stubAniList struct {
	media *domain_provider.AniListMedia
	err   error
	calls int
}

func (s *stubAniList) GetMedia(ctx context.Context, externalID int) (*domain_provider.AniListMedia, error) {
	s.calls++
	return s.media, s.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func linkedAnime() *domain_catalog.Anime {
	return &domain_catalog.Anime{
		ID:          "demon-slayer",
		Title:       "Stored Title",
		Type:        "TV",
		ProviderAID: "85937",
		ProviderBID: 101922,
	}
}

func TestGetByID_MergesBothProviders(t *testing.T) {
	movieDB := &stubMovieDB{details: &domain_provider.MovieDBDetails{
		Name:        "Demon Slayer",
		VoteAverage: floatPtr(8.6),
	}}
	aniList := &stubAniList{media: &domain_provider.AniListMedia{
		ID:     101922,
		Title:  domain_provider.AniListTitle{Romaji: "Kimetsu no Yaiba"},
		Genres: []string{"Action"},
	}}

	uc := NewCatalogUsecase(&stubRepo{anime: linkedAnime()}, movieDB, aniList, testLogger(), time.Second)

	got, err := uc.GetByID(context.Background(), "demon-slayer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, movieDB.calls)
	assert.Equal(t, 1, aniList.calls)
	assert.Equal(t, domain_provider.MediaKindSeries, movieDB.kind)
	// B源后合并，重叠字段以B源为准
	assert.Equal(t, "Kimetsu no Yaiba", got.Title)
	assert.Equal(t, []string{"Action"}, got.Genres)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 8.6, *got.Rating, 0.001)
}

func TestGetByID_OneProviderFailureDoesNotBlockOther(t *testing.T) {
	movieDB := &stubMovieDB{err: errors.New("upstream 503")}
	aniList := &stubAniList{media: &domain_provider.AniListMedia{
		ID:    101922,
		Title: domain_provider.AniListTitle{Romaji: "Kimetsu no Yaiba"},
	}}

	uc := NewCatalogUsecase(&stubRepo{anime: linkedAnime()}, movieDB, aniList, testLogger(), time.Second)

	got, err := uc.GetByID(context.Background(), "demon-slayer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kimetsu no Yaiba", got.Title)
}

func TestGetByID_AllProvidersFailServesStored(t *testing.T) {
	movieDB := &stubMovieDB{err: errors.New("upstream 503")}
	aniList := &stubAniList{err: errors.New("rate limited")}

	uc := NewCatalogUsecase(&stubRepo{anime: linkedAnime()}, movieDB, aniList, testLogger(), time.Second)

	got, err := uc.GetByID(context.Background(), "demon-slayer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Stored Title", got.Title)
}

func TestGetByID_UnlinkedSkipsProviders(t *testing.T) {
	movieDB := &stubMovieDB{}
	aniList := &stubAniList{}
	anime := &domain_catalog.Anime{ID: "local-only", Title: "Local Only"}

	uc := NewCatalogUsecase(&stubRepo{anime: anime}, movieDB, aniList, testLogger(), time.Second)

	got, err := uc.GetByID(context.Background(), "local-only")
	require.NoError(t, err)
	assert.Zero(t, movieDB.calls)
	assert.Zero(t, aniList.calls)
	assert.Equal(t, "Local Only", got.Title)
}

func TestGetByID_NotFoundPassthrough(t *testing.T) {
	movieDB := &stubMovieDB{}
	uc := NewCatalogUsecase(&stubRepo{}, movieDB, &stubAniList{}, testLogger(), time.Second)

	got, err := uc.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, movieDB.calls)
}

func TestGetByID_DoesNotMutateStoredEntity(t *testing.T) {
	stored := linkedAnime()
	aniList := &stubAniList{media: &domain_provider.AniListMedia{
		ID:    101922,
		Title: domain_provider.AniListTitle{Romaji: "Kimetsu no Yaiba"},
	}}

	uc := NewCatalogUsecase(&stubRepo{anime: stored}, &stubMovieDB{}, aniList, testLogger(), time.Second)

	got, err := uc.GetByID(context.Background(), "demon-slayer")
	require.NoError(t, err)
	assert.Equal(t, "Kimetsu no Yaiba", got.Title)
	assert.Equal(t, "Stored Title", stored.Title)
}

func TestGetByID_MovieTypeUsesMovieEndpoint(t *testing.T) {
	movieDB := &stubMovieDB{details: &domain_provider.MovieDBDetails{Title: "Your Name"}}
	anime := &domain_catalog.Anime{ID: "your-name", Title: "stored", Type: "Movie", ProviderAID: "372058"}

	uc := NewCatalogUsecase(&stubRepo{anime: anime}, movieDB, &stubAniList{}, testLogger(), time.Second)

	_, err := uc.GetByID(context.Background(), "your-name")
	require.NoError(t, err)
	assert.Equal(t, domain_provider.MediaKindMovie, movieDB.kind)
}
