package repository_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/nsvip/anidex-backend/domain/domain_provider"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	aniListDefaultBaseURL = "https://graphql.anilist.co"
	aniListTimeout        = 10 * time.Second
	aniListCachePrefix    = "anilist:media:"
	aniListCacheTTL       = 12 * time.Hour
	// B源匿名配额约90次/分钟
	aniListRateLimit = 1
)

// B源媒体详情查询。只取合并用到的字段
const aniListMediaQuery = `
query ($id: Int) {
  Media(id: $id, type: ANIME) {
    id
    title { romaji english native }
    description(asHtml: false)
    coverImage { extraLarge large }
    bannerImage
    genres
    status
    format
    averageScore
    popularity
    season
    seasonYear
    startDate { year month day }
    studios { edges { isMain node { id name } } }
    characters(sort: ROLE, perPage: 20) {
      edges {
        role
        node { id name { full native } image { large } }
        voiceActors(language: JAPANESE) { id name { full native } languageV2 }
      }
    }
    trailer { id site }
  }
}`

type aniListClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	redis      *redis.Client
	logger     *logrus.Logger
}

type AniListConfig struct {
	BaseURL string
	Timeout time.Duration
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewAniListClient(cfg AniListConfig) domain_provider.AniListClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = aniListDefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = aniListTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &aniListClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(aniListRateLimit), 3),
		redis:   cfg.Redis,
		logger:  cfg.Logger,
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type aniListResponse struct {
	Data struct {
		Media *domain_provider.AniListMedia `json:"Media"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *aniListClient) GetMedia(ctx context.Context, externalID int) (*domain_provider.AniListMedia, error) {
	if externalID <= 0 {
		return nil, fmt.Errorf("anilist: invalid media id %d", externalID)
	}

	cacheKey := aniListCachePrefix + strconv.Itoa(externalID)
	if cached := c.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("anilist: rate limiter: %w", err)
	}

	payload, err := json.Marshal(graphQLRequest{
		Query:     aniListMediaQuery,
		Variables: map[string]interface{}{"id": externalID},
	})
	if err != nil {
		return nil, fmt.Errorf("anilist: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("anilist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", providerUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anilist: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anilist: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("anilist: read response: %w", err)
	}

	var decoded aniListResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("anilist: decode response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("anilist: graphql error: %s", decoded.Errors[0].Message)
	}
	if decoded.Data.Media == nil {
		return nil, fmt.Errorf("anilist: media %d not found", externalID)
	}

	c.writeCache(ctx, cacheKey, decoded.Data.Media)
	return decoded.Data.Media, nil
}

func (c *aniListClient) readCache(ctx context.Context, key string) *domain_provider.AniListMedia {
	if c.redis == nil {
		return nil
	}
	cached, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("anilist cache read failed")
		}
		return nil
	}
	var media domain_provider.AniListMedia
	if err := json.Unmarshal([]byte(cached), &media); err != nil {
		c.logger.WithError(err).Warn("anilist cached payload unreadable")
		return nil
	}
	return &media
}

func (c *aniListClient) writeCache(ctx context.Context, key string, media *domain_provider.AniListMedia) {
	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(media)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, payload, aniListCacheTTL).Err(); err != nil {
		c.logger.WithError(err).Warn("anilist cache write failed")
	}
}
