package repository_provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nsvip/anidex-backend/domain/domain_provider"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	movieDBDefaultBaseURL = "https://api.themoviedb.org/3"
	movieDBTimeout        = 10 * time.Second
	movieDBCachePrefix    = "moviedb:details:"
	movieDBCacheTTL       = 24 * time.Hour
	// A源限速：40次/10秒的官方配额，留安全余量
	movieDBRateLimit = 3

	providerUserAgent = "AniDexBackend/1.0"

	maxResponseSize = 5 * 1024 * 1024
)

// movieDBClient A源（影视关系库）REST客户端。
// 响应进redis缓存；源不可用时错误原样返回，降级决策在合并层做
type movieDBClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	redis      *redis.Client
	logger     *logrus.Logger
}

type MovieDBConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewMovieDBClient(cfg MovieDBConfig) domain_provider.MovieDBClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = movieDBDefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = movieDBTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &movieDBClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(movieDBRateLimit), movieDBRateLimit),
		redis:   cfg.Redis,
		logger:  cfg.Logger,
	}
}

func (c *movieDBClient) GetDetails(ctx context.Context, externalID string, kind domain_provider.MediaKind) (*domain_provider.MovieDBDetails, error) {
	if externalID == "" {
		return nil, fmt.Errorf("moviedb: external id cannot be empty")
	}

	cacheKey := movieDBCachePrefix + string(kind) + ":" + externalID
	if cached := c.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	path := "/movie/" + url.PathEscape(externalID)
	if kind == domain_provider.MediaKindSeries {
		path = "/tv/" + url.PathEscape(externalID)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	requestURL := c.baseURL + path + "?" + params.Encode()

	body, err := c.makeRequest(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var details domain_provider.MovieDBDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("moviedb: decode response: %w", err)
	}

	c.writeCache(ctx, cacheKey, &details)
	return &details, nil
}

func (c *movieDBClient) makeRequest(ctx context.Context, requestURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("moviedb: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("moviedb: build request: %w", err)
	}
	req.Header.Set("User-Agent", providerUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moviedb: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moviedb: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("moviedb: read response: %w", err)
	}
	return body, nil
}

func (c *movieDBClient) readCache(ctx context.Context, key string) *domain_provider.MovieDBDetails {
	if c.redis == nil {
		return nil
	}
	cached, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("moviedb cache read failed")
		}
		return nil
	}
	var details domain_provider.MovieDBDetails
	if err := json.Unmarshal([]byte(cached), &details); err != nil {
		c.logger.WithError(err).Warn("moviedb cached payload unreadable")
		return nil
	}
	return &details
}

func (c *movieDBClient) writeCache(ctx context.Context, key string, details *domain_provider.MovieDBDetails) {
	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, payload, movieDBCacheTTL).Err(); err != nil {
		c.logger.WithError(err).Warn("moviedb cache write failed")
	}
}
