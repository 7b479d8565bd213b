// Package passport fetches borrower reputation data from the Talent Protocol
// passport API. Scores change slowly, so lookups go through a short-TTL Redis
// cache to keep the reputation page off the third-party rate limit.
package passport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/metrics"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/retry"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/service"
	"github.com/redis/go-redis/v9"
)

// ErrPassportNotFound means the wallet has no talent passport.
var ErrPassportNotFound = errors.New("passport not found for wallet")

const (
	defaultBaseURL  = "https://api.talentprotocol.com/api/v2"
	defaultCacheTTL = 5 * time.Minute
	maxAttempts     = 3
	retryBackoff    = 500 * time.Millisecond
)

// Passport is the upstream reputation snapshot for a wallet.
type Passport struct {
	PassportID          int      `json:"passport_id"`
	MainWallet          string   `json:"main_wallet"`
	VerifiedWallets     []string `json:"verified_wallets"`
	Verified            bool     `json:"verified"`
	HumanCheckmark      bool     `json:"human_checkmark"`
	Score               int      `json:"score"`
	ActivityScore       int      `json:"activity_score"`
	IdentityScore       int      `json:"identity_score"`
	SkillsScore         int      `json:"skills_score"`
	NominationsReceived int      `json:"nominations_received_count"`
	User                struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		ProfilePictureURL string `json:"profile_picture_url"`
	} `json:"user"`
	Socials []struct {
		FollowerCount int `json:"follower_count"`
	} `json:"passport_socials"`
}

// ProfileInput converts the upstream snapshot into the shape the lending
// service creates profiles from.
func (p *Passport) ProfileInput(wallet string) service.ProfileInput {
	followers := 0
	for _, s := range p.Socials {
		followers += s.FollowerCount
	}

	input := service.ProfileInput{
		PassportUserID:      p.User.ID,
		Wallet:              wallet,
		MainWallet:          p.MainWallet,
		Name:                p.User.Name,
		Verified:            p.Verified,
		HumanCheck:          p.HumanCheckmark,
		Score:               p.Score,
		ActivityScore:       p.ActivityScore,
		IdentityScore:       p.IdentityScore,
		SkillsScore:         p.SkillsScore,
		NominationsReceived: p.NominationsReceived,
		SocialsLinked:       len(p.Socials),
		FollowerCount:       followers,
	}
	if p.User.ProfilePictureURL != "" {
		url := p.User.ProfilePictureURL
		input.ProfilePictureURL = &url
	}
	return input
}

// Client talks to the passport API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Tests point this at an httptest
// server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithCache enables read-through caching of passports on rdb.
func WithCache(rdb *redis.Client, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = rdb
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

func NewClient(apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		cacheTTL:   defaultCacheTTL,
		logger:     logger.With("component", "passport"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetByWallet fetches the passport for a wallet, from cache when possible.
// Transient upstream failures are retried a fixed number of times.
func (c *Client) GetByWallet(ctx context.Context, wallet string) (*Passport, error) {
	if p := c.cacheGet(ctx, wallet); p != nil {
		metrics.PassportLookups.WithLabelValues("hit").Inc()
		return p, nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		p, err := c.fetch(ctx, wallet)
		if err == nil {
			metrics.PassportLookups.WithLabelValues("miss").Inc()
			c.cacheSet(ctx, wallet, p)
			return p, nil
		}

		lastErr = err
		if !retry.Classify(err).IsTransient() {
			break
		}
		c.logger.Warn("passport lookup retrying",
			"wallet", wallet,
			"attempt", attempt,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}

	if errors.Is(lastErr, ErrPassportNotFound) {
		metrics.PassportLookups.WithLabelValues("not_found").Inc()
	} else {
		metrics.PassportLookups.WithLabelValues("error").Inc()
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, wallet string) (*Passport, error) {
	url := fmt.Sprintf("%s/passports/%s", c.baseURL, wallet)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create passport request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("passport request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read passport response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.Terminal(ErrPassportNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, retry.Transient(fmt.Errorf("passport api status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, retry.Terminal(fmt.Errorf("passport api status %d: %s", resp.StatusCode, body))
	}

	var envelope struct {
		Passport Passport `json:"passport"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal passport: %w", err)
	}
	return &envelope.Passport, nil
}

func (c *Client) cacheKey(wallet string) string {
	return "passport:" + wallet
}

func (c *Client) cacheGet(ctx context.Context, wallet string) *Passport {
	if c.cache == nil {
		return nil
	}
	data, err := c.cache.Get(ctx, c.cacheKey(wallet)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("passport cache read failed", "wallet", wallet, "error", err)
		}
		return nil
	}
	var p Passport
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

func (c *Client) cacheSet(ctx context.Context, wallet string, p *Passport) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cacheKey(wallet), data, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("passport cache write failed", "wallet", wallet, "error", err)
	}
}
