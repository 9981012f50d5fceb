// Package youtube talks to the YouTube Data API v3: video metadata, channel
// statistics, top comments, caption transcripts and comment posting.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"commendai/internal/apperror"
	"commendai/internal/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

const (
	defaultTimedTextURL = "https://www.youtube.com/api/timedtext"
	defaultMaxRetries   = 2
)

// Options configures a Client. Only APIKey is needed for read access;
// posting needs an OAuth token file.
type Options struct {
	APIKey           string
	OAuthTokenFile   string
	ClientSecretFile string
	RequestsPerSec   float64
	Timeout          time.Duration
	MaxRetries       int

	// Overrides used by tests.
	HTTPClient   *http.Client
	Endpoint     string
	TimedTextURL string
}

// Client wraps the generated API service with rate limiting, per-call
// timeouts, retries on transient read failures and error classification.
type Client struct {
	read         *youtube.Service
	write        *youtube.Service
	http         *http.Client
	limiter      *rate.Limiter
	timeout      time.Duration
	maxRetries   int
	timedTextURL string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	log := logger.FromContext(ctx)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	readOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.HTTPClient != nil {
		readOpts = append(readOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	if opts.Endpoint != "" {
		readOpts = append(readOpts, option.WithEndpoint(opts.Endpoint))
	}

	read, err := youtube.NewService(ctx, readOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}

	c := &Client{
		read:         read,
		http:         httpClient,
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		timeout:      opts.Timeout,
		maxRetries:   opts.MaxRetries,
		timedTextURL: opts.TimedTextURL,
	}
	if opts.RequestsPerSec <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}
	if c.maxRetries <= 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.timedTextURL == "" {
		c.timedTextURL = defaultTimedTextURL
	}

	if opts.OAuthTokenFile != "" {
		ts, err := loadTokenSource(ctx, opts.OAuthTokenFile, opts.ClientSecretFile)
		if err != nil {
			log.Warn("YouTube posting disabled, could not load OAuth token", "token_file", opts.OAuthTokenFile, "error", err)
		} else {
			writeOpts := []option.ClientOption{option.WithTokenSource(ts)}
			if opts.HTTPClient != nil {
				writeOpts = []option.ClientOption{option.WithHTTPClient(opts.HTTPClient)}
			}
			if opts.Endpoint != "" {
				writeOpts = append(writeOpts, option.WithEndpoint(opts.Endpoint))
			}
			c.write, err = youtube.NewService(ctx, writeOpts...)
			if err != nil {
				return nil, fmt.Errorf("youtube.NewService (oauth): %w", err)
			}
		}
	}

	log.Info("YouTube client ready", "can_post", c.write != nil, "rps", opts.RequestsPerSec, "timeout", c.timeout)
	return c, nil
}

// CanPost reports whether an OAuth identity is configured.
func (c *Client) CanPost() bool {
	return c.write != nil
}

// authorizedUser is the token file written by Google's installed-app flow.
// Both the Python client layout (token) and oauth2.Token (access_token)
// are accepted.
type authorizedUser struct {
	Token        string `json:"token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Expiry       string `json:"expiry"`
}

func loadTokenSource(ctx context.Context, tokenFile, secretFile string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, err
	}

	var au authorizedUser
	if err := json.Unmarshal(data, &au); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	tok := &oauth2.Token{AccessToken: au.AccessToken, RefreshToken: au.RefreshToken, TokenType: "Bearer"}
	if tok.AccessToken == "" {
		tok.AccessToken = au.Token
	}
	if t, err := time.Parse(time.RFC3339, au.Expiry); err == nil {
		tok.Expiry = t
	} else if tok.RefreshToken != "" {
		// Unknown expiry: refresh on first use.
		tok.Expiry = time.Unix(1, 0)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, errors.New("token file has neither access nor refresh token")
	}

	var conf *oauth2.Config
	switch {
	case secretFile != "":
		secret, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, err
		}
		conf, err = google.ConfigFromJSON(secret, youtube.YoutubeForceSslScope)
		if err != nil {
			return nil, fmt.Errorf("parse client secret: %w", err)
		}
	case au.ClientID != "":
		conf = &oauth2.Config{
			ClientID:     au.ClientID,
			ClientSecret: au.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{youtube.YoutubeForceSslScope},
		}
	default:
		return oauth2.StaticTokenSource(tok), nil
	}

	return conf.TokenSource(ctx, tok), nil
}

// call runs fn under the rate limiter and the per-call timeout.
func (c *Client) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return fn(ctx)
}

// callRead is call with retries on transient failures. Reads are safe to
// repeat; writes never go through here.
func (c *Client) callRead(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt*attempt) * 200 * time.Millisecond
			logger.FromContext(ctx).Debug("Retrying YouTube call", "op", op, "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return err
			case <-time.After(wait):
			}
		}
		err = c.call(ctx, fn)
		if err == nil || !isRetryable(ctx, err) {
			return err
		}
	}
	return err
}

var errPostingDisabled = apperror.Newf(apperror.PostPermissionDenied, "youtube.PostComment", "no OAuth token configured")
