package nbastats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://stats.nba.com/stats"
	RequestTimeout   = 30 * time.Second
	DialTimeout      = 10 * time.Second
	IdleConnTimeout  = 90 * time.Second
	KeepAlive        = 30 * time.Second
	MaxIdleConns     = 16
	RetryWaitTime    = 500 * time.Millisecond
	RetryWaitTimeMax = 5 * time.Second
	leagueID         = "00"
)

// ErrUnexpectedStatus is returned for any non-2xx provider response.
var ErrUnexpectedStatus = errors.New("nbastats: unexpected status")

// Config configures the provider client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Retries are transport-level retries for 429 and 5xx responses.
	Retries int
	// CatalogSeason is sent with the player catalog query.
	CatalogSeason string
}

// Client implements ports.StatsProvider against the stats.nba.com JSON API.
type Client struct {
	http          *resty.Client
	baseURL       string
	catalogSeason string
	logger        *logrus.Logger
}

func NewClient(cfg Config, logger *logrus.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = RequestTimeout
	}
	return &Client{
		http:          createHTTPClient(timeout, cfg.Retries, logger),
		baseURL:       base,
		catalogSeason: cfg.CatalogSeason,
		logger:        logger,
	}
}

func createHTTPClient(timeout time.Duration, retries int, logger *logrus.Logger) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetTransport(createTransport())
	c.SetHeaders(map[string]string{
		"User-Agent":         "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		"Accept":             "application/json, text/plain, */*",
		"Referer":            "https://www.nba.com/",
		"Origin":             "https://www.nba.com",
		"x-nba-stats-origin": "stats",
		"x-nba-stats-token":  "true",
	})
	if retries > 0 {
		c.SetRetryCount(retries)
		c.SetRetryWaitTime(RetryWaitTime)
		c.SetRetryMaxWaitTime(RetryWaitTimeMax)
		c.AddRetryCondition(func(response *resty.Response, err error) bool {
			if response == nil {
				return false
			}
			switch response.StatusCode() {
			case
				http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				return true
			default:
				return false
			}
		})
		c.AddRetryHook(func(response *resty.Response, err error) {
			if logger != nil && response != nil {
				logger.WithFields(logrus.Fields{"url": response.Request.URL, "status": response.StatusCode()}).Warn("nbastats: retrying request")
			}
		})
	}
	return c
}

func createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   DialTimeout,
		KeepAlive: KeepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          MaxIdleConns,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   MaxIdleConns,
	}
}

// payload is the envelope shared by stats endpoints. Most return a
// "resultSets" array; a few return a single "resultSet" object.
type payload struct {
	ResultSets json.RawMessage `json:"resultSets"`
	ResultSet  json.RawMessage `json:"resultSet"`
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) (resultSets, error) {
	start := time.Now()
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.baseURL + "/" + endpoint)
	if err != nil {
		return nil, fmt.Errorf("nbastats %s: %w", endpoint, err)
	}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{"endpoint": endpoint, "status": res.StatusCode(), "elapsed": time.Since(start).String()}).Debug("nbastats response")
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, endpoint, res.StatusCode())
	}
	sets, err := decodePayload(res.Body())
	if err != nil {
		return nil, fmt.Errorf("nbastats %s: %w", endpoint, err)
	}
	return sets, nil
}

func decodePayload(body []byte) (resultSets, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	raw := p.ResultSets
	if len(raw) == 0 || string(raw) == "null" {
		raw = p.ResultSet
	}
	if len(raw) == 0 || string(raw) == "null" {
		return resultSets{}, nil
	}
	var sets resultSets
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &sets); err != nil {
			return nil, fmt.Errorf("decode result sets: %w", err)
		}
		return sets, nil
	}
	var single resultSet
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode result set: %w", err)
	}
	return resultSets{single}, nil
}
