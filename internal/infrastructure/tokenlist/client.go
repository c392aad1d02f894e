package tokenlist

import (
	"context"
	"fmt"
	"time"

	"wallet_balances/internal/app/port"
	"wallet_balances/internal/domain/entity"
	"wallet_balances/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches full token catalogs from their configured HTTP locations
// (token-list JSON documents, one per network).
type Client struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a token-list client.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		timeout: timeout,
		logger:  logger.Named("TokenListClient"),
	}
}

// FetchTokenList retrieves and parses the token list at the given URL.
// Entries without an address are dropped.
func (c *Client) FetchTokenList(ctx context.Context, url string) ([]entity.Token, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	started := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues("tokenlist").Observe(time.Since(started).Seconds())
	if err != nil {
		c.logger.Error("Failed to execute token list request", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", url, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Token list request failed",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, fmt.Errorf("token list request to %s failed with status %d", url, resp.StatusCode())
	}

	var tokens []entity.Token
	if err := json.Unmarshal(resp.Body(), &tokens); err != nil {
		c.logger.Error("Failed to unmarshal token list", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal token list from %s: %w", url, err)
	}

	valid := tokens[:0]
	for _, token := range tokens {
		if token.Address == "" {
			c.logger.Warn("Skipping token list entry without address",
				zap.String("url", url), zap.String("symbol", token.Symbol))
			continue
		}
		valid = append(valid, token)
	}

	c.logger.Debug("Fetched token list", zap.String("url", url), zap.Int("count", len(valid)))
	return valid, nil
}

var _ port.TokenListSource = (*Client)(nil)
