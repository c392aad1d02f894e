package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet_balances/internal/app/port"
	"wallet_balances/internal/entity"
	"wallet_balances/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const apiKeyHeader = "x-cg-demo-api-key"

// coinGeckoClientImpl implements port.PriceSource against the CoinGecko API.
type coinGeckoClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a rate-limited CoinGecko client.
func NewCoinGeckoClient(baseURL, apiKey string, timeout time.Duration, rps float64, burst int, logger *zap.Logger) port.PriceSource {
	return &coinGeckoClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// ListAllTokens implements port.PriceSource. It fetches the provider's full
// coin catalog from /coins/list.
func (c *coinGeckoClientImpl) ListAllTokens(ctx context.Context) ([]entity.CoingeckoToken, error) {
	requestURL := c.baseURL + "/coins/list?include_platform=false"

	body, err := c.get(ctx, requestURL, "coingecko_catalog")
	if err != nil {
		return nil, err
	}

	var tokens []entity.CoingeckoToken
	if err := json.Unmarshal(body, &tokens); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko coin list", zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal coin list from %s: %w", requestURL, err)
	}

	c.logger.Debug("Fetched CoinGecko coin catalog", zap.Int("count", len(tokens)))
	return tokens, nil
}

// GetUsdPrices implements port.PriceSource. All ids go out as one batched
// request with a URL-joined identifier list.
func (c *coinGeckoClientImpl) GetUsdPrices(ctx context.Context, ids []string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	// %2C-joined ids, the provider's own multi-id encoding
	joinedIDs := strings.Join(ids, "%2C")
	requestURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, joinedIDs)

	body, err := c.get(ctx, requestURL, "coingecko_price")
	if err != nil {
		return nil, err
	}

	var quotes entity.CoingeckoPrices
	if err := json.Unmarshal(body, &quotes); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko price response", zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal price response from %s: %w", requestURL, err)
	}

	prices := make(map[string]float64, len(quotes))
	for id := range quotes {
		if usd, ok := quotes.UsdPrice(id); ok {
			prices[id] = usd
		}
	}

	c.logger.Debug("Fetched CoinGecko prices", zap.Int("requested", len(ids)), zap.Int("priced", len(prices)))
	return prices, nil
}

func (c *coinGeckoClientImpl) get(ctx context.Context, requestURL string, upstream string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	started := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(upstream).Observe(time.Since(started).Seconds())
	if err != nil {
		c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("CoinGecko API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	// resp.Body() is reused after release, copy out
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
