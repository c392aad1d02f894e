package tokenlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchTokenList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"address": "0xdAC17F958D2ee523a2206206994597C13D831ec7", "name": "Tether", "symbol": "USDT", "decimals": 6, "chainId": 1},
			{"address": "", "name": "Broken", "symbol": "BRK", "decimals": 18, "chainId": 1},
			{"address": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "name": "WETH", "symbol": "WETH", "decimals": 18, "chainId": 1}
		]`))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, zap.NewNop())
	tokens, err := client.FetchTokenList(context.Background(), server.URL)
	require.NoError(t, err)

	// the entry without an address is dropped
	require.Len(t, tokens, 2)
	assert.Equal(t, "Tether", tokens[0].Name)
	assert.Equal(t, uint8(6), tokens[0].Decimals)
	assert.Equal(t, int64(1), tokens[0].ChainID)
	assert.Equal(t, "WETH", tokens[1].Name)
}

func TestFetchTokenListNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, zap.NewNop())
	_, err := client.FetchTokenList(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestFetchTokenListMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, zap.NewNop())
	_, err := client.FetchTokenList(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
