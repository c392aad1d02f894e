package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"wallet_balances/internal/app/port"
	"wallet_balances/internal/infrastructure/configloader"
	"wallet_balances/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// ERC20 ABI minimal part for balanceOf
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
	erc20MethodID   []byte
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			// This is a critical error during initialization, panic is appropriate
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		balanceOfMethod, ok := parsedERC20ABI.Methods["balanceOf"]
		if !ok {
			panic("balanceOf method not found in parsed ERC20 ABI")
		}
		erc20MethodID = balanceOfMethod.ID
	})
}

// EVMClient implements the port.ChainReader interface for EVM-compatible
// chains. One instance per configured network, safe for concurrent use.
type EVMClient struct {
	ethClient      *ethclient.Client
	network        string
	chainID        int64
	rpcCallTimeout time.Duration
	logger         *zap.Logger
}

// NewEVMClient dials the network's RPC endpoint and returns a reader for it.
func NewEVMClient(netCfg configloader.NetworkNode, connectionTimeout, rpcCallTimeout time.Duration, logger *zap.Logger) (*EVMClient, error) {
	initParsedERC20ABI()

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	ethClient, err := ethclient.DialContext(ctx, netCfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s for network %s: %w", netCfg.RPCURL, netCfg.Name, err)
	}

	return &EVMClient{
		ethClient:      ethClient,
		network:        netCfg.Name,
		chainID:        netCfg.ChainID,
		rpcCallTimeout: rpcCallTimeout,
		logger:         logger.Named("EVMClient").With(zap.String("network", netCfg.Name)),
	}, nil
}

// IsValidAddress reports whether the address is a well-formed hex account
// identifier. Comparison elsewhere is case-insensitive, so checksum casing is
// not enforced here.
func (c *EVMClient) IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// ReadBalance issues a read-only balanceOf eth_call against the token
// contract and decodes the raw integer result.
func (c *EVMClient) ReadBalance(ctx context.Context, tokenAddress string, walletAddress string) (*big.Int, error) {
	callData := append(append([]byte{}, erc20MethodID...), common.LeftPadBytes(common.HexToAddress(walletAddress).Bytes(), 32)...)
	contractAddr := common.HexToAddress(tokenAddress)
	msg := ethereum.CallMsg{
		To:   &contractAddr,
		Data: callData,
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	started := time.Now()
	raw, err := c.ethClient.CallContract(callCtx, msg, nil)
	metrics.UpstreamRequestDuration.WithLabelValues("evm_rpc").Observe(time.Since(started).Seconds())
	if err != nil {
		c.logger.Error("eth_call for balanceOf failed",
			zap.String("token", tokenAddress),
			zap.String("wallet", walletAddress),
			zap.Error(err))
		return nil, fmt.Errorf("balanceOf call to %s failed: %w", tokenAddress, err)
	}

	// Contracts without code return empty data; treat as zero balance.
	if len(raw) == 0 {
		return big.NewInt(0), nil
	}

	unpacked, err := parsedERC20ABI.Unpack("balanceOf", raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result for %s: %w", tokenAddress, err)
	}
	if len(unpacked) == 0 {
		return nil, fmt.Errorf("balanceOf unpack returned no data for %s", tokenAddress)
	}
	balance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed to assert unpacked balanceOf result to *big.Int for %s, got %T", tokenAddress, unpacked[0])
	}
	return balance, nil
}

// Network returns the configured network key for this reader.
func (c *EVMClient) Network() string {
	return c.network
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}

var _ port.ChainReader = (*EVMClient)(nil)
