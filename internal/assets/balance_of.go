package assets

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/quantumauth-io/sponsored-mint/internal/contracts"
	"github.com/quantumauth-io/sponsored-mint/internal/metrics"
)

type NFTResolver interface {
	NFT() (contracts.NFT, error)
}

// Fetcher reads NFT balances from the configured collection.
type Fetcher struct {
	nfts NFTResolver
}

func NewFetcher(nfts NFTResolver) (*Fetcher, error) {
	if nfts == nil {
		return nil, fmt.Errorf("assets: nft resolver is nil")
	}
	return &Fetcher{nfts: nfts}, nil
}

// BalanceOf returns the number of tokens held by owner. The zero address
// always holds zero and is answered without an RPC call.
func (f *Fetcher) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	if owner == (common.Address{}) {
		return big.NewInt(0), nil
	}

	nft, err := f.nfts.NFT()
	if err != nil {
		metrics.BalanceFetches.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("assets: bind nft: %w", err)
	}

	bal, err := nft.BalanceOf(&bind.CallOpts{Context: ctx}, owner)
	if err != nil {
		metrics.BalanceFetches.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("assets: nft balanceOf: %w", err)
	}

	metrics.BalanceFetches.WithLabelValues(metrics.ResultSuccess).Inc()
	return bal, nil
}
