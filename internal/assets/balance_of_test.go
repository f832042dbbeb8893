package assets

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/sponsored-mint/internal/contracts"
)

type mockNFT struct {
	balances map[common.Address]*big.Int
	err      error
	calls    int
}

func (m *mockNFT) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if b, ok := m.balances[owner]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

type staticResolver struct {
	nft contracts.NFT
	err error
}

func (r staticResolver) NFT() (contracts.NFT, error) {
	return r.nft, r.err
}

func TestBalanceOf(t *testing.T) {
	owner := common.HexToAddress("0xabc0000000000000000000000000000000000001")
	nft := &mockNFT{balances: map[common.Address]*big.Int{owner: big.NewInt(3)}}

	f, err := NewFetcher(staticResolver{nft: nft})
	require.NoError(t, err)

	bal, err := f.BalanceOf(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, "3", bal.String())
}

func TestBalanceOfZeroAddressSkipsRPC(t *testing.T) {
	nft := &mockNFT{}
	f, err := NewFetcher(staticResolver{nft: nft})
	require.NoError(t, err)

	bal, err := f.BalanceOf(context.Background(), common.Address{})
	require.NoError(t, err)
	require.Zero(t, bal.Sign())
	require.Zero(t, nft.calls)
}

func TestBalanceOfErrors(t *testing.T) {
	owner := common.HexToAddress("0x01")
	rpcErr := errors.New("execution reverted")

	f, err := NewFetcher(staticResolver{nft: &mockNFT{err: rpcErr}})
	require.NoError(t, err)
	_, err = f.BalanceOf(context.Background(), owner)
	require.ErrorIs(t, err, rpcErr)

	f, err = NewFetcher(staticResolver{err: errors.New("bad abi")})
	require.NoError(t, err)
	_, err = f.BalanceOf(context.Background(), owner)
	require.Error(t, err)

	_, err = NewFetcher(nil)
	require.Error(t, err)
}
