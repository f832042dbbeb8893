// Package contracts resolves callable handles for the NFT, sender wallet and
// entry point contracts over one chain backend.
package contracts

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/entrypoint"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/mintnft"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/simplewallet"
)

type NFT interface {
	BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error)
}

type Sender interface {
	Nonce(opts *bind.CallOpts) (*big.Int, error)
}

type EntryPoint interface {
	GetUserOpHash(opts *bind.CallOpts, userOp entrypoint.UserOperation) ([32]byte, error)
	HandleOps(opts *bind.TransactOpts, ops []entrypoint.UserOperation, beneficiary common.Address) (*types.Transaction, error)
}

type Addresses struct {
	NFT        common.Address
	Sender     common.Address
	EntryPoint common.Address
}

func (a Addresses) Validate() error {
	if a.NFT == (common.Address{}) {
		return errors.New("contracts: nft address is not configured")
	}
	if a.Sender == (common.Address{}) {
		return errors.New("contracts: sender wallet address is not configured")
	}
	if a.EntryPoint == (common.Address{}) {
		return errors.New("contracts: entry point address is not configured")
	}
	return nil
}

// Handles is one resolved set of contract handles.
type Handles struct {
	Addresses  Addresses
	NFT        NFT
	Sender     Sender
	EntryPoint EntryPoint
}

// Backend is what ethclient.Client provides: calls, transactions and receipts.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type Provider struct {
	backend Backend
	addrs   Addresses
}

func NewProvider(backend Backend, addrs Addresses) (*Provider, error) {
	if backend == nil {
		return nil, errors.New("contracts: backend is nil")
	}
	if err := addrs.Validate(); err != nil {
		return nil, err
	}
	return &Provider{backend: backend, addrs: addrs}, nil
}

func (p *Provider) NFT() (NFT, error) {
	nft, err := mintnft.NewMintNFT(p.addrs.NFT, p.backend)
	if err != nil {
		return nil, errors.Wrap(err, "bind nft")
	}
	return nft, nil
}

func (p *Provider) Sender() (Sender, error) {
	sw, err := simplewallet.NewSimpleWallet(p.addrs.Sender, p.backend)
	if err != nil {
		return nil, errors.Wrap(err, "bind sender wallet")
	}
	return sw, nil
}

func (p *Provider) EntryPoint() (EntryPoint, error) {
	ep, err := entrypoint.NewEntryPoint(p.addrs.EntryPoint, p.backend)
	if err != nil {
		return nil, errors.Wrap(err, "bind entry point")
	}
	return ep, nil
}

// Resolve binds all three contracts.
func (p *Provider) Resolve() (*Handles, error) {
	nft, err := p.NFT()
	if err != nil {
		return nil, err
	}
	sender, err := p.Sender()
	if err != nil {
		return nil, err
	}
	ep, err := p.EntryPoint()
	if err != nil {
		return nil, err
	}
	return &Handles{Addresses: p.addrs, NFT: nft, Sender: sender, EntryPoint: ep}, nil
}

// WaitMined blocks until tx is included and returns its receipt.
func (p *Provider) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, p.backend, tx)
}

// VerifyDeployed checks every configured address holds code.
func (p *Provider) VerifyDeployed(ctx context.Context) error {
	for name, addr := range map[string]common.Address{
		"nft":         p.addrs.NFT,
		"sender":      p.addrs.Sender,
		"entry point": p.addrs.EntryPoint,
	} {
		code, err := p.backend.CodeAt(ctx, addr, nil)
		if err != nil {
			return errors.Wrapf(err, "code at %s %s", name, addr.Hex())
		}
		if len(code) == 0 {
			return errors.Newf("%s contract not deployed on this chain: %s", name, addr.Hex())
		}
	}
	return nil
}
