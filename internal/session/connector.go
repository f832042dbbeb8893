// Package session tracks the connected wallet and its NFT balance.
package session

import (
	"context"
	"math/big"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/sponsored-mint/internal/constants"
	"github.com/quantumauth-io/sponsored-mint/internal/ethwallet/injected"
	"github.com/quantumauth-io/sponsored-mint/internal/notify"
)

var (
	ErrWalletUnavailable = errors.New("no wallet installed")
	ErrConnectRejected   = errors.New("wallet connection rejected")
	ErrNotConnected      = errors.New("wallet not connected")
)

type BalanceReader interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
}

// Snapshot is a copy of the session state. Address is nil when no account
// is known.
type Snapshot struct {
	Address   *common.Address `json:"address"`
	Connected bool            `json:"connected"`
	Balance   string          `json:"balance"`
	Minting   bool            `json:"minting"`
}

type Connector struct {
	provider injected.Provider
	balances BalanceReader
	notifier notify.Publisher

	mu        sync.RWMutex
	address   *common.Address
	connected bool
	balance   string
	// epoch changes whenever the address does; balance results fetched
	// under an older epoch are discarded.
	epoch uint64
}

// NewConnector builds a connector. A nil provider means no wallet is
// installed; Connect then only raises the install alert.
func NewConnector(provider injected.Provider, balances BalanceReader, notifier notify.Publisher) (*Connector, error) {
	if balances == nil {
		return nil, errors.New("balance reader is nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier is nil")
	}
	return &Connector{
		provider: provider,
		balances: balances,
		notifier: notifier,
		balance:  constants.BalanceLoadingText,
	}, nil
}

func (c *Connector) Installed() bool {
	return c.provider != nil
}

func (c *Connector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{Connected: c.connected, Balance: c.balance}
	if c.address != nil {
		addr := *c.address
		s.Address = &addr
	}
	return s
}

// Account returns the connected address.
func (c *Connector) Account() (common.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected || c.address == nil {
		return common.Address{}, false
	}
	return *c.address, true
}

// Transactor returns signing options for the connected account.
func (c *Connector) Transactor(ctx context.Context, account common.Address) (*bind.TransactOpts, error) {
	if c.provider == nil {
		return nil, ErrWalletUnavailable
	}
	return c.provider.Transactor(ctx, account)
}

func (c *Connector) Connect(ctx context.Context) (common.Address, error) {
	if c.provider == nil {
		c.notifier.Publish(notify.InstallWallet())
		return common.Address{}, ErrWalletUnavailable
	}

	accounts, err := c.provider.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = injected.ErrNoAccounts
	}
	if err != nil {
		log.Error("error connecting to wallet", "error", err)
		return common.Address{}, errors.Mark(errors.Wrap(err, "request accounts"), ErrConnectRejected)
	}

	addr := accounts[0]
	c.mu.Lock()
	c.adoptLocked(addr)
	c.connected = true
	c.mu.Unlock()

	log.Info("wallet connected", "address", addr.Hex())

	// A failed read is already surfaced by Refresh; the connection stands.
	_ = c.Refresh(ctx, addr)
	return addr, nil
}

// Refresh reads the NFT balance of addr and stores it if addr is still the
// session address. On failure the previous value is kept.
func (c *Connector) Refresh(ctx context.Context, addr common.Address) error {
	c.mu.RLock()
	epoch := c.epoch
	c.mu.RUnlock()

	bal, err := c.balances.BalanceOf(ctx, addr)

	c.mu.Lock()
	stale := c.epoch != epoch || c.address == nil || *c.address != addr
	if err == nil && !stale {
		c.balance = bal.String()
	}
	c.mu.Unlock()

	if stale {
		log.Info("dropping balance for previous account", "address", addr.Hex())
		return nil
	}
	if err != nil {
		log.Error("error fetching NFT balance", "address", addr.Hex(), "error", err)
		c.notifier.Publish(notify.BalanceStale())
		return errors.Wrap(err, "refresh balance")
	}
	return nil
}

// RefreshCurrent refreshes the balance of the session address, if any.
func (c *Connector) RefreshCurrent(ctx context.Context) error {
	c.mu.RLock()
	var addr *common.Address
	if c.address != nil {
		a := *c.address
		addr = &a
	}
	c.mu.RUnlock()

	if addr == nil {
		return ErrNotConnected
	}
	return c.Refresh(ctx, *addr)
}

// Attach subscribes to the wallet's account and disconnect events until the
// returned detach is called or ctx ends. detach waits for the event loop to
// stop and may be called more than once.
func (c *Connector) Attach(ctx context.Context) (detach func()) {
	if c.provider == nil {
		return func() {}
	}

	accountsCh := make(chan []common.Address, 4)
	disconnectCh := make(chan struct{}, 1)
	accountsSub := c.provider.SubscribeAccountsChanged(accountsCh)
	disconnectSub := c.provider.SubscribeDisconnect(disconnectCh)

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.watch(loopCtx, accountsCh, disconnectCh, errChan(accountsSub), errChan(disconnectSub))
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe(accountsSub)
			unsubscribe(disconnectSub)
			cancel()
			<-done
		})
	}
}

func (c *Connector) watch(
	ctx context.Context,
	accountsCh <-chan []common.Address,
	disconnectCh <-chan struct{},
	accountsErr, disconnectErr <-chan error,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case accounts := <-accountsCh:
			c.handleAccountsChanged(ctx, accounts)
		case <-disconnectCh:
			c.handleDisconnect()
		case err := <-accountsErr:
			if err != nil {
				log.Warn("accountsChanged subscription ended", "error", err)
			}
			return
		case err := <-disconnectErr:
			if err != nil {
				log.Warn("disconnect subscription ended", "error", err)
			}
			return
		}
	}
}

func (c *Connector) handleAccountsChanged(ctx context.Context, accounts []common.Address) {
	if len(accounts) == 0 {
		c.clear()
		log.Info("wallet is locked or disconnected")
		return
	}

	addr := accounts[0]
	c.mu.Lock()
	c.adoptLocked(addr)
	c.mu.Unlock()

	log.Info("account changed", "address", addr.Hex())
	_ = c.Refresh(ctx, addr)
}

func (c *Connector) handleDisconnect() {
	c.clear()
	log.Info("wallet disconnected or locked")
}

func (c *Connector) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.address != nil {
		c.epoch++
	}
	c.address = nil
	c.connected = false
	c.balance = ""
}

func (c *Connector) adoptLocked(addr common.Address) {
	if c.address == nil || *c.address != addr {
		c.epoch++
	}
	c.address = &addr
}

func errChan(sub event.Subscription) <-chan error {
	if sub == nil {
		return nil
	}
	return sub.Err()
}

func unsubscribe(sub event.Subscription) {
	if sub != nil {
		sub.Unsubscribe()
	}
}
