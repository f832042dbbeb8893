package injected

import (
	"context"
	"math/big"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

// PassphraseFunc supplies the passphrase that unlocks account.
type PassphraseFunc func(account common.Address) (string, error)

func StaticPassphrase(passphrase string) PassphraseFunc {
	return func(common.Address) (string, error) {
		return passphrase, nil
	}
}

// OpenKeystore opens (or creates) a go-ethereum keystore directory.
func OpenKeystore(dir string) *keystore.KeyStore {
	return keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
}

// KeystoreProvider is a Provider backed by an encrypted go-ethereum keystore.
// Exactly one account is exposed at a time.
type KeystoreProvider struct {
	ks         *keystore.KeyStore
	chainID    *big.Int
	passphrase PassphraseFunc

	mu       sync.Mutex
	selected *common.Address
	unlocked map[common.Address]struct{}

	accountsFeed   event.Feed
	disconnectFeed event.Feed
	scope          event.SubscriptionScope

	walletSub event.Subscription
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewKeystoreProvider(ks *keystore.KeyStore, chainID *big.Int, passphrase PassphraseFunc) (*KeystoreProvider, error) {
	if ks == nil {
		return nil, errors.New("keystore is nil")
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, errors.New("chain id is required")
	}
	if passphrase == nil {
		return nil, errors.New("passphrase source is nil")
	}

	events := make(chan accounts.WalletEvent, 8)
	p := &KeystoreProvider{
		ks:         ks,
		chainID:    new(big.Int).Set(chainID),
		passphrase: passphrase,
		unlocked:   make(map[common.Address]struct{}),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	p.walletSub = ks.Subscribe(events)
	go p.watchWallets(events)

	return p, nil
}

// Accounts lists every account in the keystore.
func (p *KeystoreProvider) Accounts() []common.Address {
	accs := p.ks.Accounts()
	out := make([]common.Address, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.Address)
	}
	return out
}

func (p *KeystoreProvider) Selected() (common.Address, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return common.Address{}, false
	}
	return *p.selected, true
}

func (p *KeystoreProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, ok := p.Selected()
	if !ok {
		accs := p.ks.Accounts()
		if len(accs) == 0 {
			return nil, ErrNoAccounts
		}
		target = accs[0].Address
	}

	if err := p.unlock(target); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.selected = &target
	p.mu.Unlock()

	return []common.Address{target}, nil
}

// Select switches the exposed account and announces the change.
func (p *KeystoreProvider) Select(ctx context.Context, account common.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.ks.HasAddress(account) {
		return errors.Wrapf(ErrUnknownAccount, "%s", account.Hex())
	}
	if err := p.unlock(account); err != nil {
		return err
	}

	p.mu.Lock()
	p.selected = &account
	p.mu.Unlock()

	p.accountsFeed.Send([]common.Address{account})
	return nil
}

// Lock relocks every unlocked key, announces an empty account list and then
// a disconnect.
func (p *KeystoreProvider) Lock() {
	p.mu.Lock()
	for addr := range p.unlocked {
		if err := p.ks.Lock(addr); err != nil {
			log.Warn("keystore lock failed", "address", addr.Hex(), "error", err)
		}
		delete(p.unlocked, addr)
	}
	p.selected = nil
	p.mu.Unlock()

	p.accountsFeed.Send([]common.Address{})
	p.disconnectFeed.Send(struct{}{})
}

// Disconnect drops the exposed account and announces a disconnect.
func (p *KeystoreProvider) Disconnect() {
	p.mu.Lock()
	p.selected = nil
	p.mu.Unlock()

	p.disconnectFeed.Send(struct{}{})
}

func (p *KeystoreProvider) SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription {
	return p.scope.Track(p.accountsFeed.Subscribe(ch))
}

func (p *KeystoreProvider) SubscribeDisconnect(ch chan<- struct{}) event.Subscription {
	return p.scope.Track(p.disconnectFeed.Subscribe(ch))
}

func (p *KeystoreProvider) Transactor(ctx context.Context, account common.Address) (*bind.TransactOpts, error) {
	selected, ok := p.Selected()
	if !ok || selected != account {
		return nil, errors.Wrapf(ErrUnknownAccount, "%s is not the connected account", account.Hex())
	}

	opts, err := bind.NewKeyStoreTransactorWithChainID(p.ks, accounts.Account{Address: account}, p.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "keystore transactor")
	}
	opts.Context = ctx
	return opts, nil
}

// Close stops the keystore watcher and ends every subscription.
func (p *KeystoreProvider) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		p.walletSub.Unsubscribe()
		<-p.done
		p.scope.Close()
	})
}

func (p *KeystoreProvider) unlock(account common.Address) error {
	p.mu.Lock()
	_, ok := p.unlocked[account]
	p.mu.Unlock()
	if ok {
		return nil
	}

	passphrase, err := p.passphrase(account)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "read passphrase"), ErrUserRejected)
	}
	if err := p.ks.Unlock(accounts.Account{Address: account}, passphrase); err != nil {
		return errors.Mark(errors.Wrapf(err, "unlock %s", account.Hex()), ErrUserRejected)
	}

	p.mu.Lock()
	p.unlocked[account] = struct{}{}
	p.mu.Unlock()
	return nil
}

func (p *KeystoreProvider) watchWallets(events <-chan accounts.WalletEvent) {
	defer close(p.done)
	for {
		select {
		case <-p.quit:
			return
		case <-p.walletSub.Err():
			return
		case ev := <-events:
			if ev.Kind != accounts.WalletDropped {
				continue
			}
			p.handleDropped(ev.Wallet)
		}
	}
}

func (p *KeystoreProvider) handleDropped(w accounts.Wallet) {
	p.mu.Lock()
	dropped := false
	for _, acc := range w.Accounts() {
		delete(p.unlocked, acc.Address)
		if p.selected != nil && *p.selected == acc.Address {
			p.selected = nil
			dropped = true
		}
	}
	p.mu.Unlock()

	if dropped {
		log.Warn("connected key removed from keystore")
		p.accountsFeed.Send([]common.Address{})
	}
}
