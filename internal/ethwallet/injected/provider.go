// Package injected models the wallet that the user connects: it hands out
// accounts on request, announces account changes and disconnects, and signs
// the transactions sent from the connected account.
package injected

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

var (
	ErrNoAccounts     = errors.New("wallet has no accounts")
	ErrUserRejected   = errors.New("user rejected the request")
	ErrUnknownAccount = errors.New("account not managed by this wallet")
)

type Provider interface {
	// RequestAccounts asks the user for access and returns the exposed
	// accounts, the active one first.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// SubscribeAccountsChanged delivers the new account list; an empty list
	// means the wallet was locked or access was revoked.
	SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription
	SubscribeDisconnect(ch chan<- struct{}) event.Subscription
	// Transactor returns signing options for transactions from account.
	Transactor(ctx context.Context, account common.Address) (*bind.TransactOpts, error)
}
