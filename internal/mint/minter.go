// Package mint drives one sponsored NFT mint: it builds the user operation,
// has the entry point hash it, seals it with a throwaway key, submits it with
// the connected wallet as beneficiary and waits for the receipt.
package mint

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/sponsored-mint/internal/contracts"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/entrypoint"
	"github.com/quantumauth-io/sponsored-mint/internal/metrics"
	"github.com/quantumauth-io/sponsored-mint/internal/notify"
	"github.com/quantumauth-io/sponsored-mint/internal/userop"
)

var (
	ErrMintInFlight = errors.New("a mint is already in flight")
	ErrNotConnected = errors.New("wallet not connected")
	ErrReverted     = errors.New("handleOps transaction reverted")
)

type Resolver interface {
	Resolve() (*contracts.Handles, error)
}

type Confirmer interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Session is the connected wallet as seen by the minter.
type Session interface {
	Account() (common.Address, bool)
	Transactor(ctx context.Context, account common.Address) (*bind.TransactOpts, error)
	Refresh(ctx context.Context, account common.Address) error
}

type Config struct {
	Paymaster common.Address
	Gas       userop.GasPolicy
	Explorer  string
	// ChainID is only needed when VerifyHashLocally is set.
	ChainID           *big.Int
	VerifyHashLocally bool
}

type Result struct {
	AttemptID   string         `json:"attemptId"`
	Account     common.Address `json:"account"`
	UserOpHash  common.Hash    `json:"userOpHash"`
	TxHash      common.Hash    `json:"txHash"`
	ExplorerURL string         `json:"explorerUrl"`
	BlockNumber *big.Int       `json:"blockNumber"`
}

type Minter struct {
	cfg       Config
	contracts Resolver
	confirmer Confirmer
	session   Session
	notifier  notify.Publisher

	inFlight atomic.Bool
	machine  *fsm.FSM
	wg       sync.WaitGroup
}

func NewMinter(cfg Config, resolver Resolver, confirmer Confirmer, session Session, notifier notify.Publisher) (*Minter, error) {
	if resolver == nil || confirmer == nil || session == nil || notifier == nil {
		return nil, errors.New("mint: missing dependency")
	}
	if cfg.Paymaster == (common.Address{}) {
		return nil, errors.New("mint: paymaster address is not configured")
	}
	if err := cfg.Gas.Validate(); err != nil {
		return nil, errors.Wrap(err, "mint: gas policy")
	}
	if cfg.VerifyHashLocally && (cfg.ChainID == nil || cfg.ChainID.Sign() <= 0) {
		return nil, errors.New("mint: local hash check needs a chain id")
	}

	return &Minter{
		cfg:       cfg,
		contracts: resolver,
		confirmer: confirmer,
		session:   session,
		notifier:  notifier,
		machine:   newMachine(),
	}, nil
}

func (m *Minter) InFlight() bool {
	return m.inFlight.Load()
}

func (m *Minter) State() string {
	return m.machine.Current()
}

// Mint runs one attempt and returns once it has settled and the balance has
// been refetched.
func (m *Minter) Mint(ctx context.Context) (*Result, error) {
	account, err := m.acquire()
	if err != nil {
		return nil, err
	}
	return m.run(ctx, uuid.NewString(), account)
}

// Start begins an attempt in the background and returns its id. The outcome
// is reported through notifications.
func (m *Minter) Start(ctx context.Context) (string, error) {
	account, err := m.acquire()
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		_, _ = m.run(ctx, id, account)
	}()
	return id, nil
}

// Wait blocks until every attempt started with Start has settled.
func (m *Minter) Wait() {
	m.wg.Wait()
}

func (m *Minter) acquire() (common.Address, error) {
	if !m.inFlight.CompareAndSwap(false, true) {
		metrics.MintAttempts.WithLabelValues(metrics.ResultBusy).Inc()
		return common.Address{}, ErrMintInFlight
	}
	account, ok := m.session.Account()
	if !ok {
		m.inFlight.Store(false)
		return common.Address{}, ErrNotConnected
	}
	return account, nil
}

func (m *Minter) run(ctx context.Context, id string, account common.Address) (*Result, error) {
	defer func() {
		m.fire(eventReset, id)
		m.inFlight.Store(false)
		// Refresh logs and surfaces its own failures.
		_ = m.session.Refresh(ctx, account)
	}()

	m.fire(eventBuild, id)

	handles, err := m.contracts.Resolve()
	if err != nil {
		return nil, m.fail(id, "resolve contracts", err)
	}

	op, err := m.buildOperation(ctx, handles, account)
	if err != nil {
		return nil, m.fail(id, "build user operation", err)
	}

	m.fire(eventHash, id)
	signed, err := m.sealOperation(ctx, id, handles, op)
	if err != nil {
		return nil, m.fail(id, "seal user operation", err)
	}

	m.fire(eventSubmit, id)
	tx, err := m.submit(ctx, handles, signed, account)
	if err != nil {
		return nil, m.fail(id, "handleOps", err)
	}
	log.Info("sending the txn", "attempt", id, "txHash", tx.Hash().Hex(), "userOpHash", signed.Hash().Hex())
	m.notifier.Publish(notify.TxSubmitted(tx.Hash()))

	m.fire(eventConfirm, id)
	started := time.Now()
	receipt, err := m.confirmer.WaitMined(ctx, tx)
	metrics.ConfirmationDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, m.fail(id, "wait mined", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, m.fail(id, "wait mined", errors.Wrapf(ErrReverted, "tx %s", tx.Hash().Hex()))
	}

	m.fire(eventSucceed, id)
	metrics.MintAttempts.WithLabelValues(metrics.ResultSuccess).Inc()

	confirmed := notify.TxConfirmed(m.cfg.Explorer, tx.Hash())
	m.notifier.Publish(confirmed)

	return &Result{
		AttemptID:   id,
		Account:     account,
		UserOpHash:  signed.Hash(),
		TxHash:      tx.Hash(),
		ExplorerURL: confirmed.Link,
		BlockNumber: receipt.BlockNumber,
	}, nil
}

// buildOperation composes the sponsored mint for recipient. initCode and
// signature stay empty.
func (m *Minter) buildOperation(ctx context.Context, h *contracts.Handles, recipient common.Address) (*userop.Operation, error) {
	nonce, err := h.Sender.Nonce(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, errors.Wrap(err, "sender nonce")
	}

	callData, err := contracts.EncodeSponsoredMint(h.Addresses.NFT, recipient)
	if err != nil {
		return nil, err
	}

	op := &userop.Operation{
		Sender:           h.Addresses.Sender,
		Nonce:            nonce,
		InitCode:         []byte{},
		CallData:         callData,
		PaymasterAndData: userop.PaymasterAndData(m.cfg.Paymaster),
		Signature:        []byte{},
	}
	m.cfg.Gas.Apply(op)
	return op, nil
}

// sealOperation asks the entry point for the operation hash and signs exactly
// that hash. Nothing may modify op between the two steps.
func (m *Minter) sealOperation(ctx context.Context, id string, h *contracts.Handles, op *userop.Operation) (*userop.Signed, error) {
	raw, err := h.EntryPoint.GetUserOpHash(&bind.CallOpts{Context: ctx}, op.Binding())
	if err != nil {
		return nil, errors.Wrap(err, "getUserOpHash")
	}
	hash := common.Hash(raw)

	if m.cfg.VerifyHashLocally {
		local, err := userop.Hash(op, h.Addresses.EntryPoint, m.cfg.ChainID)
		switch {
		case err != nil:
			log.Warn("local user operation hash failed", "attempt", id, "error", err)
		case local != hash:
			log.Warn("entry point hash differs from local hash", "attempt", id, "entryPoint", hash.Hex(), "local", local.Hex())
		}
	}

	m.fire(eventSign, id)
	signed, err := userop.SignWithEphemeralKey(hash, op)
	if err != nil {
		return nil, errors.Wrap(err, "sign user operation")
	}
	if err := signed.Verify(); err != nil {
		return nil, err
	}
	return signed, nil
}

func (m *Minter) submit(ctx context.Context, h *contracts.Handles, signed *userop.Signed, beneficiary common.Address) (*types.Transaction, error) {
	opts, err := m.session.Transactor(ctx, beneficiary)
	if err != nil {
		return nil, errors.Wrap(err, "wallet transactor")
	}
	ops := []entrypoint.UserOperation{signed.Operation().Binding()}
	return h.EntryPoint.HandleOps(opts, ops, beneficiary)
}

// fail logs the detail, publishes the generic failure notification and
// settles the attempt.
func (m *Minter) fail(id, step string, err error) error {
	err = errors.Wrap(err, step)
	log.Error("error interacting with contracts", "attempt", id, "step", step, "state", m.State(), "error", err)

	metrics.MintAttempts.WithLabelValues(metrics.ResultFailure).Inc()
	metrics.MintFailures.WithLabelValues(step).Inc()
	m.fire(eventFail, id)
	m.notifier.Publish(notify.TxFailed())
	return err
}

func (m *Minter) fire(event, id string) {
	if err := m.machine.Event(event, id); err != nil {
		log.Warn("mint state transition rejected", "attempt", id, "event", event, "state", m.State(), "error", err)
	}
}
