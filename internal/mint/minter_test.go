package mint

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/sponsored-mint/internal/constants"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/entrypoint"
	"github.com/quantumauth-io/sponsored-mint/internal/notify"
	"github.com/quantumauth-io/sponsored-mint/internal/userop"
)

var (
	wallet     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	nftAddr    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	senderAddr = common.HexToAddress("0x3333333333333333333333333333333333333333")
	epAddr     = common.HexToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789")
	opHash     = common.HexToHash("0x9c1f0e8c3b7a26a5b8d7e1c0f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9d8e7f6a5")
)

type fakeNFT struct {
	mu       sync.Mutex
	balances map[common.Address]int64
}

func (n *fakeNFT) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return big.NewInt(n.balances[owner]), nil
}

func (n *fakeNFT) mint(to common.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[to]++
}

type fakeSender struct {
	nonce *big.Int
}

func (s *fakeSender) Nonce(opts *bind.CallOpts) (*big.Int, error) {
	return new(big.Int).Set(s.nonce), nil
}

type fakeEntryPoint struct {
	nft *fakeNFT

	mu          sync.Mutex
	hashErr     error
	hashed      []entrypoint.UserOperation
	submitted   []entrypoint.UserOperation
	beneficiary common.Address
	from        common.Address
	submits     int

	entered chan struct{}
	release chan struct{}
}

func (ep *fakeEntryPoint) GetUserOpHash(opts *bind.CallOpts, op entrypoint.UserOperation) ([32]byte, error) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	if ep.hashErr != nil {
		return [32]byte{}, ep.hashErr
	}
	ep.hashed = append(ep.hashed, op)
	return opHash, nil
}

func (ep *fakeEntryPoint) HandleOps(opts *bind.TransactOpts, ops []entrypoint.UserOperation, beneficiary common.Address) (*types.Transaction, error) {
	if ep.entered != nil {
		ep.entered <- struct{}{}
		<-ep.release
	}

	ep.mu.Lock()
	ep.submits++
	ep.submitted = append(ep.submitted, ops...)
	ep.beneficiary = beneficiary
	ep.from = opts.From
	n := ep.submits
	ep.mu.Unlock()

	ep.nft.mint(beneficiary)
	to := epAddr
	return types.NewTx(&types.LegacyTx{
		Nonce:    uint64(n),
		To:       &to,
		Gas:      500000,
		GasPrice: big.NewInt(1),
	}), nil
}

type fakeResolver struct {
	handles *contracts.Handles
}

func (r fakeResolver) Resolve() (*contracts.Handles, error) {
	return r.handles, nil
}

type fakeConfirmer struct {
	status uint64
	err    error
}

func (c fakeConfirmer) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &types.Receipt{Status: c.status, TxHash: tx.Hash(), BlockNumber: big.NewInt(42)}, nil
}

type fakeSession struct {
	nft *fakeNFT

	mu        sync.Mutex
	connected bool
	balance   string
	refreshes int
}

func (s *fakeSession) Account() (common.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wallet, s.connected
}

func (s *fakeSession) Transactor(ctx context.Context, account common.Address) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: account, Context: ctx}, nil
}

func (s *fakeSession) Refresh(ctx context.Context, account common.Address) error {
	bal, _ := s.nft.BalanceOf(&bind.CallOpts{Context: ctx}, account)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	s.balance = bal.String()
	return nil
}

type recorder struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recorder) Publish(n notify.Notification) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return 1
}

func (r *recorder) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Kind, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Kind)
	}
	return out
}

type harness struct {
	minter  *Minter
	ep      *fakeEntryPoint
	nft     *fakeNFT
	session *fakeSession
	rec     *recorder
}

func newHarness(t *testing.T, confirmer fakeConfirmer, mutate func(*Config)) *harness {
	t.Helper()

	nft := &fakeNFT{balances: map[common.Address]int64{}}
	ep := &fakeEntryPoint{nft: nft}
	handles := &contracts.Handles{
		Addresses:  contracts.Addresses{NFT: nftAddr, Sender: senderAddr, EntryPoint: epAddr},
		NFT:        nft,
		Sender:     &fakeSender{nonce: big.NewInt(7)},
		EntryPoint: ep,
	}
	session := &fakeSession{nft: nft, connected: true}
	rec := &recorder{}

	cfg := Config{
		Paymaster: common.HexToAddress(constants.DefaultPaymaster),
		Gas:       userop.DefaultGasPolicy(),
		Explorer:  constants.DefaultExplorer,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	m, err := NewMinter(cfg, fakeResolver{handles: handles}, confirmer, session, rec)
	require.NoError(t, err)
	return &harness{minter: m, ep: ep, nft: nft, session: session, rec: rec}
}

func TestNewMinterValidates(t *testing.T) {
	good := Config{Paymaster: common.HexToAddress(constants.DefaultPaymaster), Gas: userop.DefaultGasPolicy()}
	deps := func() (Resolver, Confirmer, Session, notify.Publisher) {
		return fakeResolver{}, fakeConfirmer{}, &fakeSession{}, &recorder{}
	}

	r, c, s, p := deps()
	_, err := NewMinter(good, r, c, s, p)
	require.NoError(t, err)

	_, err = NewMinter(good, nil, c, s, p)
	require.Error(t, err)

	noPaymaster := good
	noPaymaster.Paymaster = common.Address{}
	_, err = NewMinter(noPaymaster, r, c, s, p)
	require.Error(t, err)

	badGas := good
	badGas.Gas = userop.GasPolicy{}
	_, err = NewMinter(badGas, r, c, s, p)
	require.Error(t, err)

	noChain := good
	noChain.VerifyHashLocally = true
	_, err = NewMinter(noChain, r, c, s, p)
	require.Error(t, err)
}

func TestMintSignsEntryPointHash(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusSuccessful}, nil)

	res, err := h.minter.Mint(context.Background())
	require.NoError(t, err)
	require.Equal(t, opHash, res.UserOpHash)

	require.Len(t, h.ep.hashed, 1)
	require.Len(t, h.ep.submitted, 1)
	hashed, submitted := h.ep.hashed[0], h.ep.submitted[0]

	require.Empty(t, hashed.Signature)
	require.Len(t, submitted.Signature, 65)
	require.Contains(t, []byte{27, 28}, submitted.Signature[64])

	signer, err := userop.RecoverSigner(opHash, submitted.Signature)
	require.NoError(t, err)
	require.NotEqual(t, wallet, signer)

	other, err := userop.RecoverSigner(common.HexToHash("0x01"), submitted.Signature)
	require.NoError(t, err)
	require.NotEqual(t, signer, other)

	submitted.Signature = nil
	hashed.Signature = nil
	require.Equal(t, hashed, submitted)
}

func TestMintBuildsSponsoredOperation(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusSuccessful}, nil)

	_, err := h.minter.Mint(context.Background())
	require.NoError(t, err)

	op := h.ep.submitted[0]
	wantCall, err := contracts.EncodeSponsoredMint(nftAddr, wallet)
	require.NoError(t, err)

	assert.Equal(t, senderAddr, op.Sender)
	assert.Equal(t, int64(7), op.Nonce.Int64())
	assert.Empty(t, op.InitCode)
	assert.Equal(t, wantCall, op.CallData)
	assert.Equal(t, "2000000", op.CallGasLimit.String())
	assert.Equal(t, "3000000", op.VerificationGasLimit.String())
	assert.Equal(t, "1000000", op.PreVerificationGas.String())
	assert.Equal(t, "40000000000", op.MaxFeePerGas.String())
	assert.Equal(t, "40000000000", op.MaxPriorityFeePerGas.String())
	assert.Equal(t, common.HexToAddress(constants.DefaultPaymaster).Bytes(), op.PaymasterAndData)

	assert.Equal(t, wallet, h.ep.beneficiary)
	assert.Equal(t, wallet, h.ep.from)
}

func TestMintNotifiesExplorerLinkAndRefreshesBalance(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusSuccessful}, nil)

	res, err := h.minter.Mint(context.Background())
	require.NoError(t, err)

	require.Equal(t, []notify.Kind{notify.KindTxSubmitted, notify.KindTxConfirmed}, h.rec.kinds())
	confirmed := h.rec.sent[1]
	require.Equal(t, "https://explorer.hekla.taiko.xyz/tx/"+res.TxHash.Hex(), confirmed.Link)
	require.Equal(t, confirmed.Link, res.ExplorerURL)
	require.Equal(t, res.TxHash.Hex(), h.rec.sent[0].TxHash)
	require.Equal(t, int64(42), res.BlockNumber.Int64())

	require.Equal(t, 1, h.session.refreshes)
	require.Equal(t, "1", h.session.balance)

	require.False(t, h.minter.InFlight())
	require.Equal(t, StateIdle, h.minter.State())
}

func TestMintIsSingleFlight(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusSuccessful}, nil)
	h.ep.entered = make(chan struct{})
	h.ep.release = make(chan struct{})

	id, err := h.minter.Start(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	<-h.ep.entered
	require.True(t, h.minter.InFlight())
	require.Equal(t, StateSubmitting, h.minter.State())

	_, err = h.minter.Mint(context.Background())
	require.ErrorIs(t, err, ErrMintInFlight)
	_, err = h.minter.Start(context.Background())
	require.ErrorIs(t, err, ErrMintInFlight)

	close(h.ep.release)
	h.minter.Wait()

	require.Equal(t, 1, h.ep.submits)
	require.False(t, h.minter.InFlight())

	h.ep.entered = nil
	_, err = h.minter.Mint(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, h.ep.submits)
	require.Equal(t, "2", h.session.balance)
}

func TestMintFailureIsGeneric(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusSuccessful}, nil)
	rpcErr := errors.New("execution reverted: AA31 paymaster deposit too low")
	h.ep.hashErr = rpcErr

	_, err := h.minter.Mint(context.Background())
	require.ErrorIs(t, err, rpcErr)

	require.Equal(t, []notify.Kind{notify.KindTxFailed}, h.rec.kinds())
	require.Equal(t, "😐 Error sending the txn", h.rec.sent[0].Message)
	require.NotContains(t, h.rec.sent[0].Message, "AA31")
	require.Zero(t, h.ep.submits)

	require.Equal(t, 1, h.session.refreshes)
	require.False(t, h.minter.InFlight())
	require.Equal(t, StateIdle, h.minter.State())
}

func TestMintRevertedReceipt(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusFailed}, nil)

	_, err := h.minter.Mint(context.Background())
	require.ErrorIs(t, err, ErrReverted)
	require.Equal(t, []notify.Kind{notify.KindTxSubmitted, notify.KindTxFailed}, h.rec.kinds())
	require.Equal(t, 1, h.session.refreshes)
}

func TestMintWaitError(t *testing.T) {
	h := newHarness(t, fakeConfirmer{err: context.Canceled}, nil)

	_, err := h.minter.Mint(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []notify.Kind{notify.KindTxSubmitted, notify.KindTxFailed}, h.rec.kinds())
	require.Equal(t, StateIdle, h.minter.State())
}

func TestMintRequiresConnectedWallet(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusSuccessful}, nil)
	h.session.connected = false

	_, err := h.minter.Mint(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)
	require.False(t, h.minter.InFlight())
	require.Zero(t, h.session.refreshes)
	require.Empty(t, h.rec.kinds())
}

func TestLocalHashMismatchDoesNotBlock(t *testing.T) {
	h := newHarness(t, fakeConfirmer{status: types.ReceiptStatusSuccessful}, func(cfg *Config) {
		cfg.VerifyHashLocally = true
		cfg.ChainID = big.NewInt(167009)
	})

	_, err := h.minter.Mint(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, h.ep.submits)
}
