package http

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/sponsored-mint/internal/constants"
	"github.com/quantumauth-io/sponsored-mint/internal/ethwallet/injected"
	"github.com/quantumauth-io/sponsored-mint/internal/mint"
	"github.com/quantumauth-io/sponsored-mint/internal/notify"
	"github.com/quantumauth-io/sponsored-mint/internal/session"
)

type Session interface {
	Snapshot() session.Snapshot
	Installed() bool
	Connect(ctx context.Context) (common.Address, error)
	RefreshCurrent(ctx context.Context) error
}

type Minter interface {
	Start(ctx context.Context) (string, error)
	InFlight() bool
	State() string
}

// WalletControl is the wallet-side surface: the user switching or locking
// accounts inside their wallet.
type WalletControl interface {
	Accounts() []common.Address
	Select(ctx context.Context, account common.Address) error
	Lock()
	Disconnect()
}

type NotificationSource interface {
	Subscribe(ch chan<- notify.Notification) event.Subscription
}

type Handler struct {
	// ctx outlives single requests; background mints run under it.
	ctx     context.Context
	session Session
	minter  Minter
	wallet  WalletControl
	notes   NotificationSource
}

// NewHandler wires the API. wallet may be nil when no wallet is installed.
func NewHandler(ctx context.Context, sess Session, minter Minter, wallet WalletControl, notes NotificationSource) *Handler {
	return &Handler{
		ctx:     ctx,
		session: sess,
		minter:  minter,
		wallet:  wallet,
		notes:   notes,
	}
}

// -------- DTOs for local client API --------

type sessionRes struct {
	session.Snapshot
	Installed bool   `json:"installed"`
	MintState string `json:"mintState"`
}

type mintRes struct {
	AttemptID string `json:"attemptId"`
}

type selectAccountReq struct {
	Address string `json:"address" binding:"required"`
}

type accountsRes struct {
	Accounts []common.Address `json:"accounts"`
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) snapshot() sessionRes {
	s := h.session.Snapshot()
	s.Minting = h.minter.InFlight()
	return sessionRes{
		Snapshot:  s,
		Installed: h.session.Installed(),
		MintState: h.minter.State(),
	}
}

// GET /api/session
func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot())
}

// POST /api/wallet/connect
func (h *Handler) Connect(c *gin.Context) {
	_, err := h.session.Connect(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, h.snapshot())
	case errors.Is(err, session.ErrWalletUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{JSONKeyError: constants.InstallWalletText})
	default:
		c.JSON(http.StatusForbidden, gin.H{JSONKeyError: WalletConnectRejectedText})
	}
}

// POST /api/balance/refresh
func (h *Handler) RefreshBalance(c *gin.Context) {
	err := h.session.RefreshCurrent(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, h.snapshot())
	case errors.Is(err, session.ErrNotConnected):
		c.JSON(http.StatusPreconditionFailed, gin.H{JSONKeyError: WalletNotConnectedText})
	default:
		c.JSON(http.StatusBadGateway, gin.H{JSONKeyError: BalanceFetchFailedText})
	}
}

// POST /api/mint
//
// The attempt runs in the background; its progress arrives as notifications.
func (h *Handler) Mint(c *gin.Context) {
	id, err := h.minter.Start(h.ctx)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, mintRes{AttemptID: id})
	case errors.Is(err, mint.ErrMintInFlight):
		c.JSON(http.StatusConflict, gin.H{JSONKeyError: MintInFlightText})
	case errors.Is(err, mint.ErrNotConnected):
		c.JSON(http.StatusPreconditionFailed, gin.H{JSONKeyError: WalletNotConnectedText})
	default:
		log.Error("mint start failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{JSONKeyError: MintStartFailedText})
	}
}

// GET /api/notifications
//
// Streams notifications as server-sent events named after their kind until
// the client goes away or the hub closes.
func (h *Handler) Notifications(c *gin.Context) {
	ch := make(chan notify.Notification, SSEBufferedMessages)
	sub := h.notes.Subscribe(ch)
	if sub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{JSONKeyError: NotificationsUnavailableText})
		return
	}
	defer sub.Unsubscribe()

	c.Header("Content-Type", SSEContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Err():
			return
		case n := <-ch:
			c.SSEvent(string(n.Kind), n)
			c.Writer.Flush()
		}
	}
}

// GET /wallet/accounts
func (h *Handler) WalletAccounts(c *gin.Context) {
	if h.wallet == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{JSONKeyError: WalletControlUnavailableText})
		return
	}
	c.JSON(http.StatusOK, accountsRes{Accounts: h.wallet.Accounts()})
}

// POST /wallet/select
func (h *Handler) WalletSelect(c *gin.Context) {
	if h.wallet == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{JSONKeyError: WalletControlUnavailableText})
		return
	}

	var req selectAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidJSONText})
		return
	}
	if !common.IsHexAddress(req.Address) {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidAddressText})
		return
	}

	err := h.wallet.Select(c.Request.Context(), common.HexToAddress(req.Address))
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, injected.ErrUnknownAccount):
		c.JSON(http.StatusNotFound, gin.H{JSONKeyError: WalletUnknownAccountText})
	case errors.Is(err, injected.ErrUserRejected):
		c.JSON(http.StatusForbidden, gin.H{JSONKeyError: WalletConnectRejectedText})
	default:
		log.Error("wallet select failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{JSONKeyError: err.Error()})
	}
}

// POST /wallet/lock
func (h *Handler) WalletLock(c *gin.Context) {
	if h.wallet == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{JSONKeyError: WalletControlUnavailableText})
		return
	}
	h.wallet.Lock()
	c.Status(http.StatusNoContent)
}

// POST /wallet/disconnect
func (h *Handler) WalletDisconnect(c *gin.Context) {
	if h.wallet == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{JSONKeyError: WalletControlUnavailableText})
		return
	}
	h.wallet.Disconnect()
	c.Status(http.StatusNoContent)
}
