// Package notify fans user-facing notifications out to subscribers (the SSE
// stream) and to the log.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/google/uuid"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/sponsored-mint/internal/constants"
	"github.com/quantumauth-io/sponsored-mint/internal/metrics"
)

type Kind string

const (
	KindInstallWallet Kind = "install_wallet"
	KindTxSubmitted   Kind = "tx_submitted"
	KindTxConfirmed   Kind = "tx_confirmed"
	KindTxFailed      Kind = "tx_failed"
	KindBalanceStale  Kind = "balance_stale"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	// LevelAlert must be acknowledged by the user before continuing.
	LevelAlert Level = "alert"
)

type Notification struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Link    string    `json:"link,omitempty"`
	TxHash  string    `json:"txHash,omitempty"`
	Time    time.Time `json:"time"`
}

type Publisher interface {
	Publish(n Notification) int
}

// Hub fans notifications out without blocking: a subscriber whose channel is
// full misses the notification instead of stalling the publisher.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan<- Notification
	nextID uint64
	done   chan struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]chan<- Notification),
		done: make(chan struct{}),
	}
}

// Publish stamps, logs and delivers n. It returns the number of subscribers
// that received it.
func (h *Hub) Publish(n Notification) int {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Time.IsZero() {
		n.Time = time.Now().UTC()
	}

	switch n.Level {
	case LevelError:
		log.Error("notification", "kind", n.Kind, "message", n.Message, "txHash", n.TxHash)
	case LevelWarn, LevelAlert:
		log.Warn("notification", "kind", n.Kind, "message", n.Message)
	default:
		log.Info("notification", "kind", n.Kind, "message", n.Message, "link", n.Link)
	}
	metrics.Notifications.WithLabelValues(string(n.Kind)).Inc()

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for id, ch := range h.subs {
		select {
		case ch <- n:
			delivered++
		default:
			metrics.NotificationDrops.WithLabelValues(string(n.Kind)).Inc()
			log.Warn("notification dropped for slow subscriber", "kind", n.Kind, "subscriber", id)
		}
	}
	return delivered
}

// Subscribe registers ch until the subscription is ended or the hub closes.
func (h *Hub) Subscribe(ch chan<- Notification) event.Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return event.NewSubscription(func(<-chan struct{}) error { return nil })
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	return event.NewSubscription(func(quit <-chan struct{}) error {
		select {
		case <-quit:
		case <-h.done:
		}
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		return nil
	})
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id := range h.subs {
		delete(h.subs, id)
	}
	close(h.done)
}

// ExplorerTxURL builds <explorer>/tx/<hash>.
func ExplorerTxURL(explorer string, hash common.Hash) string {
	base := strings.TrimRight(strings.TrimSpace(explorer), "/")
	if base == "" {
		base = constants.DefaultExplorer
	}
	return base + "/tx/" + hash.Hex()
}

func InstallWallet() Notification {
	return Notification{Kind: KindInstallWallet, Level: LevelAlert, Message: constants.InstallWalletText}
}

func TxSubmitted(hash common.Hash) Notification {
	return Notification{Kind: KindTxSubmitted, Level: LevelInfo, Message: constants.TxSubmittedText, TxHash: hash.Hex()}
}

func TxConfirmed(explorer string, hash common.Hash) Notification {
	return Notification{
		Kind:    KindTxConfirmed,
		Level:   LevelInfo,
		Message: constants.TxConfirmedText,
		Link:    ExplorerTxURL(explorer, hash),
		TxHash:  hash.Hex(),
	}
}

// TxFailed carries no error detail; callers log it.
func TxFailed() Notification {
	return Notification{Kind: KindTxFailed, Level: LevelError, Message: constants.TxFailedText}
}

func BalanceStale() Notification {
	return Notification{Kind: KindBalanceStale, Level: LevelWarn, Message: constants.BalanceUnavailableText}
}
