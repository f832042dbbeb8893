package http

const JSONKeyError = "error"

// Error texts returned by the local API
const (
	HTTPErrorForbiddenText       = "forbidden"
	HTTPErrorInvalidJSONText     = "invalid JSON"
	HTTPErrorInvalidAddressText  = "invalid address"
	WalletConnectRejectedText    = "wallet connection rejected"
	WalletNotConnectedText       = "wallet not connected"
	WalletUnknownAccountText     = "account not managed by this wallet"
	WalletControlUnavailableText = "no wallet installed"
	BalanceFetchFailedText       = "failed to fetch balance"
	MintInFlightText             = "a mint is already in flight"
	MintStartFailedText          = "failed to start mint"
	NotificationsUnavailableText = "notifications unavailable"
)

// Server-sent events
const (
	SSEContentType      = "text/event-stream"
	SSEBufferedMessages = 16
)

// DefaultAllowedOrigins is used when no UI origin is configured.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}
