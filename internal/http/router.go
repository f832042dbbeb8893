package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quantumauth-io/sponsored-mint/internal/httpui"
	"github.com/quantumauth-io/sponsored-mint/internal/metrics"
)

// NewRouter serves the page, the local API and the metrics endpoint. Only
// loopback clients are accepted.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     normalizeOrigins(allowedOrigins),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}))
	r.Use(loopbackOnly())

	r.GET("/", gin.WrapH(httpui.Handler()))
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/session", h.Session)
		api.POST("/wallet/connect", h.Connect)
		api.POST("/balance/refresh", h.RefreshBalance)
		api.POST("/mint", h.Mint)
		api.GET("/notifications", h.Notifications)
	}

	wallet := r.Group("/wallet")
	{
		wallet.GET("/accounts", h.WalletAccounts)
		wallet.POST("/select", h.WalletSelect)
		wallet.POST("/lock", h.WalletLock)
		wallet.POST("/disconnect", h.WalletDisconnect)
	}

	return r
}
