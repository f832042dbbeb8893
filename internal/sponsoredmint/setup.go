package sponsoredmint

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/sponsored-mint/cmd/sponsored-mint/config"
	"github.com/quantumauth-io/sponsored-mint/internal/assets"
	"github.com/quantumauth-io/sponsored-mint/internal/chains"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts"
	"github.com/quantumauth-io/sponsored-mint/internal/ethwallet/injected"
	"github.com/quantumauth-io/sponsored-mint/internal/helpers"
	clienthttp "github.com/quantumauth-io/sponsored-mint/internal/http"
	"github.com/quantumauth-io/sponsored-mint/internal/mint"
	"github.com/quantumauth-io/sponsored-mint/internal/notify"
	"github.com/quantumauth-io/sponsored-mint/internal/session"
)

type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// runtime is everything one process needs, wired against the active chain.
type runtime struct {
	cfg       *config.Config
	chains    *chains.Service
	chain     chains.ResolvedChain
	chainID   *big.Int
	contracts *contracts.Provider
	hub       *notify.Hub
	keystore  *injected.KeystoreProvider
	session   *session.Connector
	minter    *mint.Minter
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		log.Error("normalize config", "error", err)
		return nil, err
	}
	return cfg, nil
}

func newRuntime(ctx context.Context, cfg *config.Config, password string) (*runtime, error) {
	addrs, err := cfg.ContractAddresses()
	if err != nil {
		return nil, err
	}
	gas, err := cfg.GasPolicy()
	if err != nil {
		return nil, err
	}

	// ---- Chain service (dial once and reuse)
	chainService, err := chains.NewService(ctx, chains.ChainConfig{
		Chains:               &cfg.Networks,
		DefaultActiveNetwork: cfg.Networks.ActiveNetwork,
		PreferredRPCName:     cfg.Networks.ActiveRPC,
	})
	if err != nil {
		return nil, err
	}

	setupOK := false
	defer func() {
		if !setupOK {
			_ = chainService.Close()
		}
	}()

	chainID, err := chainService.VerifyChainID(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := chainService.ActiveChain()
	if err != nil {
		return nil, err
	}
	client, err := chainService.Client()
	if err != nil {
		return nil, err
	}

	// ---- Contracts
	provider, err := contracts.NewProvider(client, addrs)
	if err != nil {
		return nil, err
	}
	if err := provider.VerifyDeployed(ctx); err != nil {
		return nil, err
	}
	fetcher, err := assets.NewFetcher(provider)
	if err != nil {
		return nil, err
	}

	hub := notify.NewHub()

	// ---- Wallet (absent when no keystore is configured)
	var keystoreProvider *injected.KeystoreProvider
	var walletProvider injected.Provider
	if dir := cfg.ClientSettings.KeystoreDir; dir != "" {
		keystoreProvider, err = injected.NewKeystoreProvider(injected.OpenKeystore(dir), chainID, passphraseSource(password))
		if err != nil {
			hub.Close()
			return nil, err
		}
		walletProvider = keystoreProvider
		log.Info("keystore wallet ready", "dir", dir, "accounts", len(keystoreProvider.Accounts()))
	} else {
		log.Warn("no keystore configured, wallet features are unavailable")
	}

	closeWallet := func() {
		if keystoreProvider != nil {
			keystoreProvider.Close()
		}
		hub.Close()
	}

	sess, err := session.NewConnector(walletProvider, fetcher, hub)
	if err != nil {
		closeWallet()
		return nil, err
	}

	minter, err := mint.NewMinter(mint.Config{
		Paymaster:         cfg.PaymasterAddress(),
		Gas:               gas,
		Explorer:          resolved.Explorer,
		ChainID:           chainID,
		VerifyHashLocally: cfg.Mint.VerifyHashLocally,
	}, provider, provider, sess, hub)
	if err != nil {
		closeWallet()
		return nil, err
	}

	setupOK = true
	log.Info("runtime ready",
		"network", resolved.NetworkName,
		"chainId", chainID.String(),
		"rpc", resolved.RPCName,
		"nft", addrs.NFT.Hex(),
		"sender", addrs.Sender.Hex(),
		"entryPoint", addrs.EntryPoint.Hex(),
	)

	return &runtime{
		cfg:       cfg,
		chains:    chainService,
		chain:     resolved,
		chainID:   chainID,
		contracts: provider,
		hub:       hub,
		keystore:  keystoreProvider,
		session:   sess,
		minter:    minter,
	}, nil
}

func (rt *runtime) Close() {
	if rt.keystore != nil {
		rt.keystore.Close()
	}
	rt.hub.Close()
	if err := rt.chains.Close(); err != nil {
		log.Error("chain clients close failed", "error", err)
	}
}

func (rt *runtime) walletControl() clienthttp.WalletControl {
	if rt.keystore == nil {
		return nil
	}
	return rt.keystore
}

var promptPassword = helpers.PromptPassword

// passphraseSource uses password when set and prompts on the terminal
// otherwise.
func passphraseSource(password string) injected.PassphraseFunc {
	if password != "" {
		return injected.StaticPassphrase(password)
	}
	return func(account common.Address) (string, error) {
		return promptPassword(fmt.Sprintf("Keystore passphrase for %s: ", account.Hex()))
	}
}

// Run serves the page and the local API until ctx is cancelled.
func Run(ctx context.Context, build BuildInfo, password string) error {
	log.Info("sponsored-mint",
		"version", build.Version,
		"commit", build.Commit,
		"build_date", build.BuildDate,
	)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure we can bind the HTTP port before dialing anything.
	listenAddr := cfg.ListenAddr()
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("cannot bind %s: %w", listenAddr, err)
	}
	_ = listener.Close()

	rt, err := newRuntime(ctx, cfg, password)
	if err != nil {
		return err
	}
	defer rt.Close()

	detach := rt.session.Attach(ctx)
	defer detach()

	handler := clienthttp.NewHandler(ctx, rt.session, rt.minter, rt.walletControl(), rt.hub)
	router := clienthttp.NewRouter(handler, cfg.ClientSettings.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: router,
		// Requests end with the process; this also closes notification streams.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", serveErr)
		}
	}()
	log.Info("sponsored-mint listening", "url", "http://"+listenAddr)

	// ---- graceful shutdown
	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("sponsored-mint shutdown failed", "error", shutdownErr)
	} else {
		log.Info("sponsored-mint gracefully stopped")
	}

	rt.minter.Wait()
	return nil
}

// Balance prints the NFT balance of address.
func Balance(ctx context.Context, address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address: %q", address)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The wallet is not needed to read a balance.
	cfg.ClientSettings.KeystoreDir = ""

	rt, err := newRuntime(ctx, cfg, "")
	if err != nil {
		return err
	}
	defer rt.Close()

	fetcher, err := assets.NewFetcher(rt.contracts)
	if err != nil {
		return err
	}
	bal, err := fetcher.BalanceOf(ctx, common.HexToAddress(address))
	if err != nil {
		return err
	}

	fmt.Printf("NFT Balance: %s\n", bal.String())
	return nil
}

// MintOnce connects the keystore wallet, mints once and waits for the receipt.
func MintOnce(ctx context.Context, password string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx, cfg, password)
	if err != nil {
		return err
	}
	defer rt.Close()

	account, err := rt.session.Connect(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Connected: %s\n", account.Hex())
	fmt.Printf("NFT Balance: %s\n", rt.session.Snapshot().Balance)

	res, err := rt.minter.Mint(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Transaction: %s\n", res.ExplorerURL)
	fmt.Printf("NFT Balance: %s\n", rt.session.Snapshot().Balance)
	return nil
}
