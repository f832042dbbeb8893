package chains

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

var ErrChainIDMismatch = errors.New("rpc chain id does not match configuration")

type ChainConfig struct {
	Chains               *AllChainsConfig
	DefaultActiveNetwork string
	PreferredRPCName     string
	// Upper bound for dialing the endpoint, retries included.
	DialTimeout time.Duration
}

type ResolvedChain struct {
	NetworkName string
	ChainID     uint64
	Explorer    string

	RPCName string
	URL     string
}

// Service holds the RPC client for the active network.
type Service struct {
	cfg ChainConfig

	mu       sync.Mutex
	resolved ResolvedChain
	client   *ethclient.Client
}

// NewService resolves the active network and dials its RPC endpoint.
func NewService(ctx context.Context, cfg ChainConfig) (*Service, error) {
	service, err := newService(cfg)
	if err != nil {
		return nil, err
	}

	resolved, err := service.ResolveNetworkByName(cfg.DefaultActiveNetwork)
	if err != nil {
		return nil, err
	}
	client, err := dialWithRetry(ctx, resolved.URL, service.cfg.DialTimeout)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %q", resolved.NetworkName)
	}

	service.resolved = resolved
	service.client = client
	log.Info("active chain", "network", resolved.NetworkName, "chainId", resolved.ChainID, "rpc", resolved.RPCName)
	return service, nil
}

func newService(cfg ChainConfig) (*Service, error) {
	if cfg.Chains == nil {
		return nil, errors.New("chains config is nil")
	}
	if strings.TrimSpace(cfg.DefaultActiveNetwork) == "" {
		return nil, errors.New("active network is empty")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 30 * time.Second
	}
	return &Service{cfg: cfg}, nil
}

func (s *Service) Client() (*ethclient.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil, errors.New("no active chain")
	}
	return s.client, nil
}

func (s *Service) ActiveChain() (ResolvedChain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return ResolvedChain{}, errors.New("no active chain")
	}
	return s.resolved, nil
}

// VerifyChainID checks the active RPC reports the configured chain id.
func (s *Service) VerifyChainID(ctx context.Context) (*big.Int, error) {
	client, err := s.Client()
	if err != nil {
		return nil, err
	}
	resolved, err := s.ActiveChain()
	if err != nil {
		return nil, err
	}

	got, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "chain id for %s", resolved.NetworkName)
	}
	if resolved.ChainID != 0 && got.Uint64() != resolved.ChainID {
		return nil, errors.Wrapf(ErrChainIDMismatch, "network %s: rpc reports %s, configured %d",
			resolved.NetworkName, got, resolved.ChainID)
	}
	return got, nil
}

// Close closes the RPC client.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
	return nil
}

func (s *Service) ResolveNetworkByName(networkName string) (ResolvedChain, error) {
	networkName = strings.TrimSpace(networkName)
	if networkName == "" {
		return ResolvedChain{}, errors.New("network name is empty")
	}

	for name, network := range s.cfg.Chains.Networks {
		if strings.EqualFold(name, networkName) {
			return s.resolveFromNetworkConfig(name, network)
		}
	}
	return ResolvedChain{}, errors.Newf("unknown network %q", networkName)
}

func (s *Service) resolveFromNetworkConfig(networkName string, network NetworkConfig) (ResolvedChain, error) {
	// pick RPC by preferred name; otherwise first
	var selectedRPC *RPC

	if preferred := strings.TrimSpace(s.cfg.PreferredRPCName); preferred != "" {
		for i := range network.RPCs {
			if strings.EqualFold(strings.TrimSpace(network.RPCs[i].Name), preferred) {
				selectedRPC = &network.RPCs[i]
				break
			}
		}
	}
	if selectedRPC == nil {
		if len(network.RPCs) == 0 {
			return ResolvedChain{}, errors.Newf("network %q has no RPCs configured", networkName)
		}
		selectedRPC = &network.RPCs[0]
	}

	if strings.TrimSpace(selectedRPC.URL) == "" {
		return ResolvedChain{}, errors.Newf("network %q rpc %q url is empty", networkName, selectedRPC.Name)
	}

	return ResolvedChain{
		NetworkName: networkName,
		ChainID:     network.ChainID,
		Explorer:    network.Explorer,
		RPCName:     selectedRPC.Name,
		URL:         strings.TrimSpace(selectedRPC.URL),
	}, nil
}
