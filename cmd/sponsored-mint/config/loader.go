package config

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/spf13/viper"

	"github.com/quantumauth-io/sponsored-mint/internal/chains"
	"github.com/quantumauth-io/sponsored-mint/internal/constants"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts"
	"github.com/quantumauth-io/sponsored-mint/internal/userop"
)

type ClientSettings struct {
	LocalHost      string
	Port           string
	KeystoreDir    string
	AllowedOrigins []string
}

type ContractsConfig struct {
	NFT        string
	Sender     string
	EntryPoint string
}

type GasConfig struct {
	CallGasLimit         string
	VerificationGasLimit string
	PreVerificationGas   string
	MaxFeePerGas         string
	MaxPriorityFeePerGas string
}

type MintConfig struct {
	Paymaster         string
	VerifyHashLocally bool
	Gas               GasConfig
}

type Config struct {
	ClientSettings *ClientSettings
	Networks       chains.AllChainsConfig
	Contracts      ContractsConfig
	Mint           MintConfig
}

// Load reads the embedded defaults, merges the first config.yaml found in the
// search paths and applies SPONSORED_MINT_* environment overrides. A .env file
// in the working directory is loaded first.
func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	paths := []string{
		filepath.Join(home, ".config", constants.AppName),
		filepath.Join(home, "config"),
		".",
	}
	return LoadFrom(paths, ".env")
}

func LoadFrom(paths []string, envFiles ...string) (*Config, error) {
	if err := LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(EmbeddedConfigYAML)); err != nil {
		return nil, errors.Wrap(err, "read embedded config")
	}

	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "merge config file")
		}
	} else {
		log.Info("config file merged", "file", v.ConfigFileUsed())
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if cfg.ClientSettings == nil {
		cfg.ClientSettings = &ClientSettings{}
	}
	return &cfg, nil
}

// LoadDotEnv loads each env file that exists. Variables already set in the
// environment win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return errors.Wrapf(err, "load %s", f)
		}
		log.Info("environment file loaded", "file", f)
	}
	return nil
}

// Normalize canonicalizes network keys and every configured address.
func (c *Config) Normalize() error {
	c.Networks.Normalize()
	if c.Networks.ActiveNetwork == "" {
		return errors.New("active network is empty")
	}
	if _, ok := c.Networks.Networks[c.Networks.ActiveNetwork]; !ok {
		return errors.Newf("active network %q not found in config", c.Networks.ActiveNetwork)
	}

	for name, field := range map[string]*string{
		"Contracts.NFT":        &c.Contracts.NFT,
		"Contracts.Sender":     &c.Contracts.Sender,
		"Contracts.EntryPoint": &c.Contracts.EntryPoint,
		"Mint.Paymaster":       &c.Mint.Paymaster,
	} {
		canon, err := canonicalAddress(*field)
		if err != nil {
			return errors.Wrapf(err, "%s", name)
		}
		*field = canon
	}

	c.ClientSettings.KeystoreDir = expandHome(strings.TrimSpace(c.ClientSettings.KeystoreDir))
	return nil
}

// canonicalAddress returns the checksummed form of raw; empty stays empty.
func canonicalAddress(raw string) (string, error) {
	a := strings.TrimSpace(raw)
	if a == "" {
		return "", nil
	}
	if !strings.HasPrefix(a, "0x") && !strings.HasPrefix(a, "0X") {
		a = "0x" + a
	}
	a = strings.ToLower(a)
	if !common.IsHexAddress(a) {
		return "", errors.Newf("invalid address: %q", raw)
	}
	return common.HexToAddress(a).Hex(), nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func (c *Config) ContractAddresses() (contracts.Addresses, error) {
	addrs := contracts.Addresses{
		NFT:        common.HexToAddress(c.Contracts.NFT),
		Sender:     common.HexToAddress(c.Contracts.Sender),
		EntryPoint: common.HexToAddress(c.Contracts.EntryPoint),
	}
	if err := addrs.Validate(); err != nil {
		return contracts.Addresses{}, err
	}
	return addrs, nil
}

func (c *Config) GasPolicy() (userop.GasPolicy, error) {
	g := c.Mint.Gas
	return userop.ParseGasPolicy(g.CallGasLimit, g.VerificationGasLimit, g.PreVerificationGas, g.MaxFeePerGas, g.MaxPriorityFeePerGas)
}

// PaymasterAddress falls back to the default sponsor when none is configured.
func (c *Config) PaymasterAddress() common.Address {
	if c.Mint.Paymaster == "" {
		return common.HexToAddress(constants.DefaultPaymaster)
	}
	return common.HexToAddress(c.Mint.Paymaster)
}

func (c *Config) ActiveNetwork() (chains.NetworkConfig, error) {
	n, ok := c.Networks.Networks[c.Networks.ActiveNetwork]
	if !ok {
		return chains.NetworkConfig{}, errors.Newf("active network %q not found in config", c.Networks.ActiveNetwork)
	}
	return n, nil
}

func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.ClientSettings.LocalHost, c.ClientSettings.Port)
}
