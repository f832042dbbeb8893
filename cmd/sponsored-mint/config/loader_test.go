package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/sponsored-mint/internal/constants"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestEmbeddedDefaults(t *testing.T) {
	cfg, err := LoadFrom([]string{t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, cfg.Normalize())

	require.Equal(t, "127.0.0.1:6140", cfg.ListenAddr())
	require.Empty(t, cfg.ClientSettings.KeystoreDir)

	network, err := cfg.ActiveNetwork()
	require.NoError(t, err)
	require.Equal(t, "hekla", network.Name)
	require.Equal(t, uint64(167009), network.ChainID)
	require.Equal(t, constants.DefaultExplorer, network.Explorer)
	require.Len(t, network.RPCs, 1)
	require.Equal(t, "https://rpc.hekla.taiko.xyz", network.RPCs[0].URL)

	gas, err := cfg.GasPolicy()
	require.NoError(t, err)
	require.Equal(t, "2000000", gas.CallGasLimit.String())
	require.Equal(t, "40000000000", gas.MaxPriorityFeePerGas.String())

	require.Equal(t, common.HexToAddress(constants.DefaultPaymaster), cfg.PaymasterAddress())

	_, err = cfg.ContractAddresses()
	require.Error(t, err, "nft and sender have no default")
}

func TestConfigFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
Contracts:
  NFT: "c0ffee254729296a45a3885639ac7e10f9d54979"
  Sender: "0x999999cf1046e68e36E1aA2E0E07105eDDD1f08E"
Mint:
  Gas:
    CallGasLimit: "0x1e8480"
`)
	t.Setenv("SPONSORED_MINT_CLIENTSETTINGS_PORT", "7000")

	cfg, err := LoadFrom([]string{dir})
	require.NoError(t, err)
	require.NoError(t, cfg.Normalize())

	require.Equal(t, "127.0.0.1:7000", cfg.ListenAddr())

	addrs, err := cfg.ContractAddresses()
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xc0ffee254729296a45a3885639ac7e10f9d54979"), addrs.NFT)
	require.Equal(t, addrs.NFT.Hex(), cfg.Contracts.NFT)
	require.Equal(t, common.HexToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789"), addrs.EntryPoint)

	gas, err := cfg.GasPolicy()
	require.NoError(t, err)
	require.Equal(t, "2000000", gas.CallGasLimit.String())
	require.Equal(t, "3000000", gas.VerificationGasLimit.String())
}

func TestDotEnvIsLoaded(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", constants.KeystorePasswordEnv+"=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv(constants.KeystorePasswordEnv) })

	_, err := LoadFrom([]string{dir}, envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", os.Getenv(constants.KeystorePasswordEnv))
}

func TestNormalizeRejectsBadValues(t *testing.T) {
	cfg, err := LoadFrom([]string{t.TempDir()})
	require.NoError(t, err)
	cfg.Contracts.NFT = "not-an-address"
	err = cfg.Normalize()
	require.Error(t, err)
	require.Equal(t, `Contracts.NFT: invalid address: "not-an-address"`, err.Error())

	cfg, err = LoadFrom([]string{t.TempDir()})
	require.NoError(t, err)
	cfg.Networks.ActiveNetwork = "mainnet"
	err = cfg.Normalize()
	require.Error(t, err)
	require.Equal(t, `active network "mainnet" not found in config`, err.Error())

	cfg, err = LoadFrom([]string{t.TempDir()})
	require.NoError(t, err)
	cfg.Networks.ActiveNetwork = " "
	err = cfg.Normalize()
	require.Error(t, err)
	require.Equal(t, "active network is empty", err.Error())

	cfg, err = LoadFrom([]string{t.TempDir()})
	require.NoError(t, err)
	cfg.Mint.Gas.MaxPriorityFeePerGas = "50000000000"
	_, err = cfg.GasPolicy()
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "keys"), expandHome("~/keys"))
	require.Equal(t, "/var/keys", expandHome("/var/keys"))
}
