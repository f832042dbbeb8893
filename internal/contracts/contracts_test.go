package contracts

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/simplewallet"
)

var (
	nftAddr    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	senderAddr = common.HexToAddress("0x3333333333333333333333333333333333333333")
	epAddr     = common.HexToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789")
	recipient  = common.HexToAddress("0x000000000000000000000000000000000000aBc1")
)

func TestEncodeMintNFT(t *testing.T) {
	data, err := EncodeMintNFT(recipient)
	require.NoError(t, err)
	require.Len(t, data, 4+32)
	require.Equal(t, "0x54ba0f27", hexutil.Encode(data[:4]))
	require.Equal(t, recipient, common.BytesToAddress(data[4:]))
}

func TestEncodeSponsoredMint(t *testing.T) {
	data, err := EncodeSponsoredMint(nftAddr, recipient)
	require.NoError(t, err)
	require.Equal(t, "0x73a68f7a", hexutil.Encode(data[:4]))

	parsed, err := simplewallet.SimpleWalletMetaData.GetAbi()
	require.NoError(t, err)
	args, err := parsed.Methods["executeFromEntryPoint"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Len(t, args, 3)
	require.Equal(t, nftAddr, args[0].(common.Address))
	require.Zero(t, args[1].(interface{ Sign() int }).Sign())

	inner, err := EncodeMintNFT(recipient)
	require.NoError(t, err)
	require.Equal(t, inner, args[2].([]byte))
}

func TestAddressesValidate(t *testing.T) {
	require.Error(t, Addresses{}.Validate())
	require.Error(t, Addresses{NFT: nftAddr, Sender: senderAddr}.Validate())
	require.NoError(t, Addresses{NFT: nftAddr, Sender: senderAddr, EntryPoint: epAddr}.Validate())
}

func TestNewProviderRequiresBackend(t *testing.T) {
	_, err := NewProvider(nil, Addresses{NFT: nftAddr, Sender: senderAddr, EntryPoint: epAddr})
	require.Error(t, err)
}
