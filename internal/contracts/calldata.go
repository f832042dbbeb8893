package contracts

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"

	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/mintnft"
	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/simplewallet"
)

// EncodeMintNFT returns calldata for mintNFT(recipient).
func EncodeMintNFT(recipient common.Address) ([]byte, error) {
	parsed, err := mintnft.MintNFTMetaData.GetAbi()
	if err != nil {
		return nil, errors.Wrap(err, "nft abi")
	}
	data, err := parsed.Pack("mintNFT", recipient)
	if err != nil {
		return nil, errors.Wrap(err, "pack mintNFT")
	}
	return data, nil
}

// EncodeExecuteFromEntryPoint returns calldata for
// executeFromEntryPoint(dest, value, inner).
func EncodeExecuteFromEntryPoint(dest common.Address, value *big.Int, inner []byte) ([]byte, error) {
	if value == nil {
		value = new(big.Int)
	}
	parsed, err := simplewallet.SimpleWalletMetaData.GetAbi()
	if err != nil {
		return nil, errors.Wrap(err, "sender wallet abi")
	}
	data, err := parsed.Pack("executeFromEntryPoint", dest, value, inner)
	if err != nil {
		return nil, errors.Wrap(err, "pack executeFromEntryPoint")
	}
	return data, nil
}

// EncodeSponsoredMint nests mintNFT(recipient) inside the sender wallet's
// executeFromEntryPoint call with zero value.
func EncodeSponsoredMint(nft, recipient common.Address) ([]byte, error) {
	inner, err := EncodeMintNFT(recipient)
	if err != nil {
		return nil, err
	}
	return EncodeExecuteFromEntryPoint(nft, big.NewInt(0), inner)
}
