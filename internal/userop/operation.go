// Package userop holds the ERC-4337 v0.6 user operation, its gas policy and
// the personal-message signing used to seal it.
package userop

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quantumauth-io/sponsored-mint/internal/contracts/bindings/go/entrypoint"
)

// Operation is an entry point v0.6 user operation. Numeric fields are uint256.
type Operation struct {
	Sender               common.Address `json:"sender"`
	Nonce                *big.Int       `json:"nonce"`
	InitCode             []byte         `json:"initCode"`
	CallData             []byte         `json:"callData"`
	CallGasLimit         *big.Int       `json:"callGasLimit"`
	VerificationGasLimit *big.Int       `json:"verificationGasLimit"`
	PreVerificationGas   *big.Int       `json:"preVerificationGas"`
	MaxFeePerGas         *big.Int       `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *big.Int       `json:"maxPriorityFeePerGas"`
	PaymasterAndData     []byte         `json:"paymasterAndData"`
	Signature            []byte         `json:"signature"`
}

// PaymasterAndData is solidityPack(["address"], [paymaster]): the raw 20 bytes.
func PaymasterAndData(paymaster common.Address) []byte {
	return common.CopyBytes(paymaster.Bytes())
}

// Clone returns a deep copy.
func (op *Operation) Clone() *Operation {
	if op == nil {
		return nil
	}
	return &Operation{
		Sender:               op.Sender,
		Nonce:                cloneBig(op.Nonce),
		InitCode:             common.CopyBytes(op.InitCode),
		CallData:             common.CopyBytes(op.CallData),
		CallGasLimit:         cloneBig(op.CallGasLimit),
		VerificationGasLimit: cloneBig(op.VerificationGasLimit),
		PreVerificationGas:   cloneBig(op.PreVerificationGas),
		MaxFeePerGas:         cloneBig(op.MaxFeePerGas),
		MaxPriorityFeePerGas: cloneBig(op.MaxPriorityFeePerGas),
		PaymasterAndData:     common.CopyBytes(op.PaymasterAndData),
		Signature:            common.CopyBytes(op.Signature),
	}
}

// Binding converts the operation to the tuple accepted by the entry point binding.
// Nil numeric fields are sent as zero and nil byte fields as empty bytes ("0x").
func (op *Operation) Binding() entrypoint.UserOperation {
	return entrypoint.UserOperation{
		Sender:               op.Sender,
		Nonce:                orZero(op.Nonce),
		InitCode:             orEmpty(op.InitCode),
		CallData:             orEmpty(op.CallData),
		CallGasLimit:         orZero(op.CallGasLimit),
		VerificationGasLimit: orZero(op.VerificationGasLimit),
		PreVerificationGas:   orZero(op.PreVerificationGas),
		MaxFeePerGas:         orZero(op.MaxFeePerGas),
		MaxPriorityFeePerGas: orZero(op.MaxPriorityFeePerGas),
		PaymasterAndData:     orEmpty(op.PaymasterAndData),
		Signature:            orEmpty(op.Signature),
	}
}

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func orEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return common.CopyBytes(b)
}
