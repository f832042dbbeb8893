package userop

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/quantumauth-io/sponsored-mint/internal/constants"
)

// GasPolicy holds the fixed gas and fee values placed on every operation.
// There is no dynamic fee estimation.
type GasPolicy struct {
	CallGasLimit         *big.Int
	VerificationGasLimit *big.Int
	PreVerificationGas   *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

func DefaultGasPolicy() GasPolicy {
	p, err := ParseGasPolicy(
		constants.DefaultCallGasLimit,
		constants.DefaultVerificationGasLimit,
		constants.DefaultPreVerificationGas,
		constants.DefaultMaxFeePerGas,
		constants.DefaultMaxPriorityFeePerGas,
	)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseGasPolicy parses decimal (or 0x-prefixed hex) quantities.
func ParseGasPolicy(callGas, verificationGas, preVerificationGas, maxFee, maxPriorityFee string) (GasPolicy, error) {
	var p GasPolicy
	fields := []struct {
		name string
		raw  string
		dst  **big.Int
	}{
		{"callGasLimit", callGas, &p.CallGasLimit},
		{"verificationGasLimit", verificationGas, &p.VerificationGasLimit},
		{"preVerificationGas", preVerificationGas, &p.PreVerificationGas},
		{"maxFeePerGas", maxFee, &p.MaxFeePerGas},
		{"maxPriorityFeePerGas", maxPriorityFee, &p.MaxPriorityFeePerGas},
	}
	for _, f := range fields {
		v, err := parseQuantity(f.raw)
		if err != nil {
			return GasPolicy{}, errors.Wrapf(err, "gas policy %s", f.name)
		}
		*f.dst = v
	}
	return p, p.Validate()
}

func (p GasPolicy) Validate() error {
	for name, v := range map[string]*big.Int{
		"callGasLimit":         p.CallGasLimit,
		"verificationGasLimit": p.VerificationGasLimit,
		"preVerificationGas":   p.PreVerificationGas,
		"maxFeePerGas":         p.MaxFeePerGas,
		"maxPriorityFeePerGas": p.MaxPriorityFeePerGas,
	} {
		if v == nil || v.Sign() <= 0 {
			return errors.Newf("gas policy %s must be positive", name)
		}
		if v.BitLen() > 256 {
			return errors.Newf("gas policy %s overflows uint256", name)
		}
	}
	if p.MaxPriorityFeePerGas.Cmp(p.MaxFeePerGas) > 0 {
		return errors.New("gas policy maxPriorityFeePerGas exceeds maxFeePerGas")
	}
	return nil
}

// Apply writes copies of the policy values into op.
func (p GasPolicy) Apply(op *Operation) {
	op.CallGasLimit = cloneBig(p.CallGasLimit)
	op.VerificationGasLimit = cloneBig(p.VerificationGasLimit)
	op.PreVerificationGas = cloneBig(p.PreVerificationGas)
	op.MaxFeePerGas = cloneBig(p.MaxFeePerGas)
	op.MaxPriorityFeePerGas = cloneBig(p.MaxPriorityFeePerGas)
}

func parseQuantity(raw string) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errors.New("empty value")
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.Newf("invalid quantity %q", raw)
	}
	return v, nil
}
