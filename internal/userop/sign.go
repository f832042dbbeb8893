package userop

import (
	"crypto/ecdsa"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrSignatureMismatch = errors.New("userop: signature does not recover to signer")

// Signed is an operation sealed with a signature over the entry point hash of
// its fields. It is immutable: accessors hand out copies.
type Signed struct {
	op     *Operation
	hash   common.Hash
	signer common.Address
}

func (s *Signed) Operation() *Operation {
	return s.op.Clone()
}

func (s *Signed) Hash() common.Hash {
	return s.hash
}

func (s *Signed) Signer() common.Address {
	return s.signer
}

// SignWithEphemeralKey signs hash with a key generated for this call only and
// returns a sealed copy of op carrying the signature. The key is not retained.
func SignWithEphemeralKey(hash common.Hash, op *Operation) (*Signed, error) {
	if op == nil {
		return nil, errors.New("userop: nil operation")
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate ephemeral key")
	}
	signer := crypto.PubkeyToAddress(key.PublicKey)

	sig, err := SignHash(hash, key)
	if err != nil {
		return nil, err
	}

	sealed := op.Clone()
	sealed.Signature = sig
	return &Signed{op: sealed, hash: hash, signer: signer}, nil
}

// SignHash signs keccak256("\x19Ethereum Signed Message:\n32" || hash) and
// returns r||s||v with v in {27, 28}.
func SignHash(hash common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(hash.Bytes()), key)
	if err != nil {
		return nil, errors.Wrap(err, "sign user operation hash")
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverSigner is the inverse of SignHash.
func RecoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, errors.Newf("userop: signature length %d", len(sig))
	}
	normalized := common.CopyBytes(sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash(hash.Bytes()), normalized)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "recover signer")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verify checks that the sealed signature recovers to the ephemeral signer
// over the sealed hash.
func (s *Signed) Verify() error {
	got, err := RecoverSigner(s.hash, s.op.Signature)
	if err != nil {
		return err
	}
	if got != s.signer {
		return ErrSignatureMismatch
	}
	return nil
}
