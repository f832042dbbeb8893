package userop

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSender     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testEntryPoint = common.HexToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789")
	testPaymaster  = common.HexToAddress("0x00DB2a4A5344FcFA058A7C461e75251cfc597C4c")
)

func sampleOperation() *Operation {
	op := &Operation{
		Sender:           testSender,
		Nonce:            big.NewInt(7),
		InitCode:         []byte{},
		CallData:         []byte{0xde, 0xad, 0xbe, 0xef},
		PaymasterAndData: PaymasterAndData(testPaymaster),
	}
	DefaultGasPolicy().Apply(op)
	return op
}

func TestPaymasterAndDataIsPackedAddress(t *testing.T) {
	data := PaymasterAndData(testPaymaster)
	require.Len(t, data, common.AddressLength)
	require.Equal(t, testPaymaster.Bytes(), data)

	data[0] ^= 0xff
	require.Equal(t, testPaymaster.Bytes(), PaymasterAndData(testPaymaster))
}

func TestDefaultGasPolicy(t *testing.T) {
	p := DefaultGasPolicy()
	assert.Equal(t, "2000000", p.CallGasLimit.String())
	assert.Equal(t, "3000000", p.VerificationGasLimit.String())
	assert.Equal(t, "1000000", p.PreVerificationGas.String())
	assert.Equal(t, "40000000000", p.MaxFeePerGas.String())
	assert.Equal(t, "40000000000", p.MaxPriorityFeePerGas.String())
}

func TestParseGasPolicy(t *testing.T) {
	p, err := ParseGasPolicy("0x10", "20", "30", "100", "50")
	require.NoError(t, err)
	require.Equal(t, int64(16), p.CallGasLimit.Int64())

	_, err = ParseGasPolicy("", "20", "30", "100", "50")
	require.Error(t, err)

	_, err = ParseGasPolicy("1", "abc", "30", "100", "50")
	require.Error(t, err)

	_, err = ParseGasPolicy("1", "2", "0", "100", "50")
	require.Error(t, err)

	_, err = ParseGasPolicy("1", "2", "3", "100", "101")
	require.Error(t, err)
}

func TestGasPolicyApplyCopies(t *testing.T) {
	p := DefaultGasPolicy()
	op := &Operation{}
	p.Apply(op)
	op.CallGasLimit.SetInt64(1)
	require.Equal(t, "2000000", p.CallGasLimit.String())
}

func TestSignRecoverRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hash := crypto.Keccak256Hash([]byte("user operation"))

	sig, err := SignHash(hash, key)
	require.NoError(t, err)
	require.Len(t, sig, crypto.SignatureLength)
	require.Contains(t, []byte{27, 28}, sig[crypto.RecoveryIDOffset])

	got, err := RecoverSigner(hash, sig)
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), got)

	other, err := RecoverSigner(crypto.Keccak256Hash([]byte("other")), sig)
	require.NoError(t, err)
	require.NotEqual(t, got, other)
}

func TestRecoverSignerRejectsBadLength(t *testing.T) {
	_, err := RecoverSigner(common.Hash{}, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestSignWithEphemeralKeySealsCopy(t *testing.T) {
	op := sampleOperation()
	hash := crypto.Keccak256Hash([]byte("entry point hash"))

	signed, err := SignWithEphemeralKey(hash, op)
	require.NoError(t, err)
	require.NoError(t, signed.Verify())
	require.Equal(t, hash, signed.Hash())
	require.Empty(t, op.Signature)

	// mutating the builder value or a returned copy leaves the seal intact
	op.Nonce.SetInt64(99)
	sealed := signed.Operation()
	sealed.Signature[0] ^= 0xff
	require.Equal(t, int64(7), signed.Operation().Nonce.Int64())
	require.NoError(t, signed.Verify())

	again, err := SignWithEphemeralKey(hash, op)
	require.NoError(t, err)
	require.NotEqual(t, signed.Signer(), again.Signer())
}

func TestHashDependsOnEveryInput(t *testing.T) {
	chainID := big.NewInt(167009)
	base, err := Hash(sampleOperation(), testEntryPoint, chainID)
	require.NoError(t, err)

	same, err := Hash(sampleOperation(), testEntryPoint, chainID)
	require.NoError(t, err)
	require.Equal(t, base, same)

	mutations := map[string]func(op *Operation){
		"nonce":     func(op *Operation) { op.Nonce = big.NewInt(8) },
		"callData":  func(op *Operation) { op.CallData = []byte{0x01} },
		"initCode":  func(op *Operation) { op.InitCode = []byte{0x01} },
		"callGas":   func(op *Operation) { op.CallGasLimit = big.NewInt(1) },
		"maxFee":    func(op *Operation) { op.MaxFeePerGas = big.NewInt(1) },
		"paymaster": func(op *Operation) { op.PaymasterAndData = nil },
		"sender":    func(op *Operation) { op.Sender = testPaymaster },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			op := sampleOperation()
			mutate(op)
			h, err := Hash(op, testEntryPoint, chainID)
			require.NoError(t, err)
			require.NotEqual(t, base, h)
		})
	}

	// signature is not part of the hash
	op := sampleOperation()
	op.Signature = []byte{1, 2, 3}
	h, err := Hash(op, testEntryPoint, chainID)
	require.NoError(t, err)
	require.Equal(t, base, h)

	other, err := Hash(sampleOperation(), testEntryPoint, big.NewInt(1))
	require.NoError(t, err)
	require.NotEqual(t, base, other)
}

func TestBinding(t *testing.T) {
	op := sampleOperation()
	b := op.Binding()
	require.Equal(t, op.Sender, b.Sender)
	require.Equal(t, op.Nonce, b.Nonce)
	require.NotNil(t, b.Signature)

	require.Equal(t, op.CallData, b.CallData)
	require.Equal(t, op.PaymasterAndData, b.PaymasterAndData)

	empty := (&Operation{}).Binding()
	require.Zero(t, empty.Nonce.Sign())
	require.NotNil(t, empty.InitCode)
	require.Empty(t, empty.InitCode)
}
