package sponsoredmint

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestPassphraseSourceUsesStaticPassword(t *testing.T) {
	pass, err := passphraseSource("s3cret")(common.HexToAddress("0x01"))
	require.NoError(t, err)
	require.Equal(t, "s3cret", pass)
}

func TestPassphraseSourcePromptsPerAccount(t *testing.T) {
	orig := promptPassword
	t.Cleanup(func() { promptPassword = orig })

	var prompts []string
	promptPassword = func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return "typed", nil
	}

	account := common.HexToAddress("0xa11ce00000000000000000000000000000000001")
	pass, err := passphraseSource("")(account)
	require.NoError(t, err)
	require.Equal(t, "typed", pass)
	require.Equal(t, []string{"Keystore passphrase for " + account.Hex() + ": "}, prompts)
}

func TestWalletControlIsNilWithoutKeystore(t *testing.T) {
	rt := &runtime{}
	require.Nil(t, rt.walletControl())
}

func TestBalanceRejectsBadAddress(t *testing.T) {
	require.Error(t, Balance(context.Background(), "0xnothex"))
}
