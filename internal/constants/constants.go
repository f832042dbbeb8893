package constants

const (
	AppName   = "sponsored-mint"
	EnvPrefix = "SPONSORED_MINT"

	// Default explorer used to build transaction links.
	DefaultExplorer = "https://explorer.hekla.taiko.xyz"

	// Sponsoring paymaster on Taiko Hekla.
	DefaultPaymaster = "0x00DB2a4A5344FcFA058A7C461e75251cfc597C4c"

	DefaultCallGasLimit         = "2000000"
	DefaultVerificationGasLimit = "3000000"
	DefaultPreVerificationGas   = "1000000"
	DefaultMaxFeePerGas         = "40000000000"
	DefaultMaxPriorityFeePerGas = "40000000000"

	KeystorePasswordEnv = "SPONSORED_MINT_KEYSTORE_PASSWORD"
)

// User facing texts.
const (
	InstallWalletText      = "Please install a wallet to use this feature!"
	TxSubmittedText        = "⏳ Txn submitted. Waiting for confirmation"
	TxConfirmedText        = "🚀 Transaction submitted! View on Block Explorer"
	TxFailedText           = "😐 Error sending the txn"
	BalanceUnavailableText = "Could not refresh NFT balance"
	BalanceLoadingText     = "loading..."
)
