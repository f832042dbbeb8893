package chains

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quantumauth-io/quantum-go-utils/retry"
)

// dialWithRetry dials url and probes it with a block number request, retrying
// until it answers or timeout elapses.
func dialWithRetry(ctx context.Context, url string, timeout time.Duration) (*ethclient.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cfg := retry.DefaultConfig()
	cfg.MaxDelayBeforeRetrying = timeout / 4
	cfg.InitialDelayBeforeRetrying = timeout / 40

	attempts := 0
	out, err := retry.Retry(dialCtx, cfg,
		func(ctx context.Context) ([]interface{}, error) {
			attempts++
			client, err := ethclient.DialContext(ctx, url)
			if err != nil {
				return nil, errors.Wrapf(err, "connect to blockchain at %s", url)
			}
			if _, err := client.BlockNumber(ctx); err != nil {
				client.Close()
				return nil, errors.Wrap(err, "latest block number")
			}
			return []interface{}{client}, nil
		},
		nil, // always retry
		"dial blockchain rpc")
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s after %d attempts", url, attempts)
	}
	if len(out) != 1 {
		return nil, errors.Newf("dial %s: unexpected retry result", url)
	}
	client, ok := out[0].(*ethclient.Client)
	if !ok {
		return nil, errors.Newf("dial %s: unexpected client type %T", url, out[0])
	}
	return client, nil
}
