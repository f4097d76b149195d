package store

import "context"

// InTx runs fn inside a transaction on tx, handing it the scoped querier
func InTx(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
