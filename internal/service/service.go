package service

import "context"

// TxRunner executes a function inside a single database transaction.
// Repository calls made from fn join the transaction through the context.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
