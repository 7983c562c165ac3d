package repository

import "context"

// TxManager runs fn inside a storage transaction carried by the context.
// Blob stores without transactions run fn directly.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
