package ports

import "context"

// TxRunner scopes a multi-step mutation to one storage transaction. The
// review service wraps every "mutate review + recompute summary" unit in
// WithinTx so two concurrent submissions for the same (food, user) pair
// cannot both pass the uniqueness check, and a recompute always sees a
// point-in-time-consistent review set. fn must use the derived context
// for every storage call inside the scope.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
