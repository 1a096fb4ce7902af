package providers

import "context"

// EntityLookup answers whether an entity owned by another service exists.
// (false, nil) means the owning service definitively reported it absent.
// Any other failure to get an answer is returned as an error.
type EntityLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}
