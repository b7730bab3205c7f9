package license

import "context"

// Client answers whether an email address currently holds a valid entitlement.
type Client interface {
	HasEntitlement(ctx context.Context, email string) (bool, error)
}
