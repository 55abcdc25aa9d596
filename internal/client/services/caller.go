package services

import (
	"context"

	"github.com/dmitrijs2005/schoolauth/internal/client/client"
)

// Caller is the authenticated transport the services are built on.
// *client.HTTPClient satisfies it.
type Caller interface {
	DoJSON(ctx context.Context, method, path string, in, out any) error
	Do(ctx context.Context, r client.Request) (*client.Response, error)
}
