package repository

import "context"

// Caller abstracts the `{action, payload}` RPC transport so repositories can
// be exercised in tests without the real sheet services.
// infra.SheetsClient is the production implementation.
type Caller interface {
	Call(ctx context.Context, action string, payload, out any) error
}
