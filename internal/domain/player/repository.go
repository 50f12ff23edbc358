package player

import "context"

// Repository exposes the player master table.
type Repository interface {
	ListIdentities(ctx context.Context) ([]Identity, error)
}
