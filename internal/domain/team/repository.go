package team

import "context"

// Repository exposes the season-scoped master team table.
type Repository interface {
	ListReferences(ctx context.Context) ([]Reference, error)
}
