package users

import "context"

type Repository interface {
	SelectIDs(ctx context.Context) ([]string, error)
}
