package back

import "context"

// Repository is the storage a Back delegates player I/O to.
type Repository interface {
	// FindByID returns ErrNotFound when there is no such player.
	FindByID(ctx context.Context, id int64) (Player, error)
	// FindPage returns an empty page past the last match.
	FindPage(ctx context.Context, pred Predicate, page Page) ([]Player, error)
	Count(ctx context.Context, pred Predicate) (int, error)
	// Save inserts the player when its ID is 0 and overwrites it otherwise,
	// the stored player is returned with its ID.
	Save(ctx context.Context, p Player) (Player, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Store is a Repository able to run writes atomically. If cb fails nothing it
// did through the given Repository is kept.
type Store interface {
	Repository
	Transaction(ctx context.Context, cb func(Repository) error) error
}
