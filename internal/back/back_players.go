package back

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ListPlayers returns one page of the players matching filter.
func (b *Back) ListPlayers(ctx context.Context, filter FilterSpec, page Page) (_ []Player, err error) {
	defer b.observe("list", time.Now(), &err)

	if page.Order == "" {
		page.Order = SortByID
	}

	players, err := b.store.FindPage(ctx, filter.Predicate(), page)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list players")
	}

	return players, nil
}

// CountPlayers returns how many players match filter, regardless of paging.
func (b *Back) CountPlayers(ctx context.Context, filter FilterSpec) (_ int, err error) {
	defer b.observe("count", time.Now(), &err)

	n, err := b.store.Count(ctx, filter.Predicate())
	if err != nil {
		return 0, errors.Wrap(err, "unable to count players")
	}

	return n, nil
}

func (b *Back) GetPlayer(ctx context.Context, rawID string) (_ Player, err error) {
	defer b.observe("get", time.Now(), &err)

	id, err := ValidateID(rawID)
	if err != nil {
		return Player{}, err
	}

	return b.store.FindByID(ctx, id)
}

// CreatePlayer stores a new player from a complete draft and returns it with
// its assigned ID and computed level.
func (b *Back) CreatePlayer(ctx context.Context, draft PlayerDraft) (player Player, err error) {
	defer b.observe("create", time.Now(), &err)

	if err := b.store.Transaction(ctx, func(repo Repository) (err error) {
		if err := Validate(draft); err != nil {
			return err
		}

		player, err = repo.Save(ctx, newPlayer(0, draft))
		return err
	}); err != nil {
		return Player{}, err
	}

	b.log.WithField("id", player.ID).Info("player created")
	return player, nil
}

// UpdatePlayer overlays patch on the stored player. The merged player is
// validated as a whole, a patch that leaves an invalid field untouched is
// rejected too.
func (b *Back) UpdatePlayer(ctx context.Context, rawID string, patch PlayerDraft) (player Player, err error) {
	defer b.observe("update", time.Now(), &err)

	id, err := ValidateID(rawID)
	if err != nil {
		return Player{}, err
	}

	if err := b.store.Transaction(ctx, func(repo Repository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		merged := Merge(existing, patch)
		if err := Validate(merged); err != nil {
			return err
		}

		player, err = repo.Save(ctx, newPlayer(id, merged))
		return err
	}); err != nil {
		return Player{}, err
	}

	b.log.WithField("id", player.ID).Info("player updated")
	return player, nil
}

func (b *Back) DeletePlayer(ctx context.Context, rawID string) (err error) {
	defer b.observe("delete", time.Now(), &err)

	id, err := ValidateID(rawID)
	if err != nil {
		return err
	}

	if err := b.store.Transaction(ctx, func(repo Repository) error {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}

		return repo.DeleteByID(ctx, id)
	}); err != nil {
		return err
	}

	b.log.WithField("id", id).Info("player deleted")
	return nil
}
