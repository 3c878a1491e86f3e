package store

import (
	"context"
	"roster/internal/back"
	"sort"
	"sync"
)

// Memory keeps players in a map. Transactions work on a copy that replaces
// the map only when the callback succeeds.
type Memory struct {
	mu      sync.RWMutex
	players map[int64]back.Player
	lastID  int64
}

func NewMemory() *Memory {
	return &Memory{players: map[int64]back.Player{}}
}

// Close is a no-op, for parity with SQL.
func (m *Memory) Close() error {
	return nil
}

func (m *Memory) Transaction(ctx context.Context, cb func(back.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	repo := &memoryRepository{
		players: make(map[int64]back.Player, len(m.players)),
		lastID:  m.lastID,
	}
	for k, v := range m.players {
		repo.players[k] = v
	}

	if err := cb(repo); err != nil {
		return err
	}

	m.players, m.lastID = repo.players, repo.lastID
	return nil
}

func (m *Memory) read() *memoryRepository {
	return &memoryRepository{players: m.players, lastID: m.lastID}
}

func (m *Memory) FindByID(ctx context.Context, id int64) (back.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.read().FindByID(ctx, id)
}

func (m *Memory) FindPage(ctx context.Context, pred back.Predicate, page back.Page) ([]back.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.read().FindPage(ctx, pred, page)
}

func (m *Memory) Count(ctx context.Context, pred back.Predicate) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.read().Count(ctx, pred)
}

func (m *Memory) Save(ctx context.Context, p back.Player) (ret back.Player, err error) {
	err = m.Transaction(ctx, func(repo back.Repository) (err error) {
		ret, err = repo.Save(ctx, p)
		return err
	})

	return ret, err
}

func (m *Memory) DeleteByID(ctx context.Context, id int64) error {
	return m.Transaction(ctx, func(repo back.Repository) error {
		return repo.DeleteByID(ctx, id)
	})
}

type memoryRepository struct {
	players map[int64]back.Player
	lastID  int64
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (back.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return back.Player{}, back.ErrNotFound
	}

	return p, nil
}

func (r *memoryRepository) FindPage(ctx context.Context, pred back.Predicate, page back.Page) ([]back.Player, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	all, err := r.findAll(ctx, pred)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return page.Less(all[i], all[j])
	})

	offset := page.Offset()
	if offset >= len(all) {
		return []back.Player{}, nil
	}

	all = all[offset:]
	if page.Size < len(all) {
		all = all[:page.Size]
	}

	return all, nil
}

// findAll returns the matching players by ID.
func (r *memoryRepository) findAll(ctx context.Context, pred back.Predicate) ([]back.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ret := []back.Player{}
	for _, v := range r.players {
		if pred.Matches(v) {
			ret = append(ret, v)
		}
	}

	sort.Slice(ret, func(i, j int) bool {
		return ret[i].ID < ret[j].ID
	})

	return ret, nil
}

func (r *memoryRepository) Count(ctx context.Context, pred back.Predicate) (int, error) {
	all, err := r.findAll(ctx, pred)
	return len(all), err
}

func (r *memoryRepository) Save(_ context.Context, p back.Player) (back.Player, error) {
	if p.ID == 0 {
		r.lastID++
		p.ID = r.lastID
	} else if _, ok := r.players[p.ID]; !ok {
		return back.Player{}, back.ErrNotFound
	}

	r.players[p.ID] = p
	return p, nil
}

func (r *memoryRepository) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.players[id]; !ok {
		return back.ErrNotFound
	}

	delete(r.players, id)
	return nil
}
