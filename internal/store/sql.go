package store

import (
	"context"
	"database/sql"
	"roster/internal/back"
	"roster/internal/util"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// sqliteDriver is go-sqlite3 with a casefold() SQL function, SQLite's own
// LOWER() and LIKE only fold ASCII.
const sqliteDriver = "sqlite3_roster"

func init() { // nolint:gochecknoinits
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", back.Fold, true)
		},
	})
}

// columns maps filterable fields to Player columns.
var columns = map[back.Field]string{ // nolint:gochecknoglobals
	back.FieldID:         "ID",
	back.FieldName:       "Name",
	back.FieldTitle:      "Title",
	back.FieldRace:       "Race",
	back.FieldProfession: "Profession",
	back.FieldBirthday:   "Birthday",
	back.FieldBanned:     "Banned",
	back.FieldExperience: "Experience",
	back.FieldLevel:      "Level",
}

var playerColumns = []string{ // nolint:gochecknoglobals
	"ID", "Name", "Title", "Race", "Profession", "Birthday", "Banned",
	"Experience", "Level", "UntilNextLevel",
}

// SQL stores players in a Player table through sqlx.
type SQL struct {
	sqlRepository
	db *sqlx.DB
}

// NewSQL opens the sqlite database at dsn, it must already be migrated.
func NewSQL(dsn string) (*SQL, error) {
	// HACK: global. Stores are the only DB users.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqliteDriver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", dsn)
	}

	// Avoid "database is locked" between concurrent writers.
	db.SetMaxOpenConns(1)

	return &SQL{
		sqlRepository: sqlRepository{q: db},
		db:            db,
	}, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) Transaction(ctx context.Context, cb func(back.Repository) error) error {
	return util.Transaction(ctx, s.db, func(tx *sqlx.Tx) error {
		return cb(sqlRepository{q: tx})
	})
}

type sqlRepository struct {
	q sqlx.ExtContext
}

func (r sqlRepository) FindByID(ctx context.Context, id int64) (back.Player, error) {
	query, args, err := squirrel.Select(playerColumns...).From("Player").
		Where(squirrel.Eq{"ID": id}).Limit(1).ToSql()
	if err != nil {
		return back.Player{}, err
	}

	var ret back.Player
	if err := sqlx.GetContext(ctx, r.q, &ret, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return back.Player{}, back.ErrNotFound
		}
		return back.Player{}, errors.Wrapf(err, "unable to get player %d", id)
	}

	return ret, nil
}

func (r sqlRepository) FindPage(ctx context.Context, pred back.Predicate, page back.Page) ([]back.Player, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	sel, err := selectPlayers(pred)
	if err != nil {
		return nil, err
	}

	column := columns[page.Order.Field()]
	sel = sel.OrderBy(column+" ASC", "ID ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset()))

	return r.selectPlayers(ctx, sel)
}

func (r sqlRepository) Count(ctx context.Context, pred back.Predicate) (int, error) {
	cond, err := where(pred)
	if err != nil {
		return 0, err
	}

	query, args, err := squirrel.Select("COUNT(*)").From("Player").Where(cond).ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, query, args...); err != nil {
		return 0, errors.Wrap(err, "unable to count players")
	}

	return n, nil
}

func (r sqlRepository) Save(ctx context.Context, p back.Player) (back.Player, error) {
	values := squirrel.Eq{
		"Name":           p.Name,
		"Title":          p.Title,
		"Race":           string(p.Race),
		"Profession":     string(p.Profession),
		"Birthday":       p.Birthday,
		"Banned":         p.Banned,
		"Experience":     p.Experience,
		"Level":          p.Level,
		"UntilNextLevel": p.UntilNextLevel,
	}

	if p.ID == 0 {
		query, args, err := squirrel.Insert("Player").SetMap(values).ToSql()
		if err != nil {
			return back.Player{}, err
		}

		res, err := r.q.ExecContext(ctx, query, args...)
		if err != nil {
			return back.Player{}, errors.Wrap(err, "unable to insert player")
		}

		if p.ID, err = res.LastInsertId(); err != nil {
			return back.Player{}, errors.Wrap(err, "unable to get inserted player ID")
		}

		return p, nil
	}

	query, args, err := squirrel.Update("Player").SetMap(values).
		Where(squirrel.Eq{"ID": p.ID}).ToSql()
	if err != nil {
		return back.Player{}, err
	}

	if err := r.execOne(ctx, query, args...); err != nil {
		return back.Player{}, errors.Wrapf(err, "unable to update player %d", p.ID)
	}

	return p, nil
}

func (r sqlRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := squirrel.Delete("Player").Where(squirrel.Eq{"ID": id}).ToSql()
	if err != nil {
		return err
	}

	return errors.Wrapf(r.execOne(ctx, query, args...), "unable to delete player %d", id)
}

// execOne runs a statement that must affect exactly one existing row.
func (r sqlRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return back.ErrNotFound
	}

	return nil
}

func (r sqlRepository) selectPlayers(ctx context.Context, sel squirrel.SelectBuilder) ([]back.Player, error) {
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}

	ret := []back.Player{}
	if err := sqlx.SelectContext(ctx, r.q, &ret, query, args...); err != nil {
		return nil, errors.Wrap(err, "unable to select players")
	}

	return ret, nil
}

func selectPlayers(pred back.Predicate) (squirrel.SelectBuilder, error) {
	cond, err := where(pred)
	if err != nil {
		return squirrel.SelectBuilder{}, err
	}

	return squirrel.Select(playerColumns...).From("Player").Where(cond), nil
}

// where translates a predicate into a squirrel conjunction. An empty
// predicate yields an always true condition.
func where(pred back.Predicate) (squirrel.Sqlizer, error) {
	and := squirrel.And{squirrel.Expr("1=1")}

	for _, c := range pred.Criteria() {
		column, ok := columns[c.Field]
		if !ok {
			return nil, errors.Errorf("unknown field %q", c.Field)
		}

		v := sqlValue(c.Value)
		switch c.Op {
		case back.OpEqual:
			and = append(and, squirrel.Eq{column: v})
		case back.OpGreaterThan, back.OpDateGreaterThan:
			and = append(and, squirrel.Gt{column: v})
		case back.OpLessThan, back.OpDateLessThan:
			and = append(and, squirrel.Lt{column: v})
		case back.OpGreaterThanEqual:
			and = append(and, squirrel.GtOrEq{column: v})
		case back.OpLessThanEqual:
			and = append(and, squirrel.LtOrEq{column: v})
		case back.OpMatch:
			str, ok := c.Value.(string)
			if !ok {
				return nil, errors.Errorf("%s on %q expects a string, got %T", c.Op, c.Field, c.Value)
			}
			and = append(and, squirrel.Expr(
				"casefold("+column+`) LIKE ? ESCAPE '\'`,
				"%"+escapeLike(back.Fold(str))+"%",
			))
		default:
			return nil, errors.Errorf("unsupported operator %s", c.Op)
		}
	}

	return and, nil
}

func sqlValue(v interface{}) interface{} {
	switch v := v.(type) {
	case time.Time:
		return util.TimeAsMillis(v).Millis()
	case back.Race:
		return string(v)
	case back.Profession:
		return string(v)
	default:
		return v
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`) // nolint:gochecknoglobals

func escapeLike(str string) string {
	return likeEscaper.Replace(str)
}
