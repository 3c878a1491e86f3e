package store

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3" // migration driver
	_ "github.com/golang-migrate/migrate/v4/source/file"      // migration source
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("package", "internal/store") // nolint:gochecknoglobals

// Migrate applies every pending migration found at source (eg.
// file://resources/migrations) to the sqlite database at path.
func Migrate(source, path string) error {
	m, err := migrate.New(source, "sqlite3://"+path)
	if err != nil {
		return errors.Wrap(err, "unable to create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warnf("unable to close migrator: %v, %v", srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("schema is up to date")
			return nil
		}
		return errors.Wrap(err, "unable to migrate")
	}

	version, _, err := m.Version()
	if err != nil {
		return errors.Wrap(err, "unable to get schema version")
	}

	log.WithField("version", version).Info("schema migrated")
	return nil
}
