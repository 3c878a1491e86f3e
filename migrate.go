package main

import (
	"roster/internal/config"
	"roster/internal/store"

	"github.com/pkg/errors"
)

func migrateUp(conf *config.Config) error {
	if conf.Storage.Driver != config.StorageSQLite {
		return errors.Errorf("nothing to migrate with the %s store", conf.Storage.Driver)
	}

	return store.Migrate(conf.Storage.Migrations, conf.Storage.DSN)
}
