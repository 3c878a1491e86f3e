package main

import (
	"io"
	"os"
	"os/signal"
	"roster/internal/back"
	"roster/internal/config"
	"roster/internal/store"
	"roster/internal/web"
	"sync"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func serve(conf *config.Config) error {
	s, closer, err := newStore(conf)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logrus.Warn(errors.Wrap(err, "unable to close the store"))
		}
	}()

	server := web.NewServer(back.New(s), conf.HTTP)

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go server.Serve(&wg, done)

	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signaled
	logrus.Infof("received signal %s", sig)

	close(done)
	wg.Wait()
	logrus.Info("shutdown complete")

	return nil
}

func newStore(conf *config.Config) (back.Store, io.Closer, error) {
	if conf.Storage.Driver == config.StorageMemory {
		logrus.Warn("using the in-memory store, nothing will be persisted")
		m := store.NewMemory()
		return m, m, nil
	}

	if conf.Storage.MigrateOnStart {
		if err := store.Migrate(conf.Storage.Migrations, conf.Storage.DSN); err != nil {
			return nil, nil, err
		}
	}

	s, err := store.NewSQL(conf.Storage.DSN)
	if err != nil {
		return nil, nil, err
	}

	return s, s, nil
}
