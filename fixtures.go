package main

import (
	"context"
	"roster/internal/back"
	"roster/internal/config"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v4"
)

func loadFixtures(conf *config.Config) error {
	s, closer, err := newStore(conf)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logrus.Warn(errors.Wrap(err, "unable to close the store"))
		}
	}()

	b := back.New(s)
	for _, v := range fixturePlayers() {
		if _, err := b.CreatePlayer(context.Background(), v); err != nil {
			return errors.Wrapf(err, "unable to create %s", v.Name.String)
		}
	}

	return nil
}

func fixturePlayers() []back.PlayerDraft {
	draft := func(
		name, title string,
		race back.Race, profession back.Profession,
		year int, xp int64, banned bool,
	) back.PlayerDraft {
		birthday := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return back.PlayerDraft{
			Name:       null.StringFrom(name),
			Title:      null.StringFrom(title),
			Race:       race,
			Profession: profession,
			Birthday:   null.IntFrom(birthday.Unix() * 1000),
			Banned:     null.BoolFrom(banned),
			Experience: null.IntFrom(xp),
		}
	}

	return []back.PlayerDraft{
		draft("Ninelle", "Ancient Sorceress", back.RaceElf, back.ProfessionSorcerer, 1000, 804, false),
		draft("Kinnamon", "Dark Blade", back.RaceHuman, back.ProfessionWarrior, 900, 2500, false),
		draft("Ogrim", "Chief of the Clan", back.RaceOrc, back.ProfessionDruid, 810, 174034, true),
		draft("Pippin", "Second Breakfast", back.RaceHobbit, back.ProfessionRogue, 1090, 49201, false),
		draft("Grumli", "Deep Miner", back.RaceDwarf, back.ProfessionCleric, 500, 7712, false),
		draft("Hebog", "Stone Caller", back.RaceTroll, back.ProfessionWarlock, 230, 2901223, false),
		draft("Ymir", "First of the Frost", back.RaceGiant, back.ProfessionPaladin, 101, 10000000, false),
	}
}
