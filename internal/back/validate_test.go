package back_test

import (
	"roster/internal/back"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

func TestValidateID(t *testing.T) {
	for _, v := range []string{"", "0", "00", "1.5", "-3", "abc", "1e3", " 1", "99999999999999999999"} {
		_, err := back.ValidateID(v)
		assert.Equal(t, back.ErrInvalidIdentifier, err, "%q", v)
	}

	for raw, expected := range map[string]int64{"1": 1, "42": 42, "999999": 999999} {
		id, err := back.ValidateID(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, expected, id)
	}
}

func millis(t time.Time) null.Int {
	return null.IntFrom(t.Unix() * 1000)
}

func validDraft() back.PlayerDraft {
	return back.PlayerDraft{
		Name:       null.StringFrom("Ninelle"),
		Title:      null.StringFrom("Ancient Sorceress"),
		Race:       back.RaceElf,
		Profession: back.ProfessionSorcerer,
		Birthday:   millis(time.Date(1000, time.June, 1, 0, 0, 0, 0, time.UTC)),
		Experience: null.IntFrom(804),
	}
}

func TestValidate(t *testing.T) {
	year := func(y int, m time.Month, d int) null.Int {
		return millis(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}

	cases := []struct {
		name   string
		mutate func(*back.PlayerDraft)
		ok     bool
	}{
		{"valid", func(*back.PlayerDraft) {}, true},
		{"banned unset", func(d *back.PlayerDraft) { d.Banned = null.Bool{} }, true},
		{"banned set", func(d *back.PlayerDraft) { d.Banned = null.BoolFrom(true) }, true},

		{"no race", func(d *back.PlayerDraft) { d.Race = "" }, false},
		{"bogus race", func(d *back.PlayerDraft) { d.Race = "ENT" }, false},
		{"no profession", func(d *back.PlayerDraft) { d.Profession = "" }, false},
		{"no birthday", func(d *back.PlayerDraft) { d.Birthday = null.Int{} }, false},

		{"no name", func(d *back.PlayerDraft) { d.Name = null.String{} }, false},
		{"empty name", func(d *back.PlayerDraft) { d.Name = null.StringFrom("") }, false},
		{"name of 12", func(d *back.PlayerDraft) { d.Name = null.StringFrom(strings.Repeat("a", 12)) }, true},
		{"name of 13", func(d *back.PlayerDraft) { d.Name = null.StringFrom(strings.Repeat("a", 13)) }, false},
		{"name of 12 runes", func(d *back.PlayerDraft) { d.Name = null.StringFrom(strings.Repeat("é", 12)) }, true},

		{"no title", func(d *back.PlayerDraft) { d.Title = null.String{} }, false},
		{"empty title", func(d *back.PlayerDraft) { d.Title = null.StringFrom("") }, false},
		{"title of 30", func(d *back.PlayerDraft) { d.Title = null.StringFrom(strings.Repeat("a", 30)) }, true},
		{"title of 31", func(d *back.PlayerDraft) { d.Title = null.StringFrom(strings.Repeat("a", 31)) }, false},

		{"no experience", func(d *back.PlayerDraft) { d.Experience = null.Int{} }, false},
		{"negative experience", func(d *back.PlayerDraft) { d.Experience = null.IntFrom(-1) }, false},
		{"zero experience", func(d *back.PlayerDraft) { d.Experience = null.IntFrom(0) }, true},
		{"max experience", func(d *back.PlayerDraft) { d.Experience = null.IntFrom(back.MaxExperience) }, true},
		{"too much experience", func(d *back.PlayerDraft) { d.Experience = null.IntFrom(back.MaxExperience + 1) }, false},

		{"born in 99", func(d *back.PlayerDraft) { d.Birthday = year(99, time.December, 31) }, false},
		{"born in 100", func(d *back.PlayerDraft) { d.Birthday = year(100, time.January, 1) }, true},
		{"born in 1100", func(d *back.PlayerDraft) { d.Birthday = year(1100, time.December, 31) }, true},
		{"born in 1101", func(d *back.PlayerDraft) { d.Birthday = year(1101, time.January, 1) }, false},
	}

	for _, v := range cases {
		d := validDraft()
		v.mutate(&d)

		err := back.Validate(d)
		if v.ok {
			assert.NoError(t, err, v.name)
		} else {
			assert.Equal(t, back.ErrRecordRejected, err, v.name)
		}
	}
}

func TestValidateNameProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("names are accepted up to 12 characters", prop.ForAll(
		func(n int) bool {
			d := validDraft()
			d.Name = null.StringFrom(strings.Repeat("x", n))
			return (back.Validate(d) == nil) == (n >= 1 && n <= back.MaxNameLength)
		},
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMerge(t *testing.T) {
	existing := back.Player{
		ID:         7,
		Name:       "Ninelle",
		Title:      "Ancient Sorceress",
		Race:       back.RaceElf,
		Profession: back.ProfessionSorcerer,
		Banned:     true,
		Experience: 804,
	}

	merged := back.Merge(existing, back.PlayerDraft{
		Experience: null.IntFrom(500),
		Race:       back.RaceHuman,
	})

	assert.Equal(t, int64(500), merged.Experience.Int64)
	assert.Equal(t, back.RaceHuman, merged.Race)
	assert.Equal(t, "Ninelle", merged.Name.String)
	assert.Equal(t, "Ancient Sorceress", merged.Title.String)
	assert.Equal(t, back.ProfessionSorcerer, merged.Profession)
	assert.True(t, merged.Banned.Bool)

	// Untouched.
	assert.Equal(t, back.RaceElf, existing.Race)
	assert.Equal(t, int64(804), existing.Experience)
}
