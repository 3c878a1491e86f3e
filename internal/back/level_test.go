package back_test

import (
	"roster/internal/back"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestComputeLevel(t *testing.T) {
	cases := []struct {
		xp             int64
		level          int
		untilNextLevel int64
	}{
		{0, 0, 100},
		{1, 0, 99},
		{99, 0, 1},
		// Exactly on a level threshold.
		{100, 1, 200},
		{101, 1, 199},
		{299, 1, 1},
		{300, 2, 300},
		{500, 2, 100},
		{2500, 6, 300},
		{7712, 11, 88},
		{back.MaxExperience, 446, 12800},
	}

	for _, v := range cases {
		level, until := back.ComputeLevel(v.xp)
		assert.Equal(t, v.level, level, "level for %d xp", v.xp)
		assert.Equal(t, v.untilNextLevel, until, "until next level for %d xp", v.xp)
	}
}

func TestComputeLevelProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("xp lies within the computed level bounds", prop.ForAll(
		func(xp int64) bool {
			level, until := back.ComputeLevel(xp)
			l := int64(level)
			floor := 50 * l * (l + 1)
			next := 50 * (l + 1) * (l + 2)

			return level >= 0 && until > 0 &&
				floor <= xp && xp < next &&
				xp+until == next
		},
		gen.Int64Range(back.MinExperience, back.MaxExperience),
	))

	properties.Property("level never decreases with xp", prop.ForAll(
		func(xp int64) bool {
			a, _ := back.ComputeLevel(xp)
			b, _ := back.ComputeLevel(xp + 1)
			return b == a || b == a+1
		},
		gen.Int64Range(back.MinExperience, back.MaxExperience-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
