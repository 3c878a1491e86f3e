package back

import (
	"encoding/json"
	"roster/internal/util"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v4"
)

// A Player is a game character stored in the catalog.
// Level and UntilNextLevel are derived from Experience on every write.
type Player struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Title          string            `json:"title"`
	Race           Race              `json:"race"`
	Profession     Profession        `json:"profession"`
	Birthday       util.TimeAsMillis `json:"birthday"`
	Banned         bool              `json:"banned"`
	Experience     int64             `json:"experience"`
	Level          int               `json:"level"`
	UntilNextLevel int64             `json:"untilNextLevel"`
}

// PlayerDraft holds the caller-settable fields of a Player. It is both the
// creation payload and the update patch, an invalid (null) field means the
// caller did not supply it.
type PlayerDraft struct {
	Name       null.String `json:"name"`
	Title      null.String `json:"title"`
	Race       Race        `json:"race"`
	Profession Profession  `json:"profession"`
	Birthday   null.Int    `json:"birthday"`
	Banned     null.Bool   `json:"banned"`
	Experience null.Int    `json:"experience"`
}

// Draft returns the fully populated draft of an existing player.
func (p Player) Draft() PlayerDraft {
	return PlayerDraft{
		Name:       null.StringFrom(p.Name),
		Title:      null.StringFrom(p.Title),
		Race:       p.Race,
		Profession: p.Profession,
		Birthday:   null.IntFrom(p.Birthday.Millis()),
		Banned:     null.BoolFrom(p.Banned),
		Experience: null.IntFrom(p.Experience),
	}
}

// Merge overlays every field present in patch on top of the existing player.
// Neither argument is modified. The result must go through Validate again as
// a whole, untouched fields included.
func Merge(existing Player, patch PlayerDraft) PlayerDraft {
	ret := existing.Draft()

	if patch.Name.Valid {
		ret.Name = patch.Name
	}
	if patch.Title.Valid {
		ret.Title = patch.Title
	}
	if patch.Race != "" {
		ret.Race = patch.Race
	}
	if patch.Profession != "" {
		ret.Profession = patch.Profession
	}
	if patch.Birthday.Valid {
		ret.Birthday = patch.Birthday
	}
	if patch.Banned.Valid {
		ret.Banned = patch.Banned
	}
	if patch.Experience.Valid {
		ret.Experience = patch.Experience
	}

	return ret
}

// newPlayer builds the record to persist from a validated draft, banned
// defaults to false and the level is recomputed.
func newPlayer(id int64, d PlayerDraft) Player {
	p := Player{
		ID:         id,
		Name:       d.Name.String,
		Title:      d.Title.String,
		Race:       d.Race,
		Profession: d.Profession,
		Birthday:   util.NewTimeAsMillis(d.Birthday.Int64),
		Banned:     d.Banned.Valid && d.Banned.Bool,
		Experience: d.Experience.Int64,
	}
	p.Level, p.UntilNextLevel = ComputeLevel(p.Experience)

	return p
}

type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

var races = []Race{ // nolint:gochecknoglobals
	RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit,
}

// ParseRace is case-insensitive.
func ParseRace(str string) (Race, error) {
	for _, v := range races {
		if strings.EqualFold(string(v), str) {
			return v, nil
		}
	}

	return "", errors.Errorf("unknown race %q", str)
}

func (r Race) valid() bool {
	for _, v := range races {
		if r == v {
			return true
		}
	}

	return false
}

func (r *Race) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, func(s string) (string, error) {
		race, err := ParseRace(s)
		return string(race), err
	})
	*r = Race(v)
	return err
}

type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

var professions = []Profession{ // nolint:gochecknoglobals
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
	ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
}

func ParseProfession(str string) (Profession, error) {
	for _, v := range professions {
		if strings.EqualFold(string(v), str) {
			return v, nil
		}
	}

	return "", errors.Errorf("unknown profession %q", str)
}

func (p Profession) valid() bool {
	for _, v := range professions {
		if p == v {
			return true
		}
	}

	return false
}

func (p *Profession) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, func(s string) (string, error) {
		profession, err := ParseProfession(s)
		return string(profession), err
	})
	*p = Profession(v)
	return err
}

// unmarshalEnum leaves the value unset on a JSON null.
func unmarshalEnum(b []byte, parse func(string) (string, error)) (string, error) {
	var str *string
	if err := json.Unmarshal(b, &str); err != nil {
		return "", err
	}

	if str == nil {
		return "", nil
	}

	return parse(*str)
}
