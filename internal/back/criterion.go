package back

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Field names a filterable or sortable Player attribute.
type Field string

const (
	FieldID         Field = "id"
	FieldName       Field = "name"
	FieldTitle      Field = "title"
	FieldRace       Field = "race"
	FieldProfession Field = "profession"
	FieldBirthday   Field = "birthday"
	FieldBanned     Field = "banned"
	FieldExperience Field = "experience"
	FieldLevel      Field = "level"
)

type Operator int

const (
	OpEqual Operator = iota
	OpGreaterThan
	OpLessThan
	OpGreaterThanEqual
	OpLessThanEqual
	OpDateGreaterThan
	OpDateLessThan
	// OpMatch is a case-insensitive substring test.
	OpMatch
)

func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpGreaterThan, OpDateGreaterThan:
		return ">"
	case OpLessThan, OpDateLessThan:
		return "<"
	case OpGreaterThanEqual:
		return ">="
	case OpLessThanEqual:
		return "<="
	case OpMatch:
		return "MATCH"
	default:
		return "?"
	}
}

// A Criterion is a single filter condition on a Player field.
// Value is an int64, string, bool, time.Time, Race or Profession.
type Criterion struct {
	Field Field
	Op    Operator
	Value interface{}
}

// Matches evaluates the criterion against a player in memory. A value whose
// type does not fit the field or operator never matches.
func (c Criterion) Matches(p Player) bool {
	actual := p.field(c.Field)

	switch c.Op {
	case OpEqual:
		if cmp, ok := compare(actual, c.Value); ok {
			return cmp == 0
		}
		return actual == c.Value
	case OpMatch:
		str, ok := actual.(string)
		sub, ok2 := c.Value.(string)
		return ok && ok2 && strings.Contains(Fold(str), Fold(sub))
	case OpDateGreaterThan, OpDateLessThan:
		a, ok := actual.(time.Time)
		v, ok2 := c.Value.(time.Time)
		if !ok || !ok2 {
			return false
		}
		if c.Op == OpDateGreaterThan {
			return a.After(v)
		}
		return a.Before(v)
	}

	cmp, ok := compare(actual, c.Value)
	if !ok {
		return false
	}

	switch c.Op {
	case OpGreaterThan:
		return cmp > 0
	case OpLessThan:
		return cmp < 0
	case OpGreaterThanEqual:
		return cmp >= 0
	case OpLessThanEqual:
		return cmp <= 0
	default:
		return false
	}
}

func (p Player) field(f Field) interface{} {
	switch f {
	case FieldID:
		return p.ID
	case FieldName:
		return p.Name
	case FieldTitle:
		return p.Title
	case FieldRace:
		return p.Race
	case FieldProfession:
		return p.Profession
	case FieldBirthday:
		return p.Birthday.Time()
	case FieldBanned:
		return p.Banned
	case FieldExperience:
		return p.Experience
	case FieldLevel:
		return int64(p.Level)
	default:
		return nil
	}
}

// compare orders integers and times, ok is false for anything else.
func compare(a, b interface{}) (int, bool) {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case ta.Before(tb):
			return -1, true
		case ta.After(tb):
			return 1, true
		default:
			return 0, true
		}
	}

	ia, ok := toInt64(a)
	if !ok {
		return 0, false
	}
	ib, ok := toInt64(b)
	if !ok {
		return 0, false
	}

	switch {
	case ia < ib:
		return -1, true
	case ia > ib:
		return 1, true
	default:
		return 0, true
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// Fold is the full Unicode case folding MATCH compares with, eg. "Straße"
// and "STRASSE" fold to the same string. Stores must use it too.
func Fold(str string) string {
	return cases.Fold().String(str)
}
