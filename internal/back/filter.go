package back

import (
	"gopkg.in/guregu/null.v4"
)

// FilterSpec narrows a listing, every unset field is ignored.
type FilterSpec struct {
	Name       null.String
	Title      null.String
	Race       Race
	Profession Profession
	Banned     null.Bool

	// Birthday bounds, both exclusive.
	After  null.Time
	Before null.Time

	MinExperience null.Int
	MaxExperience null.Int
	MinLevel      null.Int
	MaxLevel      null.Int
}

// Criteria returns one criterion per set field.
func (f FilterSpec) Criteria() []Criterion {
	var ret []Criterion
	add := func(set bool, field Field, op Operator, v interface{}) {
		if set {
			ret = append(ret, Criterion{Field: field, Op: op, Value: v})
		}
	}

	add(f.Race != "", FieldRace, OpEqual, f.Race)
	add(f.Profession != "", FieldProfession, OpEqual, f.Profession)
	add(f.Banned.Valid, FieldBanned, OpEqual, f.Banned.Bool)
	add(f.Name.Valid, FieldName, OpMatch, f.Name.String)
	add(f.Title.Valid, FieldTitle, OpMatch, f.Title.String)
	add(f.After.Valid, FieldBirthday, OpDateGreaterThan, f.After.Time)
	add(f.Before.Valid, FieldBirthday, OpDateLessThan, f.Before.Time)
	add(f.MaxLevel.Valid, FieldLevel, OpLessThanEqual, f.MaxLevel.Int64)
	add(f.MinLevel.Valid, FieldLevel, OpGreaterThanEqual, f.MinLevel.Int64)
	add(f.MaxExperience.Valid, FieldExperience, OpLessThanEqual, f.MaxExperience.Int64)
	add(f.MinExperience.Valid, FieldExperience, OpGreaterThanEqual, f.MinExperience.Int64)

	return ret
}

func (f FilterSpec) Predicate() Predicate {
	return BuildPredicate(f.Criteria()...)
}
