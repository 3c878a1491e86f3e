package back

// A Predicate is the conjunction of zero or more criteria. The zero value
// matches every player. Storage layers either call Matches or translate
// Criteria into their own query language.
type Predicate struct {
	criteria []Criterion
}

// BuildPredicate ANDs the given criteria, their order is irrelevant.
func BuildPredicate(criteria ...Criterion) Predicate {
	return Predicate{
		criteria: append([]Criterion(nil), criteria...),
	}
}

func (p Predicate) Criteria() []Criterion {
	return append([]Criterion(nil), p.criteria...)
}

func (p Predicate) Matches(player Player) bool {
	for _, c := range p.criteria {
		if !c.Matches(player) {
			return false
		}
	}

	return true
}
