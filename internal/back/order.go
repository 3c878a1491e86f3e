package back

import (
	"strings"

	"github.com/pkg/errors"
)

// SortField is the closed set of orderings a listing accepts.
type SortField string

const (
	SortByID         SortField = "ID"
	SortByName       SortField = "NAME"
	SortByExperience SortField = "EXPERIENCE"
	SortByBirthday   SortField = "BIRTHDAY"
	SortByLevel      SortField = "LEVEL"
)

func ParseSortField(str string) (SortField, error) {
	switch v := SortField(strings.ToUpper(str)); v {
	case SortByID, SortByName, SortByExperience, SortByBirthday, SortByLevel:
		return v, nil
	default:
		return "", errors.Errorf("unknown sort field %q", str)
	}
}

func (s SortField) Field() Field {
	switch s {
	case SortByName:
		return FieldName
	case SortByExperience:
		return FieldExperience
	case SortByBirthday:
		return FieldBirthday
	case SortByLevel:
		return FieldLevel
	default:
		return FieldID
	}
}

const DefaultPageSize = 3

// Page selects a slice of an ordered listing, Number starts at 0.
type Page struct {
	Number int
	Size   int
	Order  SortField
}

func (p Page) Validate() error {
	if p.Number < 0 {
		return errors.Errorf("page number must be >= 0, got %d", p.Number)
	}
	if p.Size < 1 {
		return errors.Errorf("page size must be >= 1, got %d", p.Size)
	}

	return nil
}

const maxInt = int(^uint(0) >> 1)

// Offset is the index of the first player of the page. It saturates at the
// largest int instead of wrapping, so a page far past the end stays empty.
func (p Page) Offset() int {
	if p.Size <= 0 || p.Number <= 0 {
		return 0
	}
	if p.Number > maxInt/p.Size {
		return maxInt
	}

	return p.Number * p.Size
}

// Less orders players by the page sort field ascending, then by ID.
func (p Page) Less(a, b Player) bool {
	if p.Order.Field() != FieldID {
		if cmp, ok := compare(a.field(p.Order.Field()), b.field(p.Order.Field())); ok && cmp != 0 {
			return cmp < 0
		}
		if p.Order == SortByName && a.Name != b.Name {
			return a.Name < b.Name
		}
	}

	return a.ID < b.ID
}
