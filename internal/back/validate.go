package back

import (
	"roster/internal/util"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MinBirthYear   = 100
	MaxBirthYear   = 1100
)

// ValidateID parses a player ID as given by a caller. It does not check the
// ID exists.
func ValidateID(raw string) (int64, error) {
	if raw == "" || raw == "0" || strings.ContainsAny(raw, ".-") {
		return 0, ErrInvalidIdentifier
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidIdentifier
	}

	return id, nil
}

// Validate checks a whole candidate player, not only the fields a caller
// may have supplied. Banned is never checked.
func Validate(d PlayerDraft) error {
	if !d.Race.valid() || !d.Profession.valid() || !d.Birthday.Valid {
		return ErrRecordRejected
	}

	if !validString(d.Name.Valid, d.Name.String, MaxNameLength) ||
		!validString(d.Title.Valid, d.Title.String, MaxTitleLength) {
		return ErrRecordRejected
	}

	if !d.Experience.Valid ||
		d.Experience.Int64 < MinExperience || d.Experience.Int64 > MaxExperience {
		return ErrRecordRejected
	}

	year := util.NewTimeAsMillis(d.Birthday.Int64).Time().Year()
	if year < MinBirthYear || year > MaxBirthYear {
		return ErrRecordRejected
	}

	return nil
}

func validString(set bool, str string, maxLen int) bool {
	n := utf8.RuneCountInString(str)
	return set && n > 0 && n <= maxLen
}
