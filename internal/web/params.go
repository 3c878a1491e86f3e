package web

import (
	"fmt"
	"net/url"
	"roster/internal/back"
	"roster/internal/util"
	"strconv"

	"gopkg.in/guregu/null.v4"
)

// badRequest is a malformed query parameter, echoed back to the caller.
type badRequest string

func (e badRequest) Error() string {
	return string(e)
}

func badParam(name string, err error) error {
	return badRequest(fmt.Sprintf("invalid %s parameter: %s", name, err))
}

// parsePage reads pageNumber (default 0), pageSize (default 3) and order
// (default ID).
func parsePage(q url.Values) (back.Page, error) {
	page := back.Page{Number: 0, Size: back.DefaultPageSize, Order: back.SortByID}

	var err error
	if v := q.Get("pageNumber"); v != "" {
		if page.Number, err = strconv.Atoi(v); err != nil {
			return back.Page{}, badParam("pageNumber", err)
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if page.Size, err = strconv.Atoi(v); err != nil {
			return back.Page{}, badParam("pageSize", err)
		}
	}
	if v := q.Get("order"); v != "" {
		if page.Order, err = back.ParseSortField(v); err != nil {
			return back.Page{}, badParam("order", err)
		}
	}

	if err := page.Validate(); err != nil {
		return back.Page{}, badRequest(err.Error())
	}

	return page, nil
}

func parseFilter(q url.Values) (f back.FilterSpec, err error) {
	if _, ok := q["name"]; ok {
		f.Name = null.StringFrom(q.Get("name"))
	}
	if _, ok := q["title"]; ok {
		f.Title = null.StringFrom(q.Get("title"))
	}

	if v := q.Get("race"); v != "" {
		if f.Race, err = back.ParseRace(v); err != nil {
			return back.FilterSpec{}, badParam("race", err)
		}
	}
	if v := q.Get("profession"); v != "" {
		if f.Profession, err = back.ParseProfession(v); err != nil {
			return back.FilterSpec{}, badParam("profession", err)
		}
	}
	if v := q.Get("banned"); v != "" {
		banned, err := strconv.ParseBool(v)
		if err != nil {
			return back.FilterSpec{}, badParam("banned", err)
		}
		f.Banned = null.BoolFrom(banned)
	}

	for _, v := range []struct {
		name string
		dst  *null.Time
	}{
		{"after", &f.After},
		{"before", &f.Before},
	} {
		ms, err := parseInt(q, v.name)
		if err != nil {
			return back.FilterSpec{}, err
		}
		if ms.Valid {
			*v.dst = null.TimeFrom(util.NewTimeAsMillis(ms.Int64).Time())
		}
	}

	for _, v := range []struct {
		name string
		dst  *null.Int
	}{
		{"minExperience", &f.MinExperience},
		{"maxExperience", &f.MaxExperience},
		{"minLevel", &f.MinLevel},
		{"maxLevel", &f.MaxLevel},
	} {
		if *v.dst, err = parseInt(q, v.name); err != nil {
			return back.FilterSpec{}, err
		}
	}

	return f, nil
}

func parseInt(q url.Values, name string) (null.Int, error) {
	v := q.Get(name)
	if v == "" {
		return null.Int{}, nil
	}

	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return null.Int{}, badParam(name, err)
	}

	return null.IntFrom(i), nil
}
