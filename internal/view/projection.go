// Package view derives the filtered, sorted projection of the candidate
// collection that the table displays.
//
// Text columns order by Brazilian Portuguese collation with case ignored, not
// by byte value: "ana" sorts before "Zeca" and "Ágata" sorts with the A's.
// Registration dates order chronologically. Ties keep insertion order.
package view

import (
	"net/url"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/talentdesk/candidate-tracker/internal/domain"
)

// SortField names a sortable column.
type SortField string

const (
	SortNone             SortField = ""
	SortName             SortField = "name"
	SortEmail            SortField = "email"
	SortPhone            SortField = "phone"
	SortArea             SortField = "area"
	SortStatus           SortField = "status"
	SortRegistrationDate SortField = "registrationDate"
)

// SortFields lists the columns a user can sort by.
var SortFields = []SortField{SortName, SortEmail, SortPhone, SortArea, SortStatus, SortRegistrationDate}

// Valid reports whether f is a known column or SortNone.
func (f SortField) Valid() bool {
	return f == SortNone || slices.Contains(SortFields, f)
}

// SortDirection orders the projection.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterAll disables the area or status filter.
const FilterAll = "all"

// State is the table's search, filter and sort selection.
type State struct {
	Search    string
	Area      string
	Status    string
	SortField SortField
	SortDir   SortDirection
}

// ToggleSort flips the direction when field is already active, otherwise sorts ascending by field.
func ToggleSort(s State, field SortField) State {
	if s.SortField == field && field != SortNone {
		if s.SortDir == SortDesc {
			s.SortDir = SortAsc
		} else {
			s.SortDir = SortDesc
		}
		return s
	}
	s.SortField = field
	s.SortDir = SortAsc
	return s
}

// ParseState reads q, area, status, sort and dir from query values.
// Unknown sort fields and directions fall back to defaults.
func ParseState(values url.Values) State {
	lv := NewListView()
	lv.SetSearch(strings.TrimSpace(values.Get("q")))
	if area := values.Get("area"); area != "" {
		lv.SetArea(area)
	}
	if status := values.Get("status"); status != "" {
		lv.SetStatus(status)
	}
	if f := SortField(values.Get("sort")); f.Valid() && f != SortNone {
		lv.ToggleSort(f)
		if SortDirection(values.Get("dir")) == SortDesc {
			lv.ToggleSort(f)
		}
	}
	return lv.State()
}

// Query encodes s back into query values, omitting defaults.
func (s State) Query() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set("q", s.Search)
	}
	if !isAll(s.Area) {
		v.Set("area", s.Area)
	}
	if !isAll(s.Status) {
		v.Set("status", s.Status)
	}
	if s.SortField != SortNone {
		v.Set("sort", string(s.SortField))
		dir := s.SortDir
		if dir == "" {
			dir = SortAsc
		}
		v.Set("dir", string(dir))
	}
	return v
}

// Key is a stable encoding of s, suitable for cache keys.
func (s State) Key() string {
	return s.Query().Encode()
}

// Project filters and orders records according to s. The input is not modified.
func Project(records []domain.Candidate, s State) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(records))
	for _, r := range records {
		if matches(r, s) {
			out = append(out, r)
		}
	}
	if s.SortField == SortNone {
		return out
	}

	cmp := comparator(s.SortField)
	desc := s.SortDir == SortDesc
	slices.SortStableFunc(out, func(a, b domain.Candidate) int {
		c := cmp(a, b)
		if desc {
			return -c
		}
		return c
	})
	return out
}

func matches(r domain.Candidate, s State) bool {
	if !isAll(s.Area) && string(r.Area) != s.Area {
		return false
	}
	if !isAll(s.Status) && string(r.Status) != s.Status {
		return false
	}
	return matchesSearch(r, s.Search)
}

func matchesSearch(r domain.Candidate, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Email), q) {
		return true
	}
	if strings.Contains(r.Phone, query) {
		return true
	}
	digits := digitsOnly(query)
	return digits != "" && strings.Contains(digitsOnly(r.Phone), digits)
}

func comparator(field SortField) func(a, b domain.Candidate) int {
	if field == SortRegistrationDate {
		return func(a, b domain.Candidate) int {
			return a.RegistrationDate.Compare(b.RegistrationDate)
		}
	}
	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	key := textKey(field)
	return func(a, b domain.Candidate) int {
		return col.CompareString(key(a), key(b))
	}
}

func textKey(field SortField) func(domain.Candidate) string {
	switch field {
	case SortEmail:
		return func(c domain.Candidate) string { return c.Email }
	case SortPhone:
		return func(c domain.Candidate) string { return c.Phone }
	case SortArea:
		return func(c domain.Candidate) string { return string(c.Area) }
	case SortStatus:
		return func(c domain.Candidate) string { return string(c.Status) }
	default:
		return func(c domain.Candidate) string { return c.Name }
	}
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
