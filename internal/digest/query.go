package digest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"otoran/internal/domain"
)

// ServiceZone is the fixed offset every digest day is computed in
var ServiceZone = time.FixedZone("JST", 9*60*60)

// LikeSortCutover is the first day the search API can sort by likes. Earlier
// days are sorted by mylists because the like counter did not exist yet.
var LikeSortCutover = time.Date(2020, time.July, 27, 0, 0, 0, 0, ServiceZone)

const (
	SortByLike     = "-likeCounter"
	SortByMylist   = "-mylistCounter"
	DefaultTargets = "tagsExact"
	PageLimit      = 100

	day        = 24 * time.Hour
	pathLayout = "2006/01/02"
	isoLayout  = "2006-01-02T15:04:05.000Z07:00"
)

// Fields is the field list requested from the search API
var Fields = []string{
	"contentId",
	"title",
	"thumbnailUrl",
	"tags",
	"viewCounter",
	"commentCounter",
	"mylistCounter",
	"likeCounter",
	"genre",
	"userId",
	"channelId",
	"startTime",
	"lengthSeconds",
}

// Query holds the search API parameters for one digest
type Query struct {
	Q        string
	Targets  string
	Sort     string
	Fields   []string
	StartGTE time.Time
	StartLT  time.Time
	Limit    int
}

// Values encodes the query as search API URL parameters
func (q Query) Values() url.Values {
	params := url.Values{}
	params.Set("q", q.Q)
	params.Set("targets", q.Targets)
	params.Set("_sort", q.Sort)
	params.Set("fields", strings.Join(q.Fields, ","))
	params.Set("filters[startTime][gte]", formatISO(q.StartGTE))
	params.Set("filters[startTime][lt]", formatISO(q.StartLT))
	params.Set("_limit", strconv.Itoa(q.Limit))
	return params
}

// Plan is a resolved digest request
type Plan struct {
	Collection    domain.Collection
	Day           time.Time
	CanonicalPath string
	Query         Query
}

// End returns the exclusive end of the day window
func (p *Plan) End() time.Time {
	return p.Day.Add(day)
}

// PrevPath returns the canonical path of the previous day
func (p *Plan) PrevPath() string {
	return CanonicalPath(p.Collection.Word, p.Day.Add(-day))
}

// NextPath returns the canonical path of the next day
func (p *Plan) NextPath() string {
	return CanonicalPath(p.Collection.Word, p.Day.Add(day))
}

// Build resolves a digest request. Date components overflow into the next
// larger unit the same way time.Date does, so month 13 is January of the next
// year. Callers compare the request path against Plan.CanonicalPath and
// redirect when they differ.
func (c Collections) Build(word, year, month, dayOfMonth string) (*Plan, error) {
	collection, ok := c.Lookup(word)
	if !ok {
		return nil, ErrUnknownCollection
	}

	start, err := ParseDay(year, month, dayOfMonth)
	if err != nil {
		return nil, err
	}

	targets := DefaultTargets
	if collection.Targets != "" {
		targets = collection.Targets
	}

	return &Plan{
		Collection:    collection,
		Day:           start,
		CanonicalPath: CanonicalPath(collection.Word, start),
		Query: Query{
			Q:        collection.Query,
			Targets:  targets,
			Sort:     SortKey(start),
			Fields:   Fields,
			StartGTE: start,
			StartLT:  start.Add(day),
			Limit:    PageLimit,
		},
	}, nil
}

// ParseDay returns local midnight of the given date in ServiceZone
func ParseDay(year, month, dayOfMonth string) (time.Time, error) {
	y, err := parseComponent("year", year)
	if err != nil {
		return time.Time{}, err
	}
	m, err := parseComponent("month", month)
	if err != nil {
		return time.Time{}, err
	}
	d, err := parseComponent("day", dayOfMonth)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, ServiceZone), nil
}

// SortKey returns the search API sort key for a day
func SortKey(start time.Time) string {
	if start.Before(LikeSortCutover) {
		return SortByMylist
	}
	return SortByLike
}

// CanonicalPath returns the zero-padded path of a digest
func CanonicalPath(word string, start time.Time) string {
	return fmt.Sprintf("/daily/%s/%s", word, start.In(ServiceZone).Format(pathLayout))
}

// Today returns local midnight of the day containing t
func Today(t time.Time) time.Time {
	t = t.In(ServiceZone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ServiceZone)
}

func parseComponent(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, MalformedDateError{Field: field, Value: value}
	}
	return n, nil
}

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
