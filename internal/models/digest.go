package models

import (
	"fmt"
	"time"
)

// DefaultDays is the relative window used when a request names none.
const DefaultDays = 7

// DateLayout is the calendar format GitHub search qualifiers accept.
const DateLayout = "2006-01-02"

// DateWindow bounds repository creation dates. A non-empty Range
// (YYYY-MM-DD..YYYY-MM-DD) wins over Days.
type DateWindow struct {
	Days  int    `json:"days,omitempty"`
	Range string `json:"date_range,omitempty"`
}

// Qualifier returns the search qualifier for the window relative to now.
func (w DateWindow) Qualifier(now time.Time) string {
	if w.Range != "" {
		return "created:" + w.Range
	}
	days := w.Days
	if days <= 0 {
		days = DefaultDays
	}
	since := now.UTC().AddDate(0, 0, -days)
	return fmt.Sprintf("created:>%s", since.Format(DateLayout))
}

// Section pairs a label with the repos fetched for it.
type Section struct {
	Label    string `json:"label"`
	Repos    []Repo `json:"repos"`
	Combined bool   `json:"combined,omitempty"`
}

// Digest is the assembled result of one generation request. The closing
// summary is not a Section; it carries no repos.
type Digest struct {
	Domains  []string  `json:"domains"`
	Sections []Section `json:"sections"`
	Summary  string    `json:"summary"`
}

// AllRepos flattens every section's repos in digest order.
func (d *Digest) AllRepos() []Repo {
	var out []Repo
	for _, s := range d.Sections {
		out = append(out, s.Repos...)
	}
	return out
}
