package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateWindow_Qualifier(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		window DateWindow
		want   string
	}{
		{name: "relative days", window: DateWindow{Days: 7}, want: "created:>2026-10-11"},
		{name: "three days", window: DateWindow{Days: 3}, want: "created:>2026-10-15"},
		{name: "zero days falls back to default", window: DateWindow{}, want: "created:>2026-10-11"},
		{name: "explicit range wins", window: DateWindow{Days: 30, Range: "2026-01-01..2026-01-31"}, want: "created:2026-01-01..2026-01-31"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.window.Qualifier(now))
		})
	}
}

func TestDigest_AllRepos(t *testing.T) {
	d := &Digest{Sections: []Section{
		{Label: "AI", Repos: []Repo{{FullName: "a/one"}}},
		{Label: "Rust"},
		{Label: "AI+Rust", Combined: true, Repos: []Repo{{FullName: "b/two"}, {FullName: "c/three"}}},
	}}

	var names []string
	for _, r := range d.AllRepos() {
		names = append(names, r.FullName)
	}
	assert.Equal(t, []string{"a/one", "b/two", "c/three"}, names)
}
