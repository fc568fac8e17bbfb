package format

import (
	"fmt"

	"github.com/kevinmichaelchen/trend-digest/internal/models"
)

const (
	summaryLimit        = 35
	recommendationLimit = 50

	noDescription   = "No description provided"
	unknownLanguage = "Unknown"
	ellipsis        = "..."
)

// Narrator writes the prose that accompanies a repo card. The default is
// plain template text; a real summarizer can be swapped in without
// touching the assembler.
type Narrator interface {
	Detail(repo models.Repo, domain string) string
	Recommendation(repo models.Repo, domain string) string
}

// TemplateNarrator fills fixed sentences with the repo's fields.
type TemplateNarrator struct{}

func (TemplateNarrator) Detail(repo models.Repo, domain string) string {
	focus := "practical open-source tooling"
	if repo.Description != nil && *repo.Description != "" {
		focus = *repo.Description
	}
	return fmt.Sprintf(
		"%s is a trending %s repository focused on %s. It was created on %s and last updated on %s. "+
			"Written primarily in %s, it has %d stars and %d forks so far. "+
			"Reading through its code and docs is a quick way to see where %s is heading. Source: %s",
		repo.FullName, domain, focus,
		repo.CreatedAt.Format(models.DateLayout), repo.UpdatedAt.Format(models.DateLayout),
		LanguageOrDefault(repo.Language), repo.Stars, repo.Forks,
		domain, repo.URL,
	)
}

func (TemplateNarrator) Recommendation(repo models.Repo, domain string) string {
	return fmt.Sprintf("A notable %s project that is worth a look for anyone following the space.", domain)
}

// Truncate cuts s to limit runes, appending an ellipsis when it cut.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + ellipsis
}

// Clip cuts s to limit runes without a marker.
func Clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// Summary is the short card blurb derived from the description.
func Summary(description *string) string {
	if description == nil || *description == "" {
		return noDescription
	}
	return Truncate(*description, summaryLimit)
}

func LanguageOrDefault(language *string) string {
	if language == nil || *language == "" {
		return unknownLanguage
	}
	return *language
}
