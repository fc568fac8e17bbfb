package format

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/kevinmichaelchen/trend-digest/internal/models"
	"github.com/montanaflynn/stats"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// Formatter turns repos into HTML article fragments.
type Formatter struct {
	narrator Narrator
}

// New returns a Formatter using n for the narrative text, or the
// TemplateNarrator when n is nil.
func New(n Narrator) *Formatter {
	if n == nil {
		n = TemplateNarrator{}
	}
	return &Formatter{narrator: n}
}

type articleView struct {
	ID             int64
	Name           string
	FullName       string
	URL            string
	Summary        string
	Description    string
	Language       string
	Stars          int
	Forks          int
	Created        string
	Updated        string
	Recommendation string
	Detail         string
	Domain         string
}

// Format renders one repo card. It does no I/O.
func (f *Formatter) Format(repo models.Repo, domain string) (string, error) {
	view := articleView{
		ID:             repo.ID,
		Name:           repo.Name,
		FullName:       repo.FullName,
		URL:            repo.URL,
		Summary:        Summary(repo.Description),
		Language:       LanguageOrDefault(repo.Language),
		Stars:          repo.Stars,
		Forks:          repo.Forks,
		Created:        repo.CreatedAt.Format(models.DateLayout),
		Updated:        repo.UpdatedAt.Format(models.DateLayout),
		Recommendation: Clip(f.narrator.Recommendation(repo, domain), recommendationLimit),
		Detail:         f.narrator.Detail(repo, domain),
		Domain:         domain,
	}
	if repo.Description != nil {
		view.Description = *repo.Description
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "article.html.tmpl", view); err != nil {
		return "", fmt.Errorf("formatting %s: %w", repo.FullName, err)
	}
	return buf.String(), nil
}

type summaryView struct {
	DomainList  string
	RepoCount   int
	TotalStars  int
	MedianStars int
	MaxStars    int
}

// Summary renders the closing narrative for a digest over domains. repos
// are every repo shown in the digest and feed the star figures.
func (f *Formatter) Summary(domains []string, repos []models.Repo) (string, error) {
	view := summaryView{
		DomainList: strings.Join(domains, ", "),
		RepoCount:  len(repos),
	}

	if len(repos) > 0 {
		data := make(stats.Float64Data, 0, len(repos))
		for _, r := range repos {
			data = append(data, float64(r.Stars))
		}
		total, err := data.Sum()
		if err != nil {
			return "", fmt.Errorf("summing stars: %w", err)
		}
		median, err := data.Median()
		if err != nil {
			return "", fmt.Errorf("median stars: %w", err)
		}
		maxStars, err := data.Max()
		if err != nil {
			return "", fmt.Errorf("max stars: %w", err)
		}
		view.TotalStars = int(total)
		view.MedianStars = int(median)
		view.MaxStars = int(maxStars)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "summary.html.tmpl", view); err != nil {
		return "", fmt.Errorf("formatting summary: %w", err)
	}
	return buf.String(), nil
}
