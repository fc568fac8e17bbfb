package digest

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/kevinmichaelchen/trend-digest/internal/logging"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
)

// SummaryLabel heads the closing section of every digest.
const SummaryLabel = "Summary"

// Searcher finds trending repos for a search term. Implementations absorb
// their own failures and return an empty slice instead.
type Searcher interface {
	Trending(ctx context.Context, term string, window models.DateWindow) []models.Repo
}

// Formatter renders repo cards and the closing narrative.
type Formatter interface {
	Format(repo models.Repo, domain string) (string, error)
	Summary(domains []string, repos []models.Repo) (string, error)
}

// Assembler turns a domain list into an ordered digest body: one section
// per domain in input order, an optional combined section, then the
// closing summary. Searches run one after another.
type Assembler struct {
	searcher  Searcher
	formatter Formatter
	logger    *slog.Logger
}

func NewAssembler(s Searcher, f Formatter) *Assembler {
	return &Assembler{searcher: s, formatter: f, logger: logging.New("digest")}
}

// Assemble builds the digest and its HTML body. Search failures only
// empty their own section; formatter errors abort the whole digest.
func (a *Assembler) Assemble(ctx context.Context, domains []string, window models.DateWindow) (*models.Digest, string, error) {
	d := &models.Digest{Domains: domains}
	var body strings.Builder

	for _, domain := range domains {
		a.logger.Info("collecting domain", "domain", domain)
		repos := a.searcher.Trending(ctx, domain, window)
		a.logger.Info("domain collected", "domain", domain, "count", len(repos))

		section := models.Section{Label: domain, Repos: repos}
		frag, err := a.section(section)
		if err != nil {
			return nil, "", err
		}
		d.Sections = append(d.Sections, section)
		body.WriteString(frag)
	}

	if len(domains) > 1 {
		label := strings.Join(domains, "+")
		a.logger.Info("collecting combined domains", "label", label)
		repos := a.searcher.Trending(ctx, strings.Join(domains, " "), window)
		a.logger.Info("combined domains collected", "label", label, "count", len(repos))

		if len(repos) > 0 {
			section := models.Section{Label: label, Repos: repos, Combined: true}
			frag, err := a.section(section)
			if err != nil {
				return nil, "", err
			}
			d.Sections = append(d.Sections, section)
			body.WriteString(frag)
		}
	}

	summary, err := a.formatter.Summary(domains, d.AllRepos())
	if err != nil {
		return nil, "", fmt.Errorf("assembling summary: %w", err)
	}
	d.Summary = summary
	body.WriteString(wrapSection(SummaryLabel, summary))

	return d, body.String(), nil
}

func (a *Assembler) section(s models.Section) (string, error) {
	var inner strings.Builder
	for _, repo := range s.Repos {
		frag, err := a.formatter.Format(repo, s.Label)
		if err != nil {
			return "", fmt.Errorf("assembling section %s: %w", s.Label, err)
		}
		inner.WriteString(frag)
	}
	return wrapSection(s.Label, inner.String()), nil
}

func wrapSection(label, inner string) string {
	return "<section>\n<h2>" + html.EscapeString(label) + "</h2>\n" + inner + "</section>\n"
}
