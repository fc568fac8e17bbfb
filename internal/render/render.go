package render

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/kevinmichaelchen/trend-digest/internal/models"
)

// TimestampLayout is the human-readable generation time on every page.
const TimestampLayout = "2006-01-02 15:04:05"

const domainSeparator = ", "

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

type Renderer struct {
	now func() time.Time
}

func New() *Renderer {
	return &Renderer{now: time.Now}
}

// WithClock returns a copy of r that reads the time from now.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

type documentView struct {
	Content     template.HTML
	GeneratedAt string
	DomainsText string
	Domains     []string
}

// Document wraps an assembled digest body in the full page. body is
// trusted HTML produced by the assembler.
func (r *Renderer) Document(body string, domains []string) (string, error) {
	view := documentView{
		Content:     template.HTML(body),
		GeneratedAt: r.now().Format(TimestampLayout),
		DomainsText: strings.Join(domains, domainSeparator),
		Domains:     domains,
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "digest.html.tmpl", view); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return buf.String(), nil
}

type explanationView struct {
	Repo        string
	Description string
	Language    string
	Domain      string
	GeneratedAt string
	Content     template.HTML
}

// Explanation renders model output as a standalone downloadable page.
func (r *Renderer) Explanation(req models.ExplanationRequest, text string) (string, error) {
	view := explanationView{
		Repo:        req.Repo,
		Description: orDefault(req.Description, "No description provided"),
		Language:    orDefault(req.Language, "Unknown"),
		Domain:      req.Domain,
		GeneratedAt: r.now().Format(TimestampLayout),
		Content:     MarkdownLite(text),
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "explanation.html.tmpl", view); err != nil {
		return "", fmt.Errorf("rendering explanation for %s: %w", req.Repo, err)
	}
	return buf.String(), nil
}

// MarkdownLite is a best-effort reduction of model prose to HTML: lines
// starting with "### " become <h2>, "## " become <h1>, remaining line
// breaks become <br>. Everything else is escaped text.
func MarkdownLite(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var b strings.Builder
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			b.WriteString("<h2>" + html.EscapeString(strings.TrimPrefix(line, "### ")) + "</h2>")
		case strings.HasPrefix(line, "## "):
			b.WriteString("<h1>" + html.EscapeString(strings.TrimPrefix(line, "## ")) + "</h1>")
		default:
			b.WriteString(html.EscapeString(line))
			if i < len(lines)-1 {
				b.WriteString("<br>")
			}
		}
	}
	return template.HTML(b.String())
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
