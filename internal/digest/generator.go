package digest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kevinmichaelchen/trend-digest/internal/logging"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
)

// Renderer wraps a digest body in a full page.
type Renderer interface {
	Document(body string, domains []string) (string, error)
}

// Result is one finished generation.
type Result struct {
	Digest *models.Digest
	HTML   string
}

// Generator runs assembly then rendering for a validated Request.
type Generator struct {
	assembler *Assembler
	renderer  Renderer
	logger    *slog.Logger
}

func NewGenerator(a *Assembler, r Renderer) *Generator {
	return &Generator{assembler: a, renderer: r, logger: logging.New("digest")}
}

func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	g.logger.Info("generating digest", "domains", req.Domains, "days", req.Window.Days, "date_range", req.Window.Range)

	d, body, err := g.assembler.Assemble(ctx, req.Domains, req.Window)
	if err != nil {
		return nil, err
	}

	page, err := g.renderer.Document(body, req.Domains)
	if err != nil {
		return nil, fmt.Errorf("rendering digest: %w", err)
	}

	g.logger.Info("digest generated", "sections", len(d.Sections)+1, "bytes", len(page))
	return &Result{Digest: d, HTML: page}, nil
}
