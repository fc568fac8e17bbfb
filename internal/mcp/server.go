// Package mcp exposes digest generation and repository explanations as
// Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kevinmichaelchen/trend-digest/internal/digest"
	"github.com/kevinmichaelchen/trend-digest/internal/logging"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
)

type Generator interface {
	Generate(ctx context.Context, req digest.Request) (*digest.Result, error)
}

type Explainer interface {
	Explain(ctx context.Context, req models.ExplanationRequest) (string, error)
}

type ExplanationRenderer interface {
	Explanation(req models.ExplanationRequest, text string) (string, error)
}

type Server struct {
	MCPServer *sdkmcp.Server

	generator Generator
	explainer Explainer
	renderer  ExplanationRenderer
	log       *slog.Logger
}

func NewServer(version string, g Generator, e Explainer, r ExplanationRenderer) *Server {
	s := &Server{
		MCPServer: sdkmcp.NewServer(&sdkmcp.Implementation{Name: "trend-digest", Version: version}, nil),
		generator: g,
		explainer: e,
		renderer:  r,
		log:       logging.New("mcp"),
	}
	s.registerTools()
	return s
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "generate_digest",
		Description: "Build an HTML digest of the most-starred GitHub repositories created recently in each domain.",
	}, s.handleGenerateDigest)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "explain_repository",
		Description: "Ask the configured language model for a long-form explanation of one repository.",
	}, s.handleExplainRepository)
}

type generateDigestInput struct {
	Domains   []string `json:"domains" jsonschema:"technology domains to search, e.g. AI or Rust"`
	Days      int      `json:"days,omitempty" jsonschema:"look-back window in days: 3, 7 or 30 (default 7)"`
	DateRange string   `json:"date_range,omitempty" jsonschema:"explicit creation range YYYY-MM-DD..YYYY-MM-DD; overrides days"`
	Prompt    string   `json:"prompt,omitempty" jsonschema:"free-form note recorded with the digest"`
}

type generateDigestOutput struct {
	HTML string `json:"html"`
}

type explainRepositoryInput struct {
	Repo        string `json:"repo" jsonschema:"repository full name, owner/name"`
	Description string `json:"description,omitempty" jsonschema:"repository description"`
	Language    string `json:"language,omitempty" jsonschema:"primary language"`
	Domain      string `json:"domain" jsonschema:"domain the repository was found under"`
}

type explainRepositoryOutput struct {
	Explanation string `json:"explanation"`
	HTML        string `json:"html"`
}

func (s *Server) handleGenerateDigest(ctx context.Context, _ *sdkmcp.CallToolRequest, input generateDigestInput) (*sdkmcp.CallToolResult, generateDigestOutput, error) {
	req, err := digest.NewRequestFromList(input.Domains, input.Prompt, input.Days, input.DateRange, digest.Strict)
	if err != nil {
		return nil, generateDigestOutput{}, err
	}

	res, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.log.Error("generation failed", "domains", req.Domains, "error", err)
		return nil, generateDigestOutput{}, fmt.Errorf("generating digest: %w", err)
	}
	return nil, generateDigestOutput{HTML: res.HTML}, nil
}

func (s *Server) handleExplainRepository(ctx context.Context, _ *sdkmcp.CallToolRequest, input explainRepositoryInput) (*sdkmcp.CallToolResult, explainRepositoryOutput, error) {
	if input.Repo == "" {
		return nil, explainRepositoryOutput{}, fmt.Errorf("%w: repo is required", digest.ErrValidation)
	}

	req := models.ExplanationRequest(input)
	text, err := s.explainer.Explain(ctx, req)
	if err != nil {
		s.log.Error("explanation failed", "repo", req.Repo, "error", err)
		return nil, explainRepositoryOutput{}, err
	}

	page, err := s.renderer.Explanation(req, text)
	if err != nil {
		return nil, explainRepositoryOutput{}, fmt.Errorf("rendering explanation: %w", err)
	}
	return nil, explainRepositoryOutput{Explanation: text, HTML: page}, nil
}
