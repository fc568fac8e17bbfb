package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kevinmichaelchen/trend-digest/internal/config"
	"github.com/kevinmichaelchen/trend-digest/internal/digest"
	"github.com/kevinmichaelchen/trend-digest/internal/format"
	"github.com/kevinmichaelchen/trend-digest/internal/github"
	"github.com/kevinmichaelchen/trend-digest/internal/history"
	"github.com/kevinmichaelchen/trend-digest/internal/llm"
	"github.com/kevinmichaelchen/trend-digest/internal/logging"
	"github.com/kevinmichaelchen/trend-digest/internal/mcp"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
	"github.com/kevinmichaelchen/trend-digest/internal/render"
	"github.com/kevinmichaelchen/trend-digest/internal/server"
	"github.com/kevinmichaelchen/trend-digest/internal/surrealdb"
	"github.com/spf13/cobra"
)

var version = "dev"

// fileStamp names generated digests, e.g. 2610181530.html.
const fileStamp = "0601021504"

func main() {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "trend-digest",
		Short:         "Digest of trending GitHub repositories with AI explanations",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
		},
	}

	loadCfg := func() *config.Config { return cfg }

	root.AddCommand(
		generateCmd(loadCfg),
		explainCmd(loadCfg),
		serveCmd(loadCfg),
		mcpCmd(loadCfg),
		historyCmd(loadCfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newGenerator(cfg *config.Config) *digest.Generator {
	gh := github.NewClient(cfg.GitHubToken)
	assembler := digest.NewAssembler(gh, format.New(format.TemplateNarrator{}))
	return digest.NewGenerator(assembler, render.New())
}

func newExplainer(cfg *config.Config) *llm.Client {
	return llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
}

func requireAPIKey(cfg *config.Config) error {
	if cfg.LLMAPIKey == "" {
		return fmt.Errorf("%w: set LLM_API_KEY (or DEEPSEEK_API_KEY)", llm.ErrMissingAPIKey)
	}
	return nil
}

// openStore picks SurrealDB when SURREAL_URL is set and the local JSON
// file otherwise.
func openStore(ctx context.Context, cfg *config.Config) (history.Store, func(), error) {
	if cfg.SurrealURL == "" {
		return history.NewFileStore(cfg.HistoryPath), func() {}, nil
	}

	db, err := surrealdb.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close(ctx)
		return nil, nil, err
	}
	return db, func() { _ = db.Close(ctx) }, nil
}

func generateCmd(loadCfg func() *config.Config) *cobra.Command {
	var (
		optionsPath string
		domains     string
		prompt      string
		days        int
		dateRange   string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an HTML digest of trending repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadCfg()
			if err := requireAPIKey(cfg); err != nil {
				return err
			}

			opts, err := config.LoadOptions(optionsPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("domains") {
				opts.Domains = config.SplitDomains(domains)
			}
			if flags.Changed("prompt") {
				opts.Prompt = prompt
			}
			if flags.Changed("days") {
				opts.Days = days
			}
			if flags.Changed("date-range") {
				opts.DateRange = dateRange
			}

			req, err := digest.NewRequestFromList(opts.Domains, opts.Prompt, opts.Days, opts.DateRange, digest.Strict)
			if err != nil {
				return err
			}

			res, err := newGenerator(cfg).Generate(ctx, req)
			if err != nil {
				return err
			}

			now := time.Now()
			path := filepath.Join(outDir, now.Format(fileStamp)+".html")
			if err := os.WriteFile(path, []byte(res.HTML), 0o644); err != nil {
				return fmt.Errorf("writing digest: %w", err)
			}
			fmt.Printf("Digest written to %s\n", path)

			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer closeStore()
			if err := store.Save(ctx, history.NewRecord(res.HTML, req.Domains, req.Prompt, now)); err != nil {
				return fmt.Errorf("saving history: %w", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&optionsPath, "config", "c", "", "Options file (YAML or JSON); defaults to ./"+config.DefaultOptionsFile+" if present")
	f.StringVarP(&domains, "domains", "d", "", "Comma-separated domains, e.g. \"AI,Rust\"")
	f.StringVarP(&prompt, "prompt", "p", "", "Free-form note stored with the digest")
	f.IntVarP(&days, "days", "D", models.DefaultDays, "Look-back window in days: 3, 7 or 30")
	f.StringVarP(&dateRange, "date-range", "r", "", "Creation date range YYYY-MM-DD..YYYY-MM-DD; overrides --days")
	f.StringVar(&outDir, "out-dir", ".", "Directory for the generated HTML file")
	return cmd
}

func explainCmd(loadCfg func() *config.Config) *cobra.Command {
	var description, language, domain, out string

	cmd := &cobra.Command{
		Use:   "explain REPO",
		Short: "Ask the language model to explain one repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadCfg()
			if err := requireAPIKey(cfg); err != nil {
				return err
			}

			req := models.ExplanationRequest{
				Repo:        args[0],
				Description: description,
				Language:    language,
				Domain:      domain,
			}
			text, err := newExplainer(cfg).Explain(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(text)

			if out == "" {
				return nil
			}
			page, err := render.New().Explanation(req, text)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
				return fmt.Errorf("writing explanation: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Explanation page written to %s\n", out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&description, "description", "", "Repository description")
	f.StringVar(&language, "language", "", "Primary language")
	f.StringVar(&domain, "domain", "", "Domain the repository belongs to")
	f.StringVar(&out, "out", "", "Also write a standalone HTML page to this path")
	return cmd
}

func serveCmd(loadCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadCfg()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(newGenerator(cfg), newExplainer(cfg), render.New(), server.Options{
				StaticDir: cfg.StaticDir,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx, ":"+cfg.Port)
		},
	}
}

func mcpCmd(loadCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve digest tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadCfg()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mcp.NewServer(version, newGenerator(cfg), newExplainer(cfg), render.New())
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
