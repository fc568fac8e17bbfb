package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/kevinmichaelchen/trend-digest/internal/config"
	"github.com/kevinmichaelchen/trend-digest/internal/history"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
	sdk "github.com/surrealdb/surrealdb.go"
)

// Client is a history.Store backed by SurrealDB.
type Client struct {
	db *sdk.DB
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	db, err := sdk.FromEndpointURLString(ctx, cfg.SurrealURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, sdk.Auth{
		Namespace: cfg.SurrealNS,
		Database:  cfg.SurrealDB,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("signing in: %w", err)
	}

	if err := db.Use(ctx, cfg.SurrealNS, cfg.SurrealDB); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("selecting ns/db: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}

func (c *Client) InitSchema(ctx context.Context) error {
	schema := `
DEFINE TABLE IF NOT EXISTS history SCHEMAFULL;

DEFINE FIELD IF NOT EXISTS record_id  ON TABLE history TYPE string;
DEFINE FIELD IF NOT EXISTS created_at ON TABLE history TYPE int;
DEFINE FIELD IF NOT EXISTS domains    ON TABLE history TYPE array<string>;
DEFINE FIELD IF NOT EXISTS prompt     ON TABLE history TYPE string;
DEFINE FIELD IF NOT EXISTS html       ON TABLE history TYPE string;

DEFINE INDEX IF NOT EXISTS idx_record_id ON TABLE history FIELDS record_id UNIQUE;
`
	_, err := sdk.Query[any](ctx, c.db, schema, nil)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// historyRow is the stored shape. Times are unix milliseconds so rows
// decode without SurrealDB datetime handling.
type historyRow struct {
	RecordID  string   `json:"record_id"`
	CreatedAt int64    `json:"created_at"`
	Domains   []string `json:"domains"`
	Prompt    string   `json:"prompt"`
	HTML      string   `json:"html"`
}

func (r historyRow) record() models.HistoryRecord {
	return models.HistoryRecord{
		ID:        r.RecordID,
		CreatedAt: time.UnixMilli(r.CreatedAt),
		Domains:   r.Domains,
		Prompt:    r.Prompt,
		HTML:      r.HTML,
	}
}

const selectRows = `SELECT record_id, created_at, domains, prompt, html FROM history`

// Save upserts rec and then evicts anything past history.Limit.
func (c *Client) Save(ctx context.Context, rec models.HistoryRecord) error {
	domains := rec.Domains
	if domains == nil {
		domains = []string{}
	}
	_, err := sdk.Query[any](ctx, c.db,
		`UPSERT type::thing("history", $id) MERGE $data`,
		map[string]any{
			"id": rec.ID,
			"data": map[string]any{
				"record_id":  rec.ID,
				"created_at": rec.CreatedAt.UnixMilli(),
				"domains":    domains,
				"prompt":     rec.Prompt,
				"html":       rec.HTML,
			},
		})
	if err != nil {
		return fmt.Errorf("saving history %s: %w", rec.ID, err)
	}

	all, err := c.List(ctx)
	if err != nil {
		return err
	}
	for _, old := range all[min(len(all), history.Limit):] {
		if err := c.Delete(ctx, old.ID); err != nil {
			return fmt.Errorf("evicting history %s: %w", old.ID, err)
		}
	}
	return nil
}

func (c *Client) List(ctx context.Context) ([]models.HistoryRecord, error) {
	results, err := sdk.Query[[]historyRow](ctx, c.db,
		selectRows+` ORDER BY created_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	if len(*results) == 0 {
		return []models.HistoryRecord{}, nil
	}
	rows := (*results)[0].Result
	out := make([]models.HistoryRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*models.HistoryRecord, error) {
	results, err := sdk.Query[[]historyRow](ctx, c.db,
		selectRows+` WHERE record_id = $id`,
		map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("getting history %s: %w", id, err)
	}
	if len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("%w: %s", history.ErrNotFound, id)
	}
	rec := (*results)[0].Result[0].record()
	return &rec, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}
	_, err := sdk.Query[any](ctx, c.db,
		`DELETE type::thing("history", $id)`,
		map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("deleting history %s: %w", id, err)
	}
	return nil
}

func (c *Client) Clear(ctx context.Context) error {
	if _, err := sdk.Query[any](ctx, c.db, `DELETE history`, nil); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

var _ history.Store = (*Client)(nil)
