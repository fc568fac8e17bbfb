// Package history keeps the most recent generated digests on the client.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
)

// Limit is how many records a store keeps. Saving past it evicts the
// oldest.
const Limit = 6

var ErrNotFound = errors.New("history record not found")

// Store persists history records newest first.
type Store interface {
	Save(ctx context.Context, rec models.HistoryRecord) error
	List(ctx context.Context) ([]models.HistoryRecord, error)
	Get(ctx context.Context, id string) (*models.HistoryRecord, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// NewRecord stamps a snapshot of one digest with a fresh id and time.
func NewRecord(html string, domains []string, prompt string, now time.Time) models.HistoryRecord {
	return models.HistoryRecord{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Domains:   domains,
		Prompt:    prompt,
		HTML:      html,
	}
}

// push prepends rec and drops whatever falls past Limit.
func push(records []models.HistoryRecord, rec models.HistoryRecord) []models.HistoryRecord {
	out := make([]models.HistoryRecord, 0, len(records)+1)
	out = append(out, rec)
	out = append(out, records...)
	if len(out) > Limit {
		out = out[:Limit]
	}
	return out
}

func find(records []models.HistoryRecord, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// PromptPreview shortens a prompt for list views.
func PromptPreview(prompt string) string {
	r := []rune(prompt)
	if len(r) <= 50 {
		return prompt
	}
	return string(r[:50]) + "..."
}
