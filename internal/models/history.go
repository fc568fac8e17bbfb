package models

import "time"

// HistoryRecord is a snapshot of one generated digest kept on the
// client side.
type HistoryRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Domains   []string  `json:"domains"`
	Prompt    string    `json:"prompt"`
	HTML      string    `json:"html"`
}
