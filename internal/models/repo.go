package models

import "time"

// Repo is one repository returned by the GitHub search API.
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	Language    *string   `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ExplanationRequest struct {
	Repo        string `json:"repo"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Domain      string `json:"domain"`
}
