package digest

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/kevinmichaelchen/trend-digest/internal/config"
	"github.com/kevinmichaelchen/trend-digest/internal/format"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
)

// ErrValidation marks request errors caught before any outbound call.
var ErrValidation = errors.New("invalid request")

// DayMode selects how the day count is checked. The CLI only offers a
// fixed set of windows; the HTTP API accepts any integer.
type DayMode int

const (
	Permissive DayMode = iota
	Strict
)

// AllowedDays are the windows the CLI accepts.
var AllowedDays = []int{3, 7, 30}

const promptLimit = 500

var dateRangePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.\.\d{4}-\d{2}-\d{2}$`)

// Request is a validated generation request.
type Request struct {
	Domains []string
	Prompt  string
	Window  models.DateWindow
}

// NewRequest validates raw input. domains is split on commas.
func NewRequest(domains, prompt string, days int, dateRange string, mode DayMode) (Request, error) {
	return NewRequestFromList(config.SplitDomains(domains), prompt, days, dateRange, mode)
}

// NewRequestFromList validates input whose domains are already split.
// Blank entries are dropped; order and duplicates are kept.
func NewRequestFromList(domains []string, prompt string, days int, dateRange string, mode DayMode) (Request, error) {
	var cleaned []string
	for _, d := range domains {
		if d = strings.TrimSpace(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}
	if len(cleaned) == 0 {
		return Request{}, fmt.Errorf("%w: at least one domain is required", ErrValidation)
	}

	switch {
	case mode == Strict && days != 0 && !slices.Contains(AllowedDays, days):
		return Request{}, fmt.Errorf("%w: days must be one of 3, 7 or 30, got %d", ErrValidation, days)
	case days <= 0:
		days = models.DefaultDays
	}

	dateRange = strings.TrimSpace(dateRange)
	if dateRange != "" {
		if err := validateDateRange(dateRange); err != nil {
			return Request{}, err
		}
	}

	if prompt != "" {
		prompt = format.Truncate(prompt, promptLimit)
	}

	return Request{
		Domains: cleaned,
		Prompt:  prompt,
		Window:  models.DateWindow{Days: days, Range: dateRange},
	}, nil
}

func validateDateRange(r string) error {
	if !dateRangePattern.MatchString(r) {
		return fmt.Errorf("%w: date range must look like YYYY-MM-DD..YYYY-MM-DD, got %q", ErrValidation, r)
	}
	startStr, endStr, _ := strings.Cut(r, "..")
	start, err := time.Parse(models.DateLayout, startStr)
	if err != nil {
		return fmt.Errorf("%w: start date %q: %w", ErrValidation, startStr, err)
	}
	end, err := time.Parse(models.DateLayout, endStr)
	if err != nil {
		return fmt.Errorf("%w: end date %q: %w", ErrValidation, endStr, err)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrValidation, startStr, endStr)
	}
	return nil
}
