package digest

import (
	"strings"
	"testing"

	"github.com/kevinmichaelchen/trend-digest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	testCases := []struct {
		name        string
		domains     string
		days        int
		dateRange   string
		mode        DayMode
		want        Request
		expectError string
	}{
		{
			name:    "defaults days to seven",
			domains: "AI, Rust",
			mode:    Strict,
			want:    Request{Domains: []string{"AI", "Rust"}, Window: models.DateWindow{Days: 7}},
		},
		{
			name:    "keeps duplicates and order",
			domains: "Rust,AI,Rust",
			days:    30,
			mode:    Strict,
			want:    Request{Domains: []string{"Rust", "AI", "Rust"}, Window: models.DateWindow{Days: 30}},
		},
		{
			name:        "missing domains",
			domains:     " , ",
			mode:        Permissive,
			expectError: "at least one domain",
		},
		{
			name:        "strict rejects days outside the set",
			domains:     "AI",
			days:        14,
			mode:        Strict,
			expectError: "days must be one of",
		},
		{
			name:    "permissive accepts any positive days",
			domains: "AI",
			days:    14,
			mode:    Permissive,
			want:    Request{Domains: []string{"AI"}, Window: models.DateWindow{Days: 14}},
		},
		{
			name:    "permissive maps negative days to default",
			domains: "AI",
			days:    -2,
			mode:    Permissive,
			want:    Request{Domains: []string{"AI"}, Window: models.DateWindow{Days: 7}},
		},
		{
			name:      "valid explicit range",
			domains:   "AI",
			dateRange: "2026-01-01..2026-01-31",
			mode:      Strict,
			want:      Request{Domains: []string{"AI"}, Window: models.DateWindow{Days: 7, Range: "2026-01-01..2026-01-31"}},
		},
		{
			name:      "single-day range",
			domains:   "AI",
			dateRange: "2026-01-01..2026-01-01",
			mode:      Permissive,
			want:      Request{Domains: []string{"AI"}, Window: models.DateWindow{Days: 7, Range: "2026-01-01..2026-01-01"}},
		},
		{
			name:        "start after end",
			domains:     "AI",
			dateRange:   "2026-02-01..2026-01-01",
			mode:        Permissive,
			expectError: "is after end date",
		},
		{
			name:        "malformed range",
			domains:     "AI",
			dateRange:   "2026/01/01..2026/02/01",
			mode:        Permissive,
			expectError: "must look like",
		},
		{
			name:        "impossible calendar date",
			domains:     "AI",
			dateRange:   "2026-02-30..2026-03-01",
			mode:        Permissive,
			expectError: "start date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewRequest(tc.domains, "", tc.days, tc.dateRange, tc.mode)
			if tc.expectError != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewRequest_TruncatesPrompt(t *testing.T) {
	long := strings.Repeat("p", 600)

	got, err := NewRequest("AI", long, 7, "", Strict)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("p", 500)+"...", got.Prompt)

	got, err = NewRequest("AI", "short", 7, "", Strict)
	require.NoError(t, err)
	assert.Equal(t, "short", got.Prompt)
}
