package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		base  string
	}{
		{name: "simple title", title: "My Site", base: "my-site"},
		{name: "already lowercase", title: "portfolio", base: "portfolio"},
		{name: "mixed case and runs of spaces", title: "Acme   Corp  Redesign", base: "acme-corp-redesign"},
		{name: "leading and trailing whitespace", title: "  Landing Page ", base: "landing-page"},
		{name: "tabs and newlines", title: "a\tb\nc", base: "a-b-c"},
	}

	pattern := regexp.MustCompile(`-[a-zA-Z0-9_-]{6}$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, err := GenerateSlug(tt.title)
			require.NoError(t, err)
			assert.Regexp(t, "^"+regexp.QuoteMeta(tt.base)+"-", slug)
			assert.Regexp(t, pattern, slug)
			assert.Len(t, slug, len(tt.base)+1+slugTokenLength)
		})
	}
}

func TestGenerateSlugUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		slug, err := GenerateSlug("My Site")
		require.NoError(t, err)
		assert.False(t, seen[slug], "duplicate slug %s", slug)
		seen[slug] = true
	}
}
