package services

import (
	"regexp"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// slugTokenLength is the length of the random suffix appended to every slug.
// Six characters of the nanoid alphabet keep the link short while making two
// projects with the same title collide with negligible probability.
const slugTokenLength = 6

var whitespaceRun = regexp.MustCompile(`\s+`)

// GenerateSlug derives a public URL-safe slug from a project title:
// lowercase, whitespace collapsed to hyphens, plus a random token.
func GenerateSlug(title string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(title))
	base = whitespaceRun.ReplaceAllString(base, "-")

	token, err := gonanoid.New(slugTokenLength)
	if err != nil {
		return "", err
	}
	return base + "-" + token, nil
}
