package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle trims surrounding whitespace and applies NFC so the same
// title typed on different keyboards is stored identically.
func NormalizeTitle(title string) (string, error) {
	normalized := norm.NFC.String(strings.TrimSpace(title))
	if normalized == "" {
		return "", &ValidationError{
			Code:    CodeEmptyTitle,
			Message: "title must not be empty",
			Input:   title,
		}
	}
	return normalized, nil
}
