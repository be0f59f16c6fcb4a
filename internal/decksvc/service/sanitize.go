package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  = bluemonday.StrictPolicy()
	angleStripper = strings.NewReplacer("<", "", ">", "")
)

const maxSanitizePasses = 8

// sanitizeText strips all markup, including entity-encoded markup, and returns plain text.
// The result never contains angle brackets.
func sanitizeText(input string) string {
	text := input
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(text))
		if next == text {
			break
		}
		text = next
	}
	return strings.Join(strings.Fields(angleStripper.Replace(text)), " ")
}

func sanitizeName(input string) (string, error) {
	name := sanitizeText(input)
	if name == "" {
		return "", fmt.Errorf("%w: deck name is empty or unsafe", ErrInvalidInput)
	}
	return name, nil
}
