package markdown

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

var (
	// ![alt](url "title")
	inlineImage = regexp.MustCompile(`!\[([^\]]*)\]\(\s*<?([^)\s>]+)>?(?:\s+"([^"]*)")?\s*\)`)

	// ![alt][ref]
	referenceImage = regexp.MustCompile(`!\[([^\]]*)\]\[([^\]]+)\]`)
)

// extractCover removes the first image from body and returns it as a cover.
// Drive exports embed images either inline or as reference definitions at
// the end of the document; both forms are handled.
func extractCover(body string) (*domain.Cover, string) {
	inline := inlineImage.FindStringSubmatchIndex(body)
	ref := referenceImage.FindStringSubmatchIndex(body)

	switch {
	case inline != nil && (ref == nil || inline[0] < ref[0]):
		cover := &domain.Cover{
			Alt:   body[inline[2]:inline[3]],
			Image: body[inline[4]:inline[5]],
		}
		if inline[6] >= 0 {
			cover.Title = body[inline[6]:inline[7]]
		}
		return cover, cleanBody(body[:inline[0]] + body[inline[1]:])
	case ref != nil:
		alt := body[ref[2]:ref[3]]
		id := body[ref[4]:ref[5]]
		definition := regexp.MustCompile(`(?m)^\[` + regexp.QuoteMeta(id) + `\]:\s*<?([^\s>]+)>?.*$\n?`)
		m := definition.FindStringSubmatch(body)
		if m == nil {
			return nil, body
		}
		rest := body[:ref[0]] + body[ref[1]:]
		rest = definition.ReplaceAllString(rest, "")
		return &domain.Cover{Image: m[1], Alt: alt}, cleanBody(rest)
	default:
		return nil, body
	}
}

// cleanBody drops the blank lines left behind by a removed image.
func cleanBody(body string) string {
	body = strings.TrimLeft(body, "\n")
	for strings.Contains(body, "\n\n\n") {
		body = strings.ReplaceAll(body, "\n\n\n", "\n\n")
	}
	return body
}
