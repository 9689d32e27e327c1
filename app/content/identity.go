package content

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFC normalization and collapses whitespace.
// Feed and wiki text arrives in mixed composition forms; identities
// derived from it must not depend on which form a source happened to use.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// ArticleIdentity derives a dedup identity for a news article from its
// entry ID, falling back to the link when the feed provides no ID.
func ArticleIdentity(entryID, link string) string {
	if entryID != "" {
		return entryID
	}
	return link
}

// EventIdentity derives a dedup identity for a historical event from its
// immutable fields: event type, year and a text prefix.
func EventIdentity(eventType string, year int, text string) string {
	t := []rune(Normalize(text))
	if len(t) > 50 {
		t = t[:50]
	}
	return fmt.Sprintf("%s_%d_%s", eventType, year, string(t))
}

// ChangeIdentity derives a dedup identity for a follow/unfollow change.
// The structural (kind, subject, object) triple is the key; timestamps
// differ per check and must not participate.
func ChangeIdentity(kind Kind, subjectHandle, objectHandle string) string {
	return fmt.Sprintf("%s_%s_%s", kind, subjectHandle, objectHandle)
}
