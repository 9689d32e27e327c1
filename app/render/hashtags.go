package render

import (
	"strings"
	"unicode/utf8"
)

// socialHashtags returns the tags for a follow/unfollow post: the
// athlete's own tag when known, plus the fixed community tag.
func socialHashtags(athleteName string) []string {
	var tags []string
	for name, tag := range athleteTags {
		if strings.Contains(athleteName, name) || strings.Contains(name, athleteName) {
			tags = append(tags, tag)
			break
		}
	}
	return append(tags, "#FootballTwitter")
}

// newsHashtags builds context-aware tags: category first, then a star
// player, then a team, with a generic fallback.
func (r *Renderer) newsHashtags(title, summary, category string) []string {
	var tags []string
	text := strings.ToLower(title + " " + summary)

	switch category {
	case "transfer":
		tags = append(tags, "#TransferNews")
		if strings.Contains(text, "rumor") || strings.Contains(text, "rumour") {
			tags = append(tags, "#TransferRumors")
		}
	case "match":
		tags = append(tags, "#MatchDay")
		if strings.Contains(text, "goal") || strings.Contains(text, "score") {
			tags = append(tags, "#Goals")
		}
	case "drama":
		tags = append(tags, "#FootballDrama")
	}

	for _, player := range starPlayerTags {
		if strings.Contains(text, strings.ToLower(player)) {
			tags = append(tags, "#"+player)
			break
		}
	}

	for _, team := range knownTeams {
		if strings.Contains(text, strings.ToLower(team)) {
			tag := "#" + strings.ReplaceAll(team, " ", "")
			if len(tag) < 20 {
				tags = append(tags, tag)
			}
			break
		}
	}

	if len(tags) == 0 {
		tags = append(tags, "#Football")
	}
	return tags
}

// appendHashtags attaches up to max tags when the budget allows,
// falling back to the first tag alone, then to no tags at all.
func appendHashtags(body string, tags []string, max int) string {
	if len(tags) > max {
		tags = tags[:max]
	}
	joined := strings.Join(tags, " ")

	if utf8.RuneCountInString(body)+utf8.RuneCountInString(joined)+2 <= MaxLength {
		return body + "\n\n" + joined
	}
	if len(tags) > 0 && utf8.RuneCountInString(body)+utf8.RuneCountInString(tags[0])+2 <= MaxLength {
		return body + "\n\n" + tags[0]
	}
	return body
}
