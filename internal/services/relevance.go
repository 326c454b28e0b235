package services

import (
	"strings"
	"time"

	"newsdesk/internal/models"
)

// Relevance scoring and highlight extraction. Pure functions: no I/O, no
// logging, deterministic for a given article, query and reference time.

const (
	scoreTitleExact    = 100
	scoreTitleContains = 50
	scoreTitleWord     = 30
	scoreExcerpt       = 20
	scoreContent       = 10
	scoreFeatured      = 5
	scoreBreaking      = 5
	scoreRecentWeek    = 5
	scoreRecentDay     = 10

	snippetContext   = 50 // bytes of context on each side of a match
	snippetsPerField = 3
	contentScanCap   = 500 // content is truncated before highlighting
)

// scoreArticle computes the additive relevance score for one article.
// queryLower must be the lowercased, trimmed query. An exact title match also
// satisfies the contains check, so both bonuses stack.
func scoreArticle(a *models.Article, queryLower string, now time.Time) int {
	score := 0
	titleLower := strings.ToLower(a.Title)

	if titleLower == queryLower {
		score += scoreTitleExact
	}
	if strings.Contains(titleLower, queryLower) {
		score += scoreTitleContains
	}

	titleWords := strings.Fields(titleLower)
	for _, word := range strings.Fields(queryLower) {
		for _, tw := range titleWords {
			if tw == word {
				score += scoreTitleWord
				break
			}
		}
	}

	if a.Excerpt != nil && strings.Contains(strings.ToLower(*a.Excerpt), queryLower) {
		score += scoreExcerpt
	}
	if a.Content != nil && strings.Contains(strings.ToLower(*a.Content), queryLower) {
		score += scoreContent
	}

	if a.IsFeatured {
		score += scoreFeatured
	}
	if a.IsBreaking {
		score += scoreBreaking
	}

	published := a.PublishTime()
	if !published.After(now) {
		age := now.Sub(published)
		if age <= 7*24*time.Hour {
			score += scoreRecentWeek
		}
		if age <= 24*time.Hour {
			score += scoreRecentDay
		}
	}

	return score
}

// extractHighlights builds the per-field snippet lists for one article.
// Content is scanned only when it was fetched, and only its first
// contentScanCap bytes.
func extractHighlights(a *models.Article, queryLower string, includeContent bool) Highlights {
	h := Highlights{
		Title:   fieldSnippets(a.Title, queryLower),
		Excerpt: []string{},
		Content: []string{},
	}
	if a.Excerpt != nil {
		h.Excerpt = fieldSnippets(*a.Excerpt, queryLower)
	}
	if includeContent && a.Content != nil {
		content := *a.Content
		if len(content) > contentScanCap {
			content = content[:contentScanCap]
		}
		h.Content = fieldSnippets(content, queryLower)
	}
	return h
}

// fieldSnippets scans text case-insensitively for queryLower and emits up to
// snippetsPerField surrounding snippets, clamped to the text bounds. The scan
// resumes one byte past each match start, so adjacent or repeated matches can
// yield overlapping snippets.
func fieldSnippets(text, queryLower string) []string {
	snippets := []string{}
	if queryLower == "" || text == "" {
		return snippets
	}

	textLower := strings.ToLower(text)
	pos := 0
	for len(snippets) < snippetsPerField {
		i := strings.Index(textLower[pos:], queryLower)
		if i < 0 {
			break
		}
		matchStart := pos + i
		if matchStart >= len(text) {
			// Lowercasing can shift byte offsets for a handful of
			// non-ASCII code points; never index past the source.
			break
		}

		start := matchStart - snippetContext
		if start < 0 {
			start = 0
		}
		end := matchStart + len(queryLower) + snippetContext
		if end > len(text) {
			end = len(text)
		}
		snippets = append(snippets, text[start:end])

		pos = matchStart + 1
	}
	return snippets
}
