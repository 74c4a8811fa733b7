package catalog

import (
	"regexp"
	"strings"
)

var (
	jsSuffixRe  = regexp.MustCompile(`(?i)\.(js|ts)$`)
	separatorRe = regexp.MustCompile(`[\s\-_.]`)
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]`)
)

// Canonicalizer maps raw skill strings to canonical keys via aggressive
// normalization plus an injected, read-only alias table. The table is copied
// at construction so callers cannot mutate it afterwards.
type Canonicalizer struct {
	aliases map[string]string
}

// NewCanonicalizer creates a Canonicalizer using the given alias table.
// Pass DefaultAliases for the stock table.
func NewCanonicalizer(aliases map[string]string) *Canonicalizer {
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[k] = v
	}
	return &Canonicalizer{aliases: copied}
}

// Canonicalize maps a raw skill string to its canonical key: lowercase and
// trim, strip a trailing .js/.ts suffix, remove whitespace, hyphens,
// underscores and periods, drop any remaining non-alphanumeric character, then
// resolve through the alias table. This unifies "SEO", "S.E.O." and
// "Search Engine Optimization" onto one key.
//
// Idempotent and total: canonicalizing a canonical key is a no-op, and empty
// input yields an empty string.
func (c *Canonicalizer) Canonicalize(raw string) string {
	if raw == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(raw))
	key = jsSuffixRe.ReplaceAllString(key, "")
	key = separatorRe.ReplaceAllString(key, "")
	key = nonAlnumRe.ReplaceAllString(key, "")

	if canonical, ok := c.aliases[key]; ok {
		return canonical
	}
	return key
}

// CanonicalizeAll maps a slice of raw skills to canonical keys, dropping
// entries that normalize to nothing and deduplicating the rest in order.
func (c *Canonicalizer) CanonicalizeAll(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(raw))
	keys := make([]string, 0, len(raw))
	for _, s := range raw {
		key := c.Canonicalize(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}
