// Package query translates a user search string into a full-text match
// expression understood by the Store's inverted index, preserving quoted
// phrases and biasing toward precision with an AND connective.
package query

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

var phrasePattern = regexp.MustCompile(`"([^"]*)"`)
var disallowedChars = regexp.MustCompile(`[^A-Za-z0-9_.]`)

// Parsed is the result of parsing a user query string.
type Parsed struct {
	// Expr is the full-text expression to MATCH against the inverted
	// index. Unused (empty) when MatchAll is true.
	Expr string
	// MatchAll is true for an empty/pathological input: the caller
	// should retrieve without an FTS MATCH clause.
	MatchAll bool
}

// Parse extracts quoted phrases, tokenizes the remainder,
// drop short tokens, prefix-wildcard survivors of length >= 3, and AND
// everything together. It never raises; degenerate input degrades to
// MatchAll.
func Parse(input string) Parsed {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Parsed{MatchAll: true}
	}

	var terms []string

	phrases := phrasePattern.FindAllStringSubmatch(trimmed, -1)
	for _, m := range phrases {
		phrase := strings.TrimSpace(m[1])
		if phrase != "" {
			terms = append(terms, `"`+phrase+`"`)
		}
	}
	remainder := phrasePattern.ReplaceAllString(trimmed, " ")

	for _, tok := range strings.Fields(remainder) {
		cleaned := disallowedChars.ReplaceAllString(tok, "")
		if len([]rune(cleaned)) < 2 {
			continue
		}
		if len([]rune(cleaned)) >= 3 {
			terms = append(terms, cleaned+"*")
		} else {
			terms = append(terms, cleaned)
		}
	}

	if len(terms) == 0 {
		return Parsed{MatchAll: true}
	}

	return Parsed{Expr: strings.Join(terms, " AND ")}
}

// Cache is a small bounded cache of parsed query expressions: MCP and CLI
// callers frequently repeat the same query string while paging results.
type Cache struct {
	lru *lru.Cache[string, Parsed]
}

// NewCache creates a Cache holding up to size entries.
func NewCache(size int) (*Cache, error) {
	l, err := lru.New[string, Parsed](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Get returns the cached parse for input, parsing and caching it on miss.
func (c *Cache) Get(input string) Parsed {
	if c == nil || c.lru == nil {
		return Parse(input)
	}
	if p, ok := c.lru.Get(input); ok {
		return p
	}
	p := Parse(input)
	c.lru.Add(input, p)
	return p
}
