// Package resolve maps loosely typed names from parsed intents to the
// exact names the engine knows (quests, items, pets, titles, tasks).
package resolve

import (
	"fmt"
	"strings"
)

// AmbiguityError indicates multiple candidates matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no candidate matched a name.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("nothing called %q", e.Name)
	}
	return fmt.Sprintf("no %s called %q", e.Kind, e.Name)
}

// Name resolves query against candidates. Matching is tried in order:
// exact, case-insensitive, then partial (name prefix or a whole word of
// the name). The first stage with exactly one hit wins.
func Name(kind, query string, candidates []string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", &NotFoundError{Kind: kind, Name: query}
	}
	for _, c := range candidates {
		if c == query {
			return c, nil
		}
	}

	q := strings.ToLower(query)
	var folded []string
	for _, c := range candidates {
		if strings.ToLower(c) == q {
			folded = append(folded, c)
		}
	}
	if len(folded) == 1 {
		return folded[0], nil
	}
	if len(folded) > 1 {
		return "", &AmbiguityError{Name: query, Candidates: folded}
	}

	var matches []string
	for _, c := range candidates {
		if matchesPartial(strings.ToLower(c), q) && !containsStr(matches, c) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, Name: query}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Name: query, Candidates: matches}
	}
}

// matchesPartial reports whether q is a prefix of name or equals one of
// its words, e.g. "golem" matches "stone golem".
func matchesPartial(name, q string) bool {
	if strings.HasPrefix(name, q) {
		return true
	}
	for _, word := range strings.FieldsFunc(name, func(r rune) bool { return r == ' ' || r == ':' || r == '(' || r == ')' }) {
		if word == q {
			return true
		}
	}
	return false
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
