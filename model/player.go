package model

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	// UnknownName is used when a provider has no usable name for a player.
	UnknownName = "?"
	// UnknownPlayerID is used when a provider returns a record without an id.
	UnknownPlayerID = "unknown"
)

// Player is the normalized view of a player from any provider. Team and
// Position are optional and are empty when the provider does not know them.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

// PlayerID returns id, or UnknownPlayerID if id is blank.
func PlayerID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return UnknownPlayerID
	}
	return id
}

// FullName joins first and last name, returning UnknownName if both are blank.
func FullName(first, last string) string {
	n := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if n == "" {
		return UnknownName
	}
	return n
}

// FirstNonEmpty returns the first name that isn't blank, or UnknownName.
func FirstNonEmpty(names ...string) string {
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			return n
		}
	}
	return UnknownName
}

// NameFilter returns a function reporting whether a name contains query,
// using Unicode case folding. An empty query matches every name. Whitespace in
// query is significant, so " " matches only names with a space in them. The
// returned function must not be shared between goroutines.
func NameFilter(query string) func(name string) bool {
	if query == "" {
		return func(string) bool { return true }
	}

	fold := cases.Fold()
	q := fold.String(query)
	return func(name string) bool {
		return strings.Contains(fold.String(name), q)
	}
}
