package search

import (
	"strings"

	"menuboard/api/internal/domain"
)

// Entry is one flattened menu item with back-references to its place in the
// hierarchy. The index is rebuilt from the model on every refresh; it is
// never persisted.
type Entry struct {
	Item     string          `json:"item"`
	Category string          `json:"category"`
	Section  string          `json:"section"`
	Full     domain.MenuItem `json:"fullItem"`
}

// State distinguishes "no search active" from "searched, nothing found" so
// callers can render browsing, results and empty states differently.
type State string

const (
	StateUnfiltered State = "unfiltered"
	StateMatches    State = "matches"
	StateNoMatches  State = "no_matches"
)

// Result is the outcome of filtering the index against one query.
type Result struct {
	State   State   `json:"state"`
	Entries []Entry `json:"entries"`
}

// BuildIndex flattens the hierarchical model into one entry per item, in
// model order.
func BuildIndex(data *domain.MenuData) []Entry {
	var index []Entry
	data.Walk(func(section, category string, item domain.MenuItem) {
		index = append(index, Entry{
			Item:     item.ItemName,
			Category: category,
			Section:  section,
			Full:     item,
		})
	})
	return index
}

// Filter matches the query case-insensitively as a substring of the item
// name, category, section or description. A blank query means no filter is
// active and returns every entry in the unfiltered state.
func Filter(index []Entry, query string) Result {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return Result{State: StateUnfiltered, Entries: index}
	}

	matches := make([]Entry, 0)
	for _, entry := range index {
		if entry.matches(query) {
			matches = append(matches, entry)
		}
	}

	state := StateMatches
	if len(matches) == 0 {
		state = StateNoMatches
	}
	return Result{State: state, Entries: matches}
}

func (e Entry) matches(query string) bool {
	return strings.Contains(strings.ToLower(e.Item), query) ||
		strings.Contains(strings.ToLower(e.Category), query) ||
		strings.Contains(strings.ToLower(e.Section), query) ||
		strings.Contains(strings.ToLower(e.Full.Description), query)
}

// GroupResults folds matched entries back into a hierarchical model so
// search results keep their section and category labels.
func GroupResults(entries []Entry) *domain.MenuData {
	data := domain.NewMenuData()
	for _, entry := range entries {
		data.Add(entry.Full)
	}
	return data
}
