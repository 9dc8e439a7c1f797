package memory

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownMemory is returned for an ID the journal does not hold.
var ErrUnknownMemory = errors.New("unknown memory")

// Filter selects which journal entries a Query returns.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterFavorites Filter = "favorites"
	FilterPositive  Filter = "positive"
	FilterNeutral   Filter = "neutral"
	FilterNegative  Filter = "negative"
)

// SortOrder orders Query results.
type SortOrder string

const (
	SortByDate  SortOrder = "date"  // newest first
	SortByTheme SortOrder = "theme" // alphabetical
)

// Query describes a journal view.
type Query struct {
	Filter Filter
	Search string
	Sort   SortOrder
}

func (q Query) match(m Memory) bool {
	switch q.Filter {
	case FilterFavorites:
		if !m.Favorite {
			return false
		}
	case FilterPositive, FilterNeutral, FilterNegative:
		if string(m.Sentiment) != string(q.Filter) {
			return false
		}
	}

	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(m.Text), term) ||
		strings.Contains(strings.ToLower(m.Theme), term)
}

// Journal is the collection of decoded memories. It is safe for concurrent
// use.
type Journal struct {
	mu      sync.RWMutex
	entries []Memory
}

// NewJournal returns a journal holding seed.
func NewJournal(seed ...Memory) *Journal {
	j := &Journal{}
	for _, m := range seed {
		j.Add(m)
	}
	return j
}

// Add appends m, replacing any entry with the same ID.
func (j *Journal) Add(m Memory) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := range j.entries {
		if j.entries[i].ID == m.ID {
			j.entries[i] = m
			return
		}
	}
	j.entries = append(j.entries, m)
}

// Get returns the entry with the given ID.
func (j *Journal) Get(id string) (Memory, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, m := range j.entries {
		if m.ID == id {
			return m, true
		}
	}
	return Memory{}, false
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (j *Journal) ToggleFavorite(id string) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := range j.entries {
		if j.entries[i].ID == id {
			j.entries[i].Favorite = !j.entries[i].Favorite
			return j.entries[i].Favorite, nil
		}
	}
	return false, fmt.Errorf("toggle favorite %q: %w", id, ErrUnknownMemory)
}

// Query returns a filtered, sorted copy of the entries.
func (j *Journal) Query(q Query) []Memory {
	j.mu.RLock()
	out := make([]Memory, 0, len(j.entries))
	for _, m := range j.entries {
		if q.match(m) {
			out = append(out, m)
		}
	}
	j.mu.RUnlock()

	switch q.Sort {
	case SortByDate:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].Date.After(out[b].Date)
		})
	case SortByTheme:
		sort.SliceStable(out, func(a, b int) bool {
			return strings.ToLower(out[a].Theme) < strings.ToLower(out[b].Theme)
		})
	}
	return out
}

// Export writes every entry to w as a YAML list.
func (j *Journal) Export(w io.Writer) error {
	entries := j.Query(Query{Filter: FilterAll, Sort: SortByDate})

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("export journal: %w", err)
	}
	return enc.Close()
}
