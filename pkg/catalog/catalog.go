package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned for lookups of unknown entry IDs.
var ErrNotFound = errors.New("catalog entry not found")

// ErrCatalogClosed is returned when a catalog is used after Close.
var ErrCatalogClosed = errors.New("catalog closed")

// Entry describes one capability-bearing unit.
type Entry struct {
	ID           string    `json:"id"`
	Intent       string    `json:"intent"`
	Requires     []string  `json:"requires,omitempty"`
	Provides     []string  `json:"provides,omitempty"`
	Effects      []string  `json:"effects,omitempty"`
	Handle       any       `json:"-"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Criteria is a structured discovery query. Every criterion must hold.
//
// Recognized keys: "requires" ([]string — the entry must provide each field),
// "provides" ([]string — the entry must require each field), "intent" (string,
// free-text word match). Any other key is compared for equality against the
// entry field of the same name ("id", "effects").
type Criteria map[string]any

// Catalog is the lookup service. A single goroutine owns the entries; public
// methods post requests to its loop.
type Catalog struct {
	ops    chan func()
	ctx    context.Context
	cancel context.CancelFunc

	entries map[string]Entry
}

// New creates a catalog and starts its loop. Callers must Close it when done.
func New() *Catalog {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Catalog{
		ops:     make(chan func()),
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]Entry),
	}
	go c.loop()
	return c
}

func (c *Catalog) loop() {
	for {
		select {
		case fn := <-c.ops:
			fn()
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Catalog) do(fn func()) error {
	done := make(chan struct{})
	select {
	case c.ops <- func() { fn(); close(done) }:
	case <-c.ctx.Done():
		return ErrCatalogClosed
	}
	select {
	case <-done:
		return nil
	case <-c.ctx.Done():
		return ErrCatalogClosed
	}
}

// Close stops the catalog loop.
func (c *Catalog) Close() {
	c.cancel()
}

// Register stores the entry, stamping the registration time. A duplicate ID
// overwrites the previous entry.
func (c *Catalog) Register(entry Entry) error {
	entry.RegisteredAt = time.Now()
	return c.do(func() {
		c.entries[entry.ID] = entry
	})
}

// Get returns the entry for the ID, or ErrNotFound.
func (c *Catalog) Get(id string) (Entry, error) {
	var entry Entry
	var ok bool
	if err := c.do(func() { entry, ok = c.entries[id] }); err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

// ListAll returns every entry sorted by ID.
func (c *Catalog) ListAll() []Entry {
	var out []Entry
	_ = c.do(func() {
		out = make([]Entry, 0, len(c.entries))
		for _, e := range c.entries {
			out = append(out, e)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Discover answers a free-text query (string) or structured Criteria.
func (c *Catalog) Discover(query any) []Entry {
	entries := c.ListAll()
	var out []Entry
	switch q := query.(type) {
	case string:
		for _, e := range entries {
			if matchesText(e.Intent, q) {
				out = append(out, e)
			}
		}
	case Criteria:
		for _, e := range entries {
			if matchesCriteria(e, q) {
				out = append(out, e)
			}
		}
	case map[string]any:
		for _, e := range entries {
			if matchesCriteria(e, q) {
				out = append(out, e)
			}
		}
	}
	return out
}

// matchesText reports whether any word of the query appears as a whole word
// in the intent description, case-insensitively.
func matchesText(description, query string) bool {
	words := strings.Fields(strings.ToLower(description))
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[strings.Trim(w, ".,;:!?")] = struct{}{}
	}
	for _, qw := range strings.Fields(strings.ToLower(query)) {
		if _, ok := wordSet[strings.Trim(qw, ".,;:!?")]; ok {
			return true
		}
	}
	return false
}

// matchesCriteria applies every criterion; all must hold.
func matchesCriteria(e Entry, criteria map[string]any) bool {
	for key, want := range criteria {
		switch key {
		case "requires":
			// The caller requires these fields: the entry must provide them.
			for _, field := range toStrings(want) {
				if !contains(e.Provides, field) {
					return false
				}
			}
		case "provides":
			// The caller provides these fields: the entry must require them.
			for _, field := range toStrings(want) {
				if !contains(e.Requires, field) {
					return false
				}
			}
		case "intent":
			text, ok := want.(string)
			if !ok || !matchesText(e.Intent, text) {
				return false
			}
		case "id":
			if e.ID != want {
				return false
			}
		case "effects":
			for _, field := range toStrings(want) {
				if !contains(e.Effects, field) {
					return false
				}
			}
		default:
			return false
		}
	}
	return true
}

func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case string:
		return []string{vv}
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
