package amber

import "sync"

// FileId is a dense, non-negative, never-reused identifier for an interned
// file URI.
type FileId int

// PathInterner is a thread-safe, insertion-ordered bijection between file
// URIs and FileIds. Ported from the original implementation's
// mutex-protected IndexSet<Uri> (see DESIGN.md).
//
// Invariants: lookup(insert(u)) == u; get(u), if present, returns the same
// id a prior insert(u) returned; ids are never reused or reassigned.
type PathInterner struct {
	mu    sync.Mutex
	byURI map[string]FileId
	byID  []string
}

// NewPathInterner returns an empty interner.
func NewPathInterner() *PathInterner {
	return &PathInterner{byURI: make(map[string]FileId)}
}

// Insert returns uri's FileId, allocating a new one if uri hasn't been seen
// before. Idempotent: inserting the same uri twice returns the same id.
func (p *PathInterner) Insert(uri string) FileId {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id, ok := p.byURI[uri]; ok {
		return id
	}

	id := FileId(len(p.byID))
	p.byURI[uri] = id
	p.byID = append(p.byID, uri)

	return id
}

// Get returns uri's FileId and true if uri has been interned, or the zero
// FileId and false otherwise.
func (p *PathInterner) Get(uri string) (FileId, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, ok := p.byURI[uri]

	return id, ok
}

// Lookup returns the URI that id was issued for. Lookup of an id this
// interner never issued is a programmer error (spec.md §7), not a
// recoverable one, and panics.
func (p *PathInterner) Lookup(id FileId) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if int(id) < 0 || int(id) >= len(p.byID) {
		panic("amber: PathInterner.Lookup: unknown FileId")
	}

	return p.byID[id]
}

// Len returns the number of distinct URIs interned so far.
func (p *PathInterner) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.byID)
}
