package driver

import (
	"bytes"
	"sync"
	"sync/atomic"

	"omega/internal/diag"
	"omega/internal/diagfmt"
	"omega/internal/source"
	"omega/internal/token"
)

// ListingCache keeps msgpack-encoded scan listings keyed by buffer content
// hash, so rescanning an unchanged buffer is a decode instead of a scan.
// Thread-safe for concurrent access.
type ListingCache struct {
	mu     sync.RWMutex
	byHash map[[32]byte][]byte

	hits   atomic.Int64
	misses atomic.Int64
}

// NewListingCache creates a ListingCache with the given capacity hint.
func NewListingCache(capHint int) *ListingCache {
	return &ListingCache{byHash: make(map[[32]byte][]byte, capHint)}
}

// Put serializes the scan result of file.
func (c *ListingCache) Put(file *source.File, toks []token.Token, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := diagfmt.EncodeListing(&buf, diagfmt.NewListing(file, toks, diags)); err != nil {
		return err
	}
	c.mu.Lock()
	c.byHash[file.Hash] = buf.Bytes()
	c.mu.Unlock()
	return nil
}

// Get decodes the listing cached for file's content; diagnostics are bound
// to file's ID.
func (c *ListingCache) Get(file *source.File) ([]token.Token, []diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, nil, false, nil
	}
	c.mu.RLock()
	data, ok := c.byHash[file.Hash]
	c.mu.RUnlock()
	if !ok {
		c.misses.Add(1)
		return nil, nil, false, nil
	}

	l, err := diagfmt.DecodeListing(bytes.NewReader(data))
	if err != nil {
		return nil, nil, false, err
	}
	toks, err := l.TokenList()
	if err != nil {
		return nil, nil, false, err
	}
	c.hits.Add(1)
	return toks, l.DiagnosticList(file.ID), true, nil
}

// Hits counts successful lookups.
func (c *ListingCache) Hits() int64 { return c.hits.Load() }

// Misses counts lookups that found nothing.
func (c *ListingCache) Misses() int64 { return c.misses.Load() }

// Len is the number of cached listings.
func (c *ListingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byHash)
}
