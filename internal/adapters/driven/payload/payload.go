// Package payload provides in-memory implementations of driven.Payload for
// hosts that assemble paste data themselves (CLI, MCP, drop folder).
package payload

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
)

// Ensure Payload implements the interface.
var _ driven.Payload = (*Payload)(nil)

// Payload is an ordered, keyed set of paste representations.
// A key may hold several items (a drop of many files); Get returns the first.
type Payload struct {
	mu      sync.RWMutex
	entries []driven.PayloadEntry
	index   map[string]int
}

// New creates an empty payload.
func New() *Payload {
	return &Payload{index: make(map[string]int)}
}

// Set stores item under key, replacing the first item already stored there.
func (p *Payload) Set(key string, item driven.PayloadItem) *Payload {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i, ok := p.index[key]; ok {
		p.entries[i].Item = item
		return p
	}
	p.index[key] = len(p.entries)
	p.entries = append(p.entries, driven.PayloadEntry{Key: key, Item: item})
	return p
}

// Add appends item under key, keeping any items already stored under it.
func (p *Payload) Add(key string, item driven.PayloadItem) *Payload {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.index[key]; !ok {
		p.index[key] = len(p.entries)
	}
	p.entries = append(p.entries, driven.PayloadEntry{Key: key, Item: item})
	return p
}

// Get returns the first item stored under key.
func (p *Payload) Get(key string) (driven.PayloadItem, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	i, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.entries[i].Item, true
}

// Entries returns a copy of all entries in insertion order.
func (p *Payload) Entries() []driven.PayloadEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]driven.PayloadEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of entries.
func (p *Payload) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// StringItem is a text-only payload item.
type StringItem string

// File implements driven.PayloadItem.
func (StringItem) File() (domain.FileHandle, bool) { return nil, false }

// String implements driven.PayloadItem.
func (s StringItem) String(_ context.Context) (string, error) { return string(s), nil }

// FileItem wraps a file handle as a payload item.
type FileItem struct {
	Handle domain.FileHandle
}

// File implements driven.PayloadItem.
func (f FileItem) File() (domain.FileHandle, bool) {
	return f.Handle, f.Handle != nil
}

// String implements driven.PayloadItem.
func (FileItem) String(_ context.Context) (string, error) { return "", nil }

// BytesFile is a file handle over bytes already in memory.
type BytesFile struct {
	name   string
	data   []byte
	origin string
}

// NewBytesFile creates an in-memory file. origin may be empty.
func NewBytesFile(name string, data []byte, origin string) *BytesFile {
	return &BytesFile{name: name, data: data, origin: origin}
}

// Name implements domain.FileHandle.
func (f *BytesFile) Name() string { return f.name }

// Origin implements domain.FileHandle.
func (f *BytesFile) Origin() (string, bool) { return f.origin, f.origin != "" }

// ReadBytes implements domain.FileHandle.
func (f *BytesFile) ReadBytes(_ context.Context) ([]byte, error) {
	return f.data, nil
}

// DiskFile is a file handle whose bytes are read from disk on demand.
// It reports an origin only when created with WithOrigin.
type DiskFile struct {
	name       string
	path       string
	showOrigin bool
}

// NewDiskFile creates a handle reading path, declared as name. The handle
// hides where it came from, so the pipeline treats it as embedded data.
func NewDiskFile(name, path string) *DiskFile {
	return &DiskFile{name: name, path: path}
}

// WithOrigin makes the handle report its path as a file URI.
func (f *DiskFile) WithOrigin() *DiskFile {
	f.showOrigin = true
	return f
}

// Name implements domain.FileHandle.
func (f *DiskFile) Name() string { return f.name }

// Origin implements domain.FileHandle.
func (f *DiskFile) Origin() (string, bool) {
	if !f.showOrigin {
		return "", false
	}
	return domain.FileURI(f.path), true
}

// ReadBytes implements domain.FileHandle.
func (f *DiskFile) ReadBytes(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return data, nil
}
