package prefabs

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotLoaded is returned by Library.Get for a handle nobody asked to load.
var ErrNotLoaded = errors.New("prefabs: character not loaded")

// CharacterHandle names a descriptor inside a Library.
type CharacterHandle string

type LoadState uint8

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reader fetches raw descriptor bytes by name.
type Reader func(name string) ([]byte, error)

type libraryEntry struct {
	state LoadState
	spec  *CharacterSpec
	err   error
}

// Library is the descriptor cache. Descriptors load in the background and
// are polled with Get; once loaded they are never mutated. Safe for
// concurrent use.
type Library struct {
	read Reader

	mu      sync.RWMutex
	entries map[CharacterHandle]*libraryEntry
	pending sync.WaitGroup
}

// NewLibrary creates a library reading through read, or through Load when
// read is nil.
func NewLibrary(read Reader) *Library {
	if read == nil {
		read = Load
	}
	return &Library{
		read:    read,
		entries: make(map[CharacterHandle]*libraryEntry),
	}
}

// Load starts loading name unless it is already known and returns its
// handle immediately.
func (l *Library) Load(name string) CharacterHandle {
	h := CharacterHandle(name)

	l.mu.Lock()
	if _, ok := l.entries[h]; ok {
		l.mu.Unlock()
		return h
	}
	entry := &libraryEntry{state: Loading}
	l.entries[h] = entry
	l.pending.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.pending.Done()
		spec, err := l.parse(name)

		l.mu.Lock()
		defer l.mu.Unlock()
		// an Insert while loading replaced the entry; drop this result
		if l.entries[h] != entry {
			return
		}
		if err != nil {
			entry.state, entry.err = Failed, err
			return
		}
		entry.state, entry.spec = Loaded, spec
	}()
	return h
}

func (l *Library) parse(name string) (*CharacterSpec, error) {
	data, err := l.read(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParseCharacterSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: parse %s: %w", name, err)
	}
	return spec, nil
}

// Insert registers an already-built descriptor under name, replacing any
// previous entry. A load of name still in flight is discarded when it ends.
func (l *Library) Insert(name string, spec *CharacterSpec) (CharacterHandle, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	h := CharacterHandle(name)
	l.mu.Lock()
	l.entries[h] = &libraryEntry{state: Loaded, spec: spec}
	l.mu.Unlock()
	return h, nil
}

// Get polls a handle. The descriptor is non-nil only in the Loaded state; the
// error is set for Failed and NotLoaded.
func (l *Library) Get(h CharacterHandle) (*CharacterSpec, LoadState, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.entries[h]
	if !ok {
		return nil, NotLoaded, fmt.Errorf("%w: %s", ErrNotLoaded, h)
	}
	return entry.spec, entry.state, entry.err
}

// Wait blocks until every load started so far has finished.
func (l *Library) Wait() {
	l.pending.Wait()
}
