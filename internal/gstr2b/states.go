package gstr2b

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tallymap/internal/port"
)

// StateResolver maps the 2-digit jurisdiction prefix of a GSTIN to a state
// name. The reference table is loaded lazily on first use and cached for
// the resolver's lifetime; Invalidate forces a reload if the table changes
// at runtime. Safe for concurrent use; Resolve never mutates the cache
// after load.
type StateResolver struct {
	repo port.StateCodeRepository

	mu     sync.RWMutex
	byCode map[string]string
}

// NewStateResolver creates an empty resolver over the given reference
// table. No I/O happens until Load or the first Resolve.
func NewStateResolver(repo port.StateCodeRepository) *StateResolver {
	return &StateResolver{repo: repo}
}

// Load builds the code→state map from the reference table, replacing any
// cached copy.
func (r *StateResolver) Load(ctx context.Context) error {
	entries, err := r.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading state codes: %w", err)
	}

	m := make(map[string]string, len(entries))
	for i := range entries {
		code := padCode(entries[i].GSTCode)
		if code == "" || entries[i].StateName == "" {
			continue
		}
		m[code] = entries[i].StateName
	}

	r.mu.Lock()
	r.byCode = m
	r.mu.Unlock()
	return nil
}

// Warm loads the map only if it is not already cached. Callers that need
// load failures surfaced before row processing begins use this instead of
// relying on the lazy load inside Resolve.
func (r *StateResolver) Warm(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.byCode != nil
	r.mu.RUnlock()
	if loaded {
		return nil
	}
	return r.Load(ctx)
}

// Invalidate drops the cached map; the next Resolve reloads it.
func (r *StateResolver) Invalidate() {
	r.mu.Lock()
	r.byCode = nil
	r.mu.Unlock()
}

// Resolve returns the state name for the GSTIN's jurisdiction prefix, or ""
// when the GSTIN is empty or the code is unknown.
func (r *StateResolver) Resolve(ctx context.Context, gstin string) (string, error) {
	gstin = strings.TrimSpace(gstin)
	if gstin == "" {
		return "", nil
	}

	r.mu.RLock()
	loaded := r.byCode != nil
	r.mu.RUnlock()
	if !loaded {
		if err := r.Load(ctx); err != nil {
			return "", err
		}
	}

	code := gstin
	if len(code) > 2 {
		code = code[:2]
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byCode[padCode(code)], nil
}

// padCode left-pads a jurisdiction code to the canonical 2-character width.
func padCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 1 {
		return "0" + code
	}
	return code
}
