package quota

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// DefaultFreeLimit is the number of generations a non-entitled user gets.
const DefaultFreeLimit = 3

// ErrCorruptCounter indicates the persisted counter file could not be parsed.
// The gate treats it as zero rather than locking the user out.
var ErrCorruptCounter = errors.New("quota: corrupt counter file")

// Gate answers whether a free generation attempt may proceed and records
// consumed attempts.
type Gate interface {
	CanGenerateForFree() bool
	Increment() error
	Used() int
	Reset() error
}

// Entitlements reports whether the user has an active paid entitlement, which
// bypasses the free gate entirely.
type Entitlements interface {
	Active() bool
}

// StaticEntitlements is a fixed entitlement answer, configured at startup.
type StaticEntitlements bool

func (s StaticEntitlements) Active() bool { return bool(s) }

// FileGate persists the free-generation counter in a single file so the count
// survives restarts and reinstalls of the serving process. All methods are
// safe for concurrent use.
type FileGate struct {
	mu    sync.Mutex
	path  string
	limit int
	used  int
}

var _ Gate = (*FileGate)(nil)

// NewFileGate opens (or creates) the counter file at path. A missing file
// means zero used; an unreadable count is coerced to zero.
func NewFileGate(path string, limit int) (*FileGate, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("quota: counter path is required")
	}
	if limit <= 0 {
		limit = DefaultFreeLimit
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("quota: ensure counter directory: %w", err)
	}
	g := &FileGate{path: path, limit: limit}
	used, err := g.load()
	if err != nil && !errors.Is(err, ErrCorruptCounter) {
		return nil, err
	}
	g.used = used
	return g, nil
}

// CanGenerateForFree reports whether the counter is still below the limit.
func (g *FileGate) CanGenerateForFree() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.used < g.limit
}

// Used returns the number of consumed free generations.
func (g *FileGate) Used() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.used
}

// Increment consumes one free generation and persists the new count. The
// counter only ever moves forward; failed attempts still consume.
func (g *FileGate) Increment() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.used++
	return g.store(g.used)
}

// Reset zeroes the counter. Exposed for development tooling and tests.
func (g *FileGate) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.used = 0
	return g.store(0)
}

func (g *FileGate) load() (int, error) {
	raw, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("quota: read counter: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || n < 0 {
		return 0, ErrCorruptCounter
	}
	return n, nil
}

func (g *FileGate) store(n int) error {
	if err := os.WriteFile(g.path, []byte(strconv.Itoa(n)), 0o644); err != nil {
		return fmt.Errorf("quota: write counter: %w", err)
	}
	return nil
}
