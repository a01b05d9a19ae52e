// Package id mints time-sortable identifiers for trade events.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator mints ULIDs from a single monotonic entropy source. ULIDs
// sort by generation time, which keeps trade records naturally ordered
// in journals and SQLite indexes; the monotonic reader extends that
// ordering to ids minted within the same millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator seeds a generator from crypto/rand so its entropy is
// unpredictable across processes.
func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// New mints one ULID string. Safe for concurrent use.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), g.entropy).String()
}

var defaultGenerator = NewGenerator()

// New mints a ULID from the shared process-wide generator.
func New() string { return defaultGenerator.New() }
