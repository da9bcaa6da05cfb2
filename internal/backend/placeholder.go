package backend

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"qshield/internal/domain"
)

const hexDigits = "0123456789abcdef"

// Generator produces placeholder values. It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	rand domain.Random
}

// NewGenerator wraps r. r itself need not be concurrency-safe.
func NewGenerator(r domain.Random) *Generator { return &Generator{rand: r} }

// Hex returns n random lowercase hex characters.
func (g *Generator) Hex(n int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return RandomHex(g.rand, n)
}

// TxHash returns a fake transaction hash.
func (g *Generator) TxHash() string { return "0x" + g.Hex(64) }

// BlockNumber returns a fake block height in [0, 1_000_000).
func (g *Generator) BlockNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rand.IntN(1_000_000)
}

// AccuracyGain returns a random accuracy increment in [0, 2).
func (g *Generator) AccuracyGain() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rand.Float64() * 2
}

// RandomHex returns n random lowercase hex characters drawn from r.
func RandomHex(r domain.Random, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(hexDigits[r.IntN(len(hexDigits))])
	}
	return b.String()
}

// IncrementVersion bumps the patch component of a dotted version. There is no
// carry: "1.3.9" becomes "1.3.10". Missing components are treated as 0 and a
// non-numeric patch restarts at 1.
func IncrementVersion(version string) string {
	parts := strings.Split(version, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	patch, err := strconv.Atoi(leadingDigits(parts[2]))
	if err != nil {
		patch = 0
	}
	parts[2] = strconv.Itoa(patch + 1)
	return strings.Join(parts, ".")
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

// LedgerTimestamp formats t the way ledger entries carry it (UTC).
func LedgerTimestamp(t time.Time) string {
	return t.UTC().Format(domain.LedgerTimeLayout)
}

// roundAccuracy keeps one decimal and caps at 100%.
func roundAccuracy(v float64) float64 {
	return math.Min(math.Round(v*10)/10, 100)
}
