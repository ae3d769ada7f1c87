// Package idgen generates identifiers for rotation sessions, dispatched
// commands and journal entries
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

func prefixed(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// SequentialGenerator numbers IDs from 1. Tests use it to predict command
// and journal IDs.
type SequentialGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next number
func (g *SequentialGenerator) Generate() string {
	return prefixed(g.prefix, strconv.FormatUint(g.counter.Add(1), 10))
}

// UUIDGenerator generates time-ordered UUIDs, so IDs of commands issued by
// one process sort in issue order
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefixed(g.prefix, id.String())
}
