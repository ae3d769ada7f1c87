package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("sess")
	assert.Equal(t, "sess_1", gen.Generate())
	assert.Equal(t, "sess_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("jrnl")
	id := gen.Generate()

	assert.True(t, strings.HasPrefix(id, "jrnl_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "jrnl_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, gen.Generate())
}

func TestUUIDGeneratorKeepsIssueOrder(t *testing.T) {
	gen := idgen.NewUUID("")
	prev := gen.Generate()
	for range 50 {
		next := gen.Generate()
		assert.Less(t, prev, next)
		prev = next
	}

	parsed, err := uuid.Parse(prev)
	assert.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
