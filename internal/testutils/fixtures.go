package testutils

import (
	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils/builders"
)

// Refs used across rotation tests
const (
	TestPoetRef    = "pid:1000"
	TestMageRef    = "pid:2000"
	TestWarriorRef = "pid:3000"
)

// CreateTestPoet returns a full-pool poet snapshot
func CreateTestPoet() *entities.Snapshot {
	return builders.NewSnapshotBuilder().
		WithID(TestPoetRef).
		WithName("Aldric").
		WithPath("Geomancer").
		WithVita(1000, 1000).
		WithMana(2000, 2000).
		Build()
}

// CreateTestMage returns a full-pool mage snapshot
func CreateTestMage() *entities.Snapshot {
	return builders.NewSnapshotBuilder().
		WithID(TestMageRef).
		WithName("Morwen").
		WithPath("Diviner").
		WithVita(800, 800).
		WithMana(3000, 3000).
		Build()
}

// CreateTestWarrior returns a full-pool warrior snapshot
func CreateTestWarrior() *entities.Snapshot {
	return builders.NewSnapshotBuilder().
		WithID(TestWarriorRef).
		WithName("Bram").
		WithPath("Gladiator").
		WithVita(5000, 5000).
		WithMana(300, 300).
		Build()
}

// FirstVariants returns the first variant name of every ability in c, the
// spell book of a character that knows the base version of everything
func FirstVariants(c *catalog.Catalog) []string {
	names := make([]string, 0, c.Len())
	for _, a := range c.Abilities() {
		names = append(names, a.Variants[0].Name)
	}
	return names
}
