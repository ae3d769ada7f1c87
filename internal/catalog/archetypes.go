package catalog

import (
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

// pathAbilities returns the abilities only the path itself brings
func pathAbilities(path entities.BasePath) []Ability {
	switch path {
	case entities.PathMage:
		return mageAbilities()
	case entities.PathPoet:
		return poetAbilities()
	case entities.PathWarrior:
		return warriorAbilities()
	case entities.PathRogue:
		return rogueAbilities()
	default:
		return nil
	}
}

// CapabilitySet returns every ability available to a base path, composed
// from the shared peasant, caster and fighter sets plus the path's own
func CapabilitySet(path entities.BasePath) ([]Ability, error) {
	abilities := peasantAbilities()

	switch {
	case path.Caster():
		abilities = append(abilities, casterAbilities()...)
	case path.Fighter():
		abilities = append(abilities, fighterAbilities()...)
	case path == entities.PathPeasant:
	default:
		return nil, errors.InvalidArgumentf("unknown base path %q", path)
	}

	return append(abilities, pathAbilities(path)...), nil
}

// ForPath builds the catalog for a base path
func ForPath(path entities.BasePath) (*Catalog, error) {
	abilities, err := CapabilitySet(path)
	if err != nil {
		return nil, err
	}
	return New(abilities...)
}

// Full returns a catalog with every ability of every path
func Full() *Catalog {
	abilities := peasantAbilities()
	abilities = append(abilities, casterAbilities()...)
	abilities = append(abilities, fighterAbilities()...)
	for _, path := range []entities.BasePath{
		entities.PathMage, entities.PathPoet, entities.PathWarrior, entities.PathRogue,
	} {
		abilities = append(abilities, pathAbilities(path)...)
	}
	return MustNew(abilities...)
}

// InferPath guesses the base path of a character whose subpath is not
// mapped, by counting how many path-specific abilities resolve against
// known. Ties and zero matches return PathNone.
func InferPath(known Known) entities.BasePath {
	best := entities.PathNone
	bestCount := 0
	tie := false

	for _, path := range []entities.BasePath{
		entities.PathWarrior, entities.PathRogue, entities.PathMage, entities.PathPoet,
	} {
		count := 0
		for _, a := range pathAbilities(path) {
			if _, ok := Resolve(a, known); ok {
				count++
			}
		}

		switch {
		case count > bestCount:
			best, bestCount, tie = path, count, false
		case count == bestCount && count > 0:
			tie = true
		}
	}

	if tie {
		return entities.PathNone
	}
	return best
}
