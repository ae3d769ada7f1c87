package entities

import "strings"

// BasePath is the archetype a character belongs to
type BasePath string

// Base paths
const (
	PathNone    BasePath = ""
	PathPeasant BasePath = "peasant"
	PathWarrior BasePath = "warrior"
	PathRogue   BasePath = "rogue"
	PathMage    BasePath = "mage"
	PathPoet    BasePath = "poet"
)

// Role groups base paths for role-filtered ally selection
type Role string

// Roles
const (
	RoleMelee  Role = "melee"
	RoleCaster Role = "caster"
)

// Paths lists every playable base path
var Paths = []BasePath{PathPeasant, PathWarrior, PathRogue, PathMage, PathPoet}

// Role returns the role of the path. Peasants fight in melee.
func (p BasePath) Role() Role {
	switch p {
	case PathMage, PathPoet:
		return RoleCaster
	default:
		return RoleMelee
	}
}

// Fighter reports whether the path shares the fighter buff set
func (p BasePath) Fighter() bool {
	return p == PathWarrior || p == PathRogue
}

// Caster reports whether the path shares the caster cure and buff set
func (p BasePath) Caster() bool {
	return p == PathMage || p == PathPoet
}

var subpaths = map[BasePath][]string{
	PathWarrior: {"warrior", "gladiator", "barbarian", "chunga"},
	PathRogue:   {"rogue", "bard", "ranger", "assassin"},
	PathMage:    {"mage", "sorcerer", "diviner", "elementalist"},
	PathPoet:    {"poet", "geomancer", "summoner", "monk"},
	PathPeasant: {"peasant"},
}

// ParsePath maps a base path or subpath name to its base path. The match is
// case insensitive. Unknown names return PathNone.
func ParsePath(name string) BasePath {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PathNone
	}

	for _, path := range Paths {
		for _, sub := range subpaths[path] {
			if sub == name {
				return path
			}
		}
	}

	return PathNone
}
