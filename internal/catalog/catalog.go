// Package catalog holds the immutable Ability Catalog: for every logical
// ability an ordered list of the concrete variants that implement it.
package catalog

import (
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

// Kind classifies how an ability is cast and gated
type Kind string

// Ability kinds
const (
	KindSpell    Kind = "spell"
	KindBuff     Kind = "buff"
	KindAethered Kind = "aethered"
	KindMelee    Kind = "melee"
)

// Cost is the resource price of one cast
type Cost struct {
	Mana int `yaml:"mana,omitempty" json:"mana,omitempty"`
	Vita int `yaml:"vita,omitempty" json:"vita,omitempty"`
}

// Variant is one literal in-game implementation of a logical ability.
// Cooldown is the variant's own recast delay (the aether for aethered
// abilities); Duration is how long the applied effect lasts.
type Variant struct {
	Name     string        `yaml:"name" json:"name"`
	Cooldown time.Duration `yaml:"cooldown,omitempty" json:"cooldown,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty" json:"duration,omitempty"`
	Cost     Cost          `yaml:"cost,omitempty" json:"cost,omitempty"`
}

// Ability is a logical ability with its variants in priority order
type Ability struct {
	Name     string    `yaml:"name" json:"name"`
	Kind     Kind      `yaml:"kind" json:"kind"`
	Targeted bool      `yaml:"targeted,omitempty" json:"targeted,omitempty"`
	Melee    bool      `yaml:"melee,omitempty" json:"melee,omitempty"`
	Variants []Variant `yaml:"variants" json:"variants"`
}

// VariantNames returns the literal names of every variant, in order
func (a Ability) VariantNames() []string {
	names := make([]string, len(a.Variants))
	for i, v := range a.Variants {
		names[i] = v.Name
	}
	return names
}

// Catalog is an ordered, read-only set of abilities keyed by logical name
type Catalog struct {
	order     []string
	abilities map[string]Ability
}

// New builds a catalog. Declared order is kept. Abilities without variants
// or with duplicate names are configuration defects.
func New(abilities ...Ability) (*Catalog, error) {
	c := &Catalog{
		order:     make([]string, 0, len(abilities)),
		abilities: make(map[string]Ability, len(abilities)),
	}

	for _, a := range abilities {
		if err := validateAbility(a); err != nil {
			return nil, err
		}
		if _, dup := c.abilities[a.Name]; dup {
			return nil, errors.AlreadyExistsf("ability %q declared twice", a.Name)
		}
		c.order = append(c.order, a.Name)
		c.abilities[a.Name] = copyAbility(a)
	}

	return c, nil
}

// MustNew is New for the static archetype sets
func MustNew(abilities ...Ability) *Catalog {
	c, err := New(abilities...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get looks up an ability by logical name
func (c *Catalog) Get(name string) (Ability, bool) {
	a, ok := c.abilities[name]
	if !ok {
		return Ability{}, false
	}
	return copyAbility(a), true
}

// Has reports whether the catalog declares the ability
func (c *Catalog) Has(name string) bool {
	_, ok := c.abilities[name]
	return ok
}

// Names returns the logical names in declared order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Abilities returns every ability in declared order
func (c *Catalog) Abilities() []Ability {
	out := make([]Ability, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, copyAbility(c.abilities[name]))
	}
	return out
}

// Len returns the number of abilities
func (c *Catalog) Len() int {
	return len(c.order)
}

func validateAbility(a Ability) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", a.Name, vb)
	errors.ValidateEnum("kind", string(a.Kind),
		[]string{string(KindSpell), string(KindBuff), string(KindAethered), string(KindMelee)}, vb)
	if len(a.Variants) == 0 {
		vb.Field("variants", "at least one variant is required")
	}
	for i, v := range a.Variants {
		if v.Name == "" {
			vb.Fieldf("variants", "variant %d has no name", i)
		}
		if v.Cooldown < 0 || v.Duration < 0 {
			vb.Fieldf("variants", "variant %q has a negative timing", v.Name)
		}
	}

	if err := vb.Build(); err != nil {
		return errors.Wrapf(err, "invalid ability %q", a.Name)
	}
	return nil
}

func copyAbility(a Ability) Ability {
	variants := make([]Variant, len(a.Variants))
	copy(variants, a.Variants)
	a.Variants = variants
	return a
}
