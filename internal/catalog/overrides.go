package catalog

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

// Overrides replaces the variant lists of named abilities. It lets an
// operator follow renamed spells without a rebuild.
type Overrides struct {
	Abilities []Override `yaml:"abilities"`
}

// Override is the replacement variant list for one ability
type Override struct {
	Name     string    `yaml:"name"`
	Variants []Variant `yaml:"variants"`
}

// LoadOverrides reads an overrides file
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog overrides %s", path)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument,
			"failed to parse catalog overrides %s", path)
	}

	return &o, nil
}

// Apply returns a new catalog with the overrides applied. Overrides naming
// abilities the catalog does not declare are skipped, so one file can serve
// every path. An override with no variants is a defect.
func (c *Catalog) Apply(o *Overrides) (*Catalog, error) {
	if o == nil || len(o.Abilities) == 0 {
		return c, nil
	}

	replaced := make(map[string][]Variant, len(o.Abilities))
	for _, ov := range o.Abilities {
		if len(ov.Variants) == 0 {
			return nil, errors.InvalidArgumentf("override for %q has no variants", ov.Name)
		}
		replaced[ov.Name] = ov.Variants
	}

	abilities := c.Abilities()
	for i, a := range abilities {
		if v, ok := replaced[a.Name]; ok {
			abilities[i].Variants = v
		}
	}

	return New(abilities...)
}
