package catalog

// Known is the set of literal ability names a character knows
type Known map[string]struct{}

// NewKnown builds a known-name set
func NewKnown(names ...string) Known {
	k := make(Known, len(names))
	for _, n := range names {
		k[n] = struct{}{}
	}
	return k
}

// Has reports whether the name is known
func (k Known) Has(name string) bool {
	_, ok := k[name]
	return ok
}

// Resolve returns the lowest-index variant of a whose name is known
func Resolve(a Ability, known Known) (Variant, bool) {
	for _, v := range a.Variants {
		if known.Has(v.Name) {
			return v, true
		}
	}
	return Variant{}, false
}
