package entities

// PoolName identifies a resource pool
type PoolName string

// Resource pools. Vita is the primary pool and mana the secondary pool that
// aethered abilities restore by spending vita.
const (
	PoolVita PoolName = "vita"
	PoolMana PoolName = "mana"
)

// Pool is a current/max pair for one resource
type Pool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Percent returns Current as a percentage of Max on the 0-100 scale.
// An empty pool reports 0.
func (p Pool) Percent() float64 {
	if p.Max <= 0 {
		return 0
	}
	return float64(p.Current) * 100 / float64(p.Max)
}

// Missing returns how much of the pool is spent
func (p Pool) Missing() int {
	if p.Current >= p.Max {
		return 0
	}
	return p.Max - p.Current
}

// Pools maps pool names to their values
type Pools map[PoolName]Pool

// Vita returns the primary pool
func (p Pools) Vita() Pool {
	return p[PoolVita]
}

// Mana returns the secondary pool
func (p Pools) Mana() Pool {
	return p[PoolMana]
}
