package entities

// Debuff is a curable condition on an ally
type Debuff string

// Curable debuffs
const (
	DebuffBlindness Debuff = "blindness"
	DebuffParalysis Debuff = "paralysis"
	DebuffScourge   Debuff = "scourge"
	DebuffVenom     Debuff = "venom"
	DebuffVex       Debuff = "vex"
)

// Debuffs lists every curable debuff in cure priority order
var Debuffs = []Debuff{DebuffParalysis, DebuffBlindness, DebuffScourge, DebuffVenom, DebuffVex}
