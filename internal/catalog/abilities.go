package catalog

import "time"

// Logical ability names
const (
	Gateway = "Gateway"
	Strike  = "Strike"

	CureParalysis = "Cure Paralysis"
	CureBlindness = "Cure Blindness"
	HardenArmor   = "Harden Armor"
	Heal          = "Heal"
	Invoke        = "Invoke"
	Purge         = "Purge"
	RemoveCurse   = "Remove Curse"
	Sanctuary     = "Sanctuary"
	Valor         = "Valor"

	Hellfire   = "Hellfire"
	Inferno    = "Inferno"
	SulSlash   = "Sul Slash"
	Doze       = "Doze"
	Sleep      = "Sleep"
	Blind      = "Blind"
	Curse      = "Curse"
	Paralyze   = "Paralyze"
	Venom      = "Venom"
	MageInvoke = "Mage Invoke"

	Inspire = "Inspire"
	Restore = "Restore"

	Enchant = "Enchant"
	Fury    = "Fury"
	Rage    = "Rage"

	Berserk   = "Berserk"
	Whirlwind = "Whirlwind"
	Backstab  = "Backstab"
	Blessing  = "Blessing"
	Flank     = "Flank"
	Potence   = "Potence"
	SpotTraps = "Spot Traps"

	Ambush = "Ambush"
)

const sec = time.Second

func spell(name string, mana int, names ...string) Ability {
	return Ability{Name: name, Kind: KindSpell, Variants: variants(names, 0, 0, Cost{Mana: mana})}
}

func targeted(name string, mana int, duration time.Duration, names ...string) Ability {
	return Ability{
		Name:     name,
		Kind:     KindSpell,
		Targeted: true,
		Variants: variants(names, 0, duration, Cost{Mana: mana}),
	}
}

func buff(name string, mana int, duration time.Duration, names ...string) Ability {
	return Ability{Name: name, Kind: KindBuff, Variants: variants(names, 0, duration, Cost{Mana: mana})}
}

func aethered(name string, cost Cost, aether time.Duration, names ...string) Ability {
	return Ability{Name: name, Kind: KindAethered, Variants: variants(names, aether, 0, cost)}
}

func variants(names []string, cooldown, duration time.Duration, cost Cost) []Variant {
	out := make([]Variant, len(names))
	for i, n := range names {
		out[i] = Variant{Name: n, Cooldown: cooldown, Duration: duration, Cost: cost}
	}
	return out
}

func peasantAbilities() []Ability {
	return []Ability{
		{
			Name:     Gateway,
			Kind:     KindSpell,
			Variants: []Variant{{Name: "Gateway", Cost: Cost{Mana: 10}}},
		},
		{
			Name:     Strike,
			Kind:     KindMelee,
			Melee:    true,
			Variants: []Variant{{Name: "Strike"}},
		},
	}
}

func casterAbilities() []Ability {
	invoke := aethered(Invoke, Cost{Mana: 30}, 20*sec, "Invoke", "Spirit's Power", "Life Force", "Gather Magic")
	invoke.Variants[0].Cooldown = 22 * sec

	cureParalysis := targeted(CureParalysis, 60, 0,
		"Cure Paralysis", "Release Binds", "Return Movement", "Free Movement")
	cureBlindness := targeted(CureBlindness, 30, 0, "Cure Blindness", "Clear Sight")
	purge := targeted(Purge, 30, 0, "Purge", "Cure Illness", "Restore Health", "Remove Poison")
	removeCurse := targeted(RemoveCurse, 60, 0, "Remove Curse", "Release Curse", "Undo Evil", "Restore Armor")
	heal := targeted(Heal, 20, 0, "Heal", "Regenerate", "Restore Life", "Heal Wounds")

	return []Ability{
		cureParalysis,
		cureBlindness,
		buff(HardenArmor, 30, 300*sec, "Harden Armor", "Thicken Skin", "Shield of Life", "Elemental Armor"),
		heal,
		invoke,
		purge,
		removeCurse,
		buff(Sanctuary, 60, 300*sec, "Sanctuary", "Protect Soul", "Guard Life", "Magic Shield"),
		buff(Valor, 30, 300*sec, "Valor", "Strengthen", "Bless Muscles", "Power Burst"),
	}
}

func mageAbilities() []Ability {
	hellfire := aethered(Hellfire, Cost{}, 4*sec, "Hellfire", "Searing Flame")
	hellfire.Targeted = true
	inferno := aethered(Inferno, Cost{}, 30*sec, "Inferno", "Firestorm")
	inferno.Targeted = true

	return []Ability{
		hellfire,
		inferno,
		aethered(SulSlash, Cost{}, 60*sec, "Sul Slash"),
		targeted(Doze, 40, 10*sec, "Doze", "Drowse"),
		targeted(Sleep, 60, 20*sec, "Sleep", "Slumber"),
		targeted(Blind, 60, 60*sec, "Blind", "Dark Seal"),
		targeted(Curse, 80, 120*sec, "Scourge", "Curse"),
		targeted(Paralyze, 60, 20*sec, "Paralyze", "Snare"),
		targeted(Venom, 40, 30*sec, "Venom", "Poison"),
		aethered(MageInvoke, Cost{}, 60*sec, "Mage Invoke", "Dark Invoke"),
	}
}

func poetAbilities() []Ability {
	return []Ability{
		targeted(Inspire, 0, 0, "Inspire", "Transfer Spirit"),
		targeted(Restore, 80, 0, "Restore", "Renew"),
	}
}

func fighterAbilities() []Ability {
	return []Ability{
		buff(Enchant, 20, 600*sec, "Enchant", "Enchant Weapon"),
		aethered(Fury, Cost{}, 30*sec, "Fury", "Battle Cry"),
		aethered(Rage, Cost{}, 30*sec, "Rage", "Cunning"),
	}
}

func warriorAbilities() []Ability {
	return []Ability{
		aethered(Berserk, Cost{}, 60*sec, "Berserk"),
		aethered(Whirlwind, Cost{}, 30*sec, "Whirlwind", "Spin Strike"),
		aethered(Backstab, Cost{}, 60*sec, "Backstab"),
		aethered(Blessing, Cost{}, 120*sec, "Blessing", "Warrior's Blessing"),
		aethered(Flank, Cost{}, 60*sec, "Flank"),
		aethered(Potence, Cost{}, 120*sec, "Potence"),
		aethered(SpotTraps, Cost{}, 60*sec, "Spot Traps", "Find Traps"),
	}
}

func rogueAbilities() []Ability {
	return []Ability{
		aethered(Ambush, Cost{}, 45*sec, "Ambush", "Shadow Strike"),
	}
}
