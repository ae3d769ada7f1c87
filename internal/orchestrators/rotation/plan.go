package rotation

import (
	"context"
	"sort"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/dispatch"
)

// Step is one entry of a rotation plan. It reports whether it issued a
// command; steps that have nothing to do return false.
type Step func(ctx context.Context, d *dispatch.Dispatcher) (bool, error)

func buff(ability string) Step {
	return func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Buff(ctx, ability)
	}
}

func buffAllies(ability string, role entities.Role) Step {
	return func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.BuffAllies(ctx, ability, role)
	}
}

func selfAttack(ability string) Step {
	return func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.SelfAttack(ctx, ability, 0)
	}
}

func debuffFirst(ability string) Step {
	return func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.DebuffFirst(ctx, ability)
	}
}

func heal(ability string) Step {
	return func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Heal(ctx, ability, 0)
	}
}

var steps = map[string]Step{
	"invoke": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Invoke(ctx, 0)
	},
	"mage_invoke":  buff(catalog.MageInvoke),
	"sanctuary":    buff(catalog.Sanctuary),
	"harden_armor": buff(catalog.HardenArmor),
	"valor":        buff(catalog.Valor),
	"valor_allies": buffAllies(catalog.Valor, entities.RoleMelee),
	"enchant":      buff(catalog.Enchant),
	"hellfire": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Hellfire(ctx)
	},
	"inferno": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Inferno(ctx)
	},
	"sul_slash": selfAttack(catalog.SulSlash),
	"berserk":   selfAttack(catalog.Berserk),
	"whirlwind": selfAttack(catalog.Whirlwind),
	"curse":     debuffFirst(catalog.Curse),
	"venom":     debuffFirst(catalog.Venom),
	"blind":     debuffFirst(catalog.Blind),
	"paralyze":  debuffFirst(catalog.Paralyze),
	"inspire_group": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.InspireGroup(ctx)
	},
	"cure_group": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Cure(ctx)
	},
	"broadcast_cure": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return false, d.BroadcastCure(ctx)
	},
	"heal_group":    heal(catalog.Heal),
	"restore_group": heal(catalog.Restore),
	"fury": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Fury(ctx)
	},
	"rage": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Rage(ctx)
	},
	"backstab":   buff(catalog.Backstab),
	"blessing":   buff(catalog.Blessing),
	"flank":      buff(catalog.Flank),
	"potence":    buff(catalog.Potence),
	"spot_traps": buff(catalog.SpotTraps),
	"ambush":     buff(catalog.Ambush),
	"strike": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Strike(ctx)
	},
	"wander": func(ctx context.Context, d *dispatch.Dispatcher) (bool, error) {
		return d.Wander(ctx)
	},
}

// LookupStep returns the step registered under name
func LookupStep(name string) (Step, error) {
	step, ok := steps[name]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown plan step %q", name)
	}
	return step, nil
}

// StepNames lists every registered step, sorted
func StepNames() []string {
	names := make([]string, 0, len(steps))
	for name := range steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPlan returns a reasonable plan for a base path
func DefaultPlan(path entities.BasePath) []string {
	switch path {
	case entities.PathMage:
		return []string{"invoke", "cure_group", "sanctuary", "harden_armor", "hellfire", "sul_slash"}
	case entities.PathPoet:
		return []string{"invoke", "cure_group", "heal_group", "inspire_group", "sanctuary", "valor_allies"}
	case entities.PathWarrior:
		return []string{"rage", "fury", "enchant", "potence", "berserk", "whirlwind", "strike"}
	case entities.PathRogue:
		return []string{"rage", "fury", "enchant", "ambush", "strike"}
	default:
		return []string{"strike"}
	}
}

type plannedStep struct {
	name string
	run  Step
}

func buildPlan(names []string) ([]plannedStep, error) {
	if len(names) == 0 {
		return nil, errors.InvalidArgument("plan has no steps")
	}

	plan := make([]plannedStep, len(names))
	for i, name := range names {
		step, err := LookupStep(name)
		if err != nil {
			return nil, err
		}
		plan[i] = plannedStep{name: name, run: step}
	}
	return plan, nil
}
