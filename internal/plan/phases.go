package plan

import (
	"fmt"
	"strings"
)

// Phases builds the ordered plan for a role. Ordinals start at 1.
func Phases(role Role, opts Options) ([]Phase, error) {
	o := opts.withDefaults(role)

	var phases []Phase
	switch role {
	case RoleMaster:
		p, err := masterPhases(o)
		if err != nil {
			return nil, fmt.Errorf("failed to build master plan: %w", err)
		}
		phases = p
	case RoleWorker:
		phases = nodePhases(o)
	case RoleVerify:
		phases = verifyPhases(o)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	for i := range phases {
		phases[i].Ordinal = i + 1
	}
	return phases, nil
}

// Validate checks the ordering and naming invariants of a plan.
func Validate(phases []Phase) error {
	if len(phases) == 0 {
		return fmt.Errorf("%w: no phases", ErrInvalidPlan)
	}

	seen := make(map[string]bool, len(phases))
	prev := 0
	for i, p := range phases {
		if p.Name == "" {
			return fmt.Errorf("%w: phase %d has no name", ErrInvalidPlan, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate phase name %q", ErrInvalidPlan, p.Name)
		}
		seen[p.Name] = true

		if i > 0 && p.Ordinal <= prev {
			return fmt.Errorf("%w: phase %q ordinal %d does not follow %d", ErrInvalidPlan, p.Name, p.Ordinal, prev)
		}
		prev = p.Ordinal

		for j, c := range p.Commands {
			if strings.TrimSpace(c.Program) == "" {
				return fmt.Errorf("%w: phase %q command %d has no program", ErrInvalidPlan, p.Name, j)
			}
		}
	}
	return nil
}

// Names returns the phase names in order.
func Names(phases []Phase) []string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.Name
	}
	return names
}
