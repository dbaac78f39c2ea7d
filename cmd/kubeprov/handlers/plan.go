package handlers

import (
	"github.com/imamik/kubeprov/internal/plan"
)

// Plan prints the commands a role would run without touching any host.
func Plan(roleName, configPath string) error {
	role, err := plan.ParseRole(roleName)
	if err != nil {
		return err
	}
	if err := loadDotEnv(); err != nil {
		return err
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	opts, err := cfg.PlanOptions()
	if err != nil {
		return err
	}
	phases, err := plan.Phases(role, opts)
	if err != nil {
		return err
	}
	return plan.Describe(stdout, role, phases)
}
