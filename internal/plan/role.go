package plan

import (
	"fmt"
	"strings"
)

// Role is the kind of node a plan provisions.
type Role string

const (
	RoleMaster Role = "master"
	RoleWorker Role = "worker"
	RoleVerify Role = "verify"
)

// Roles lists every supported role.
func Roles() []Role {
	return []Role{RoleMaster, RoleWorker, RoleVerify}
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleMaster, RoleWorker, RoleVerify:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q (expected master, worker or verify)", ErrUnknownRole, s)
}

// DefaultHostname returns the hostname assigned to a node of this role.
func (r Role) DefaultHostname() string {
	switch r {
	case RoleMaster:
		return "master-node"
	case RoleWorker:
		return "worker-node"
	}
	return ""
}
