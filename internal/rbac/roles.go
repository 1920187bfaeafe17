package rbac

import (
	"fmt"
	"strings"
)

// Role is the closed set of dashboard roles. Route access is derived from
// these capability sets, never from ad-hoc string lookups, so an unhandled
// role fails loudly instead of falling through.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleStaff  Role = "staff"
	RoleMember Role = "member"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleStaff:
		return RoleStaff, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

type Permission struct {
	Resource string
	Action   string
}

// Capabilities maps each role to the operations it may perform within its gym.
// Owner is a strict superset of staff.
func Capabilities(role Role) []Permission {
	switch role {
	case RoleOwner:
		return append([]Permission{
			{"staff", "create"}, {"staff", "read"}, {"staff", "update"}, {"staff", "delete"},
			{"gym", "update"},
			{"credential", "rotate"},
			{"analytics", "revenue"},
		}, Capabilities(RoleStaff)...)
	case RoleStaff:
		return []Permission{
			{"member", "create"}, {"member", "read"}, {"member", "update"}, {"member", "delete"},
			{"subscription", "create"}, {"subscription", "read"}, {"subscription", "update"},
			{"checkin", "manual"}, {"checkin", "read_all"},
			{"credential", "read"},
		}
	case RoleMember:
		return []Permission{
			{"checkin", "scan"}, {"checkin", "read_own"},
			{"analytics", "read_own"},
			{"subscription", "read_own"},
		}
	default:
		return nil
	}
}
