package identity

import "strings"

type Role string

const (
	RoleAdmin    Role = "administrador"
	RoleBarber   Role = "barbero"
	RoleCustomer Role = "cliente"
)

// DefaultRole is assigned at registration when none is given.
const DefaultRole = RoleCustomer

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBarber, RoleCustomer:
		return true
	}
	return false
}

// ParseRole accepts a role name in any case. An empty string is not a role.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.Valid()
}
