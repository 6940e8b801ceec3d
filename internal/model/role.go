package model

type RoleName string

const (
	RoleAdmin  RoleName = "admin"
	RoleMember RoleName = "member"
)

func (r RoleName) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

type Role struct {
	ID   int16    `json:"id"`
	Name RoleName `json:"name"`
}

// HasAnyRole reports whether roles contains at least one of want.
func HasAnyRole(roles []Role, want ...RoleName) bool {
	for _, r := range roles {
		for _, w := range want {
			if r.Name == w {
				return true
			}
		}
	}
	return false
}
