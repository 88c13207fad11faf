package domain

import "time"

// Role is the authority level resolved for a caller. Gates declare their own
// minimal allowed-role sets; nothing outside the engine re-checks roles.
type Role string

const (
	RoleReception  Role = "RECEPTION"
	RoleFinance    Role = "FINANCE"
	RoleBoard      Role = "BOARD"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleDoctor     Role = "DOCTOR"
	RoleMember     Role = "MEMBER"
)

// Actor represents a console user in the domain.
type Actor struct {
	ActorID string `json:"actorID"` // Primary Key (UUID)
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
