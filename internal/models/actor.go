package models

import "time"

// Actor is the database shape of a console actor.
type Actor struct {
	ActorID      string `json:"actorID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
