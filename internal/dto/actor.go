package dto

import (
	"time"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
)

// LoginRequest is the credential payload for token issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the bearer token and the resolved actor identity.
type LoginResponse struct {
	Token string        `json:"token"`
	Actor ActorResponse `json:"actor"`
}

// CreateActorRequest registers a new console actor. Only SuperAdmin may call it.
type CreateActorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=RECEPTION FINANCE BOARD SUPER_ADMIN DOCTOR MEMBER"`
}

// ActorResponse is the API shape of an actor.
type ActorResponse struct {
	ActorID   string    `json:"actorID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToActorResponse converts a domain Actor to its API shape.
func ToActorResponse(a *domain.Actor) ActorResponse {
	return ActorResponse{
		ActorID:   a.ActorID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

// ToActorResponses converts a slice of domain Actors.
func ToActorResponses(actors []domain.Actor) []ActorResponse {
	out := make([]ActorResponse, len(actors))
	for i := range actors {
		out[i] = ToActorResponse(&actors[i])
	}
	return out
}
