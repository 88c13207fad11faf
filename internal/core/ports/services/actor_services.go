package services

import (
	"context"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/dto"
)

// ActorSvcFacade resolves caller identity and role, and manages console actors.
type ActorSvcFacade interface {
	// Authenticate verifies credentials and returns the actor on success.
	Authenticate(ctx context.Context, email string, password string) (*domain.Actor, error)

	// ResolveRole maps an actor ID to its authority role.
	ResolveRole(ctx context.Context, actorID string) (domain.Role, error)

	// CreateActor registers a new actor. Restricted to SuperAdmin callers.
	CreateActor(ctx context.Context, req dto.CreateActorRequest, creatorActorID string) (*domain.Actor, error)

	// GetActorByID retrieves one actor.
	GetActorByID(ctx context.Context, actorID string) (*domain.Actor, error)

	// ListActors retrieves a page of actors.
	ListActors(ctx context.Context, limit int, offset int) ([]domain.Actor, error)

	// EnsureBootstrapActor creates the initial SuperAdmin when no actor exists yet.
	EnsureBootstrapActor(ctx context.Context, name string, email string, password string) error
}
