package repositories

import (
	"context"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
)

// ActorReader defines read operations for actor data
type ActorReader interface {
	// FindActorByID retrieves an actor by its unique identifier.
	FindActorByID(ctx context.Context, actorID string) (*domain.Actor, error)

	// FindActorByEmail retrieves an actor and its password hash for credential checks.
	FindActorByEmail(ctx context.Context, email string) (*domain.Actor, string, error)

	// ListActors retrieves a page of actors.
	ListActors(ctx context.Context, limit int, offset int) ([]domain.Actor, error)

	// CountActors returns the number of registered actors.
	CountActors(ctx context.Context) (int, error)
}

// ActorWriter defines write operations for actor data
type ActorWriter interface {
	// SaveActor persists a new actor together with its credential hash.
	SaveActor(ctx context.Context, actor domain.Actor, passwordHash string) error
}

// ActorRepositoryFacade combines all actor-related repository interfaces
type ActorRepositoryFacade interface {
	ActorReader
	ActorWriter
}
