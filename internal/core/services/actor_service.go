package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/clubsalud/findoc_backend/internal/middleware"
	"github.com/clubsalud/findoc_backend/internal/utils"
)

// actorService is the in-repo actor registry: it resolves caller roles and
// manages console accounts.
type actorService struct {
	actorRepo portsrepo.ActorRepositoryFacade
}

// NewActorService creates a new actor registry service.
func NewActorService(actorRepo portsrepo.ActorRepositoryFacade) portssvc.ActorSvcFacade {
	return &actorService{actorRepo: actorRepo}
}

// Ensure actorService implements the portssvc.ActorSvcFacade interface
var _ portssvc.ActorSvcFacade = (*actorService)(nil)

// Authenticate verifies credentials and returns the actor on success.
func (s *actorService) Authenticate(ctx context.Context, email string, password string) (*domain.Actor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, passwordHash, err := s.actorRepo.FindActorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password; do not reveal which.
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up actor by email", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up actor: %w", err)
	}

	if !utils.CheckPasswordHash(password, passwordHash) {
		logger.Warn("Password mismatch during login")
		return nil, ErrInvalidCredentials
	}

	return actor, nil
}

// ResolveRole maps an actor ID to its authority role.
func (s *actorService) ResolveRole(ctx context.Context, actorID string) (domain.Role, error) {
	actor, err := s.actorRepo.FindActorByID(ctx, actorID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve role for actor %s: %w", actorID, err)
	}
	return actor.Role, nil
}

// CreateActor registers a new console actor. Restricted to SuperAdmin callers.
func (s *actorService) CreateActor(ctx context.Context, req dto.CreateActorRequest, creatorActorID string) (*domain.Actor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creatorRole, err := s.ResolveRole(ctx, creatorActorID)
	if err != nil {
		return nil, err
	}
	if creatorRole != domain.RoleSuperAdmin {
		logger.Warn("Actor creation refused", slog.String("creator_role", string(creatorRole)))
		return nil, ErrInsufficientRole
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	actor := domain.Actor{
		ActorID: uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Role:    domain.Role(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	if err := s.actorRepo.SaveActor(ctx, actor, passwordHash); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, req.Email)
		}
		logger.Error("Failed to save actor", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save actor: %w", err)
	}

	logger.Info("Actor created", slog.String("new_actor_id", actor.ActorID), slog.String("role", req.Role))
	return &actor, nil
}

// GetActorByID retrieves one actor.
func (s *actorService) GetActorByID(ctx context.Context, actorID string) (*domain.Actor, error) {
	actor, err := s.actorRepo.FindActorByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find actor %s: %w", actorID, err)
	}
	return actor, nil
}

// ListActors retrieves a page of actors.
func (s *actorService) ListActors(ctx context.Context, limit int, offset int) ([]domain.Actor, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.actorRepo.ListActors(ctx, limit, offset)
}

// EnsureBootstrapActor creates the initial SuperAdmin when the registry is
// empty, so a fresh deployment has a caller able to create the rest.
func (s *actorService) EnsureBootstrapActor(ctx context.Context, name string, email string, password string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.actorRepo.CountActors(ctx)
	if err != nil {
		return fmt.Errorf("failed to count actors: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	now := time.Now().UTC()
	actorID := uuid.NewString()
	actor := domain.Actor{
		ActorID: actorID,
		Name:    name,
		Email:   email,
		Role:    domain.RoleSuperAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID, // self-created
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.actorRepo.SaveActor(ctx, actor, passwordHash); err != nil {
		return fmt.Errorf("failed to save bootstrap actor: %w", err)
	}

	logger.Info("Bootstrap SuperAdmin created", slog.String("actor_id", actor.ActorID), slog.String("email", email))
	return nil
}
