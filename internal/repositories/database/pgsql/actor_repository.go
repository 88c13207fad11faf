package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	"github.com/clubsalud/findoc_backend/internal/models"
	"github.com/clubsalud/findoc_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const actorColumns = `actor_id, name, email, role, password_hash, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

const uniqueViolationCode = "23505"

// PgxActorRepository persists the actor registry.
type PgxActorRepository struct {
	BaseRepository
}

// NewActorRepository creates a new repository for actor data.
func NewActorRepository(pool *pgxpool.Pool) portsrepo.ActorRepositoryFacade {
	return &PgxActorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxActorRepository implements portsrepo.ActorRepositoryFacade
var _ portsrepo.ActorRepositoryFacade = (*PgxActorRepository)(nil)

// SaveActor persists a newly registered actor with its credential hash.
func (r *PgxActorRepository) SaveActor(ctx context.Context, actor domain.Actor, passwordHash string) error {
	m := mapping.ToModelActor(actor)
	query := `
		INSERT INTO actors (actor_id, name, email, role, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ActorID, m.Name, m.Email, m.Role, passwordHash,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: actor with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return apperrors.NewAppError(500, "failed to insert actor "+m.ActorID, err)
	}
	return nil
}

func scanActor(row pgx.Row) (*models.Actor, error) {
	var m models.Actor
	err := row.Scan(
		&m.ActorID, &m.Name, &m.Email, &m.Role, &m.PasswordHash,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan actor", err)
	}
	return &m, nil
}

// FindActorByID retrieves an active actor by its identifier.
func (r *PgxActorRepository) FindActorByID(ctx context.Context, actorID string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE actor_id = $1 AND deleted_at IS NULL;`
	m, err := scanActor(r.Pool.QueryRow(ctx, query, actorID))
	if err != nil {
		return nil, err
	}
	actor := mapping.ToDomainActor(*m)
	return &actor, nil
}

// FindActorByEmail retrieves an active actor and its credential hash for
// authentication.
func (r *PgxActorRepository) FindActorByEmail(ctx context.Context, email string) (*domain.Actor, string, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE email = $1 AND deleted_at IS NULL;`
	m, err := scanActor(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, "", err
	}
	actor := mapping.ToDomainActor(*m)
	return &actor, m.PasswordHash, nil
}

// ListActors retrieves a page of active actors ordered by creation time.
func (r *PgxActorRepository) ListActors(ctx context.Context, limit int, offset int) ([]domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE deleted_at IS NULL ORDER BY created_at ASC, actor_id ASC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list actors", err)
	}
	defer rows.Close()

	var actors []domain.Actor
	for rows.Next() {
		var m models.Actor
		if err := rows.Scan(
			&m.ActorID, &m.Name, &m.Email, &m.Role, &m.PasswordHash,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan actor row", err)
		}
		actors = append(actors, mapping.ToDomainActor(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading actor rows", err)
	}
	return actors, nil
}

// CountActors reports how many active actors exist. Used to decide whether
// the bootstrap administrator must be seeded.
func (r *PgxActorRepository) CountActors(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM actors WHERE deleted_at IS NULL;`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count actors", err)
	}
	return count, nil
}
