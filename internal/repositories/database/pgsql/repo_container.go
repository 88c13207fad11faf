package pgsql

import (
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo: NewDocumentRepository(dbPool),
		ActorRepo:    NewActorRepository(dbPool),
		EvidenceRepo: NewEvidenceRepository(dbPool),
	}
}
