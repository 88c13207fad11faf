package repositories

import (
	"context"
	"time"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DocumentFilter narrows document listings. Empty fields match everything.
type DocumentFilter struct {
	Kind          domain.DocumentKind
	ApprovalState domain.ApprovalState
}

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves a document with its full payment ledger.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a paginated list of documents using token-based pagination.
	// It returns the documents, a token for the next page, and an error.
	ListDocuments(ctx context.Context, filter DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines write operations for document data.
//
// The tx-scoped methods exist so a lifecycle command can lock the document
// row, run its gate checks against the locked state, and apply the result
// inside one database transaction. Concurrent commands against the same
// document serialize on that row lock.
type DocumentWriter interface {
	// SaveDocument persists a newly created document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// FindDocumentByIDForUpdate locks the document row and returns it with its ledger.
	FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error)

	// RecordDecision writes the single approval record and the new approval state.
	RecordDecision(ctx context.Context, tx pgx.Tx, documentID string, record domain.ApprovalRecord, newState domain.ApprovalState) error

	// AppendPayment appends one ledger entry and stores the freshly derived payment state.
	AppendPayment(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord, newState domain.PaymentState) error

	// MarkInvoiced flips the invoice state and stores the emission reference.
	MarkInvoiced(ctx context.Context, tx pgx.Tx, documentID string, invoiceReference string, updatedBy string, updatedAt time.Time) error

	// DeleteDocument removes a document that never left the pending/unpaid state.
	DeleteDocument(ctx context.Context, tx pgx.Tx, documentID string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
