package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	"github.com/clubsalud/findoc_backend/internal/models"
	"github.com/clubsalud/findoc_backend/internal/utils/mapping"
	"github.com/clubsalud/findoc_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `
	document_id, kind, description, principal_minor, tax_minor, currency_code,
	approval_state, payment_state, invoice_state, invoice_reference,
	approval_actor_id, approval_action, approval_notes, approval_decided_at,
	created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `
	payment_id, document_id, amount_minor, currency_code, method, reference,
	evidence_id, registered_by, registered_at`

// PgxDocumentRepository persists documents and their append-only payment
// ledgers.
type PgxDocumentRepository struct {
	BaseRepository
}

// NewDocumentRepository creates a new repository for document data.
func NewDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryWithTx
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

// SaveDocument persists a newly created document.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (
			document_id, kind, description, principal_minor, tax_minor, currency_code,
			approval_state, payment_state, invoice_state, invoice_reference,
			approval_actor_id, approval_action, approval_notes, approval_decided_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.Kind, m.Description, m.PrincipalMinor, m.TaxMinor, m.CurrencyCode,
		m.ApprovalState, m.PaymentState, m.InvoiceState, m.InvoiceReference,
		m.ApprovalActorID, m.ApprovalAction, m.ApprovalNotes, m.ApprovalDecidedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}
	return nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID, &m.Kind, &m.Description, &m.PrincipalMinor, &m.TaxMinor, &m.CurrencyCode,
		&m.ApprovalState, &m.PaymentState, &m.InvoiceState, &m.InvoiceReference,
		&m.ApprovalActorID, &m.ApprovalAction, &m.ApprovalNotes, &m.ApprovalDecidedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan document", err)
	}
	return &m, nil
}

func (r *PgxDocumentRepository) findPayments(ctx context.Context, q pgxQuerier, documentID string) ([]models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE document_id = $1 ORDER BY registered_at ASC, payment_id ASC;`
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for document "+documentID, err)
	}
	defer rows.Close()

	var payments []models.PaymentRecord
	for rows.Next() {
		var p models.PaymentRecord
		if err := rows.Scan(
			&p.PaymentID, &p.DocumentID, &p.AmountMinor, &p.CurrencyCode, &p.Method,
			&p.Reference, &p.EvidenceID, &p.RegisteredBy, &p.RegisteredAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading payment rows", err)
	}
	return payments, nil
}

func (r *PgxDocumentRepository) findDocument(ctx context.Context, q pgxQuerier, documentID string, forUpdate bool) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1`
	if forUpdate {
		// Serializes concurrent lifecycle commands on the same document.
		query += ` FOR UPDATE`
	}
	query += `;`

	m, err := scanDocument(q.QueryRow(ctx, query, documentID))
	if err != nil {
		return nil, err
	}

	payments, err := r.findPayments(ctx, q, documentID)
	if err != nil {
		return nil, err
	}

	doc := mapping.ToDomainDocument(*m, payments)
	return &doc, nil
}

// FindDocumentByID retrieves a document with its full payment ledger.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	return r.findDocument(ctx, r.Pool, documentID, false)
}

// FindDocumentByIDForUpdate locks the document row and returns it with its ledger.
func (r *PgxDocumentRepository) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error) {
	return r.findDocument(ctx, tx, documentID, true)
}

// RecordDecision writes the single approval record and the new approval state.
func (r *PgxDocumentRepository) RecordDecision(ctx context.Context, tx pgx.Tx, documentID string, record domain.ApprovalRecord, newState domain.ApprovalState) error {
	query := `
		UPDATE documents
		SET approval_state = $2,
			approval_actor_id = $3,
			approval_action = $4,
			approval_notes = $5,
			approval_decided_at = $6,
			last_updated_at = $6,
			last_updated_by = $3
		WHERE document_id = $1 AND approval_state = 'PENDING_APPROVAL';
	`
	tag, err := tx.Exec(ctx, query, documentID, string(newState), record.ActorID, string(record.Action), record.Notes, record.DecidedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record decision for document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s is no longer pending", apperrors.ErrConflict, documentID)
	}
	return nil
}

// AppendPayment appends one ledger entry and stores the freshly derived
// payment state.
func (r *PgxDocumentRepository) AppendPayment(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord, newState domain.PaymentState) error {
	m := mapping.ToModelPaymentRecord(payment)
	insert := `
		INSERT INTO payments (payment_id, document_id, amount_minor, currency_code, method, reference, evidence_id, registered_by, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, insert,
		m.PaymentID, m.DocumentID, m.AmountMinor, m.CurrencyCode, m.Method,
		m.Reference, m.EvidenceID, m.RegisteredBy, m.RegisteredAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	update := `
		UPDATE documents
		SET payment_state = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	if _, err := tx.Exec(ctx, update, m.DocumentID, string(newState), m.RegisteredAt, m.RegisteredBy); err != nil {
		return apperrors.NewAppError(500, "failed to update payment state for document "+m.DocumentID, err)
	}
	return nil
}

// MarkInvoiced flips the invoice state and stores the emission reference.
func (r *PgxDocumentRepository) MarkInvoiced(ctx context.Context, tx pgx.Tx, documentID string, invoiceReference string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE documents
		SET invoice_state = 'INVOICED', invoice_reference = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1 AND invoice_state = 'NOT_INVOICED';
	`
	tag, err := tx.Exec(ctx, query, documentID, invoiceReference, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark document invoiced "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s is already invoiced", apperrors.ErrConflict, documentID)
	}
	return nil
}

// DeleteDocument removes a document row. The payments table restricts the
// delete when ledger entries exist, backing up the engine's deletion policy.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, tx pgx.Tx, documentID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListDocuments retrieves a token-paginated page of documents, newest first.
// The ledger rows for the page are batch-loaded with one query.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter portsrepo.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	var (
		conds []string
		args  []any
	)
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Kind != "" {
		conds = append(conds, "kind = "+addArg(string(filter.Kind)))
	}
	if filter.ApprovalState != "" {
		conds = append(conds, "approval_state = "+addArg(string(filter.ApprovalState)))
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conds = append(conds, fmt.Sprintf("(created_at, document_id) < (%s, %s)", addArg(createdAt), addArg(id)))
	}

	query := `SELECT ` + documentColumns + ` FROM documents`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	// Fetch one extra row to know whether another page exists.
	query += " ORDER BY created_at DESC, document_id DESC LIMIT " + addArg(limit+1) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list documents", err)
	}
	defer rows.Close()

	var modelDocs []models.Document
	for rows.Next() {
		var m models.Document
		if err := rows.Scan(
			&m.DocumentID, &m.Kind, &m.Description, &m.PrincipalMinor, &m.TaxMinor, &m.CurrencyCode,
			&m.ApprovalState, &m.PaymentState, &m.InvoiceState, &m.InvoiceReference,
			&m.ApprovalActorID, &m.ApprovalAction, &m.ApprovalNotes, &m.ApprovalDecidedAt,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		modelDocs = append(modelDocs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading document rows", err)
	}

	var token *string
	if len(modelDocs) > limit {
		modelDocs = modelDocs[:limit]
		last := modelDocs[len(modelDocs)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.DocumentID)
		token = &t
	}

	if len(modelDocs) == 0 {
		return []domain.Document{}, nil, nil
	}

	ids := make([]string, len(modelDocs))
	for i, m := range modelDocs {
		ids[i] = m.DocumentID
	}

	paymentsByDoc, err := r.findPaymentsByDocumentIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	docs := make([]domain.Document, len(modelDocs))
	for i, m := range modelDocs {
		docs[i] = mapping.ToDomainDocument(m, paymentsByDoc[m.DocumentID])
	}
	return docs, token, nil
}

func (r *PgxDocumentRepository) findPaymentsByDocumentIDs(ctx context.Context, documentIDs []string) (map[string][]models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE document_id = ANY($1) ORDER BY registered_at ASC, payment_id ASC;`
	rows, err := r.Pool.Query(ctx, query, documentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for documents", err)
	}
	defer rows.Close()

	grouped := make(map[string][]models.PaymentRecord)
	for rows.Next() {
		var p models.PaymentRecord
		if err := rows.Scan(
			&p.PaymentID, &p.DocumentID, &p.AmountMinor, &p.CurrencyCode, &p.Method,
			&p.Reference, &p.EvidenceID, &p.RegisteredBy, &p.RegisteredAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		grouped[p.DocumentID] = append(grouped[p.DocumentID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading payment rows", err)
	}
	return grouped, nil
}
