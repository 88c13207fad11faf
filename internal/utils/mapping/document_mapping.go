package mapping

import (
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	m := models.Document{
		DocumentID:       d.DocumentID,
		Kind:             string(d.Kind),
		Description:      d.Description,
		PrincipalMinor:   d.PrincipalAmount.Amount,
		TaxMinor:         d.TaxAmount.Amount,
		CurrencyCode:     d.PrincipalAmount.Currency,
		ApprovalState:    string(d.ApprovalState),
		PaymentState:     string(d.PaymentState),
		InvoiceState:     string(d.InvoiceState),
		InvoiceReference: d.InvoiceReference,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.ApprovalRecord != nil {
		action := string(d.ApprovalRecord.Action)
		m.ApprovalActorID = &d.ApprovalRecord.ActorID
		m.ApprovalAction = &action
		m.ApprovalNotes = &d.ApprovalRecord.Notes
		m.ApprovalDecidedAt = &d.ApprovalRecord.DecidedAt
	}
	return m
}

// ToDomainDocument converts a model Document and its ledger rows to a domain Document
func ToDomainDocument(m models.Document, payments []models.PaymentRecord) domain.Document {
	d := domain.Document{
		DocumentID:       m.DocumentID,
		Kind:             domain.DocumentKind(m.Kind),
		Description:      m.Description,
		PrincipalAmount:  domain.NewMoney(m.PrincipalMinor, m.CurrencyCode),
		TaxAmount:        domain.NewMoney(m.TaxMinor, m.CurrencyCode),
		ApprovalState:    domain.ApprovalState(m.ApprovalState),
		PaymentState:     domain.PaymentState(m.PaymentState),
		InvoiceState:     domain.InvoiceState(m.InvoiceState),
		InvoiceReference: m.InvoiceReference,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.ApprovalActorID != nil && m.ApprovalAction != nil && m.ApprovalDecidedAt != nil {
		record := domain.ApprovalRecord{
			ActorID:   *m.ApprovalActorID,
			Action:    domain.ApprovalAction(*m.ApprovalAction),
			DecidedAt: *m.ApprovalDecidedAt,
		}
		if m.ApprovalNotes != nil {
			record.Notes = *m.ApprovalNotes
		}
		d.ApprovalRecord = &record
	}
	if len(payments) > 0 {
		d.Payments = make([]domain.PaymentRecord, len(payments))
		for i, p := range payments {
			d.Payments[i] = ToDomainPaymentRecord(p)
		}
	}
	return d
}

// ToModelPaymentRecord converts a domain PaymentRecord to a model PaymentRecord
func ToModelPaymentRecord(d domain.PaymentRecord) models.PaymentRecord {
	return models.PaymentRecord{
		PaymentID:    d.PaymentID,
		DocumentID:   d.DocumentID,
		AmountMinor:  d.Amount.Amount,
		CurrencyCode: d.Amount.Currency,
		Method:       string(d.Method),
		Reference:    d.Reference,
		EvidenceID:   d.Evidence.EvidenceID,
		RegisteredBy: d.RegisteredBy,
		RegisteredAt: d.RegisteredAt,
	}
}

// ToDomainPaymentRecord converts a model PaymentRecord to a domain PaymentRecord
func ToDomainPaymentRecord(m models.PaymentRecord) domain.PaymentRecord {
	return domain.PaymentRecord{
		PaymentID:    m.PaymentID,
		DocumentID:   m.DocumentID,
		Amount:       domain.NewMoney(m.AmountMinor, m.CurrencyCode),
		Method:       domain.PaymentMethod(m.Method),
		Reference:    m.Reference,
		Evidence:     domain.EvidenceRef{EvidenceID: m.EvidenceID},
		RegisteredBy: m.RegisteredBy,
		RegisteredAt: m.RegisteredAt,
	}
}
