package domain_test

import (
	"testing"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func paymentOf(minor int64) domain.PaymentRecord {
	return domain.PaymentRecord{
		Amount: domain.NewMoney(minor, "GTQ"),
	}
}

func TestPaidTotal_EmptyLedger(t *testing.T) {
	doc := domain.Document{PrincipalAmount: domain.NewMoney(100000, "GTQ")}
	assert.Equal(t, int64(0), doc.PaidTotal().Amount)
	assert.Equal(t, "GTQ", doc.PaidTotal().Currency)
}

func TestPaidTotal_SumsAllEntries(t *testing.T) {
	doc := domain.Document{
		PrincipalAmount: domain.NewMoney(100000, "GTQ"),
		Payments:        []domain.PaymentRecord{paymentOf(60000), paymentOf(30000)},
	}
	assert.Equal(t, int64(90000), doc.PaidTotal().Amount)
	assert.Equal(t, int64(10000), doc.RemainingBalance().Amount)
}

func TestDerivePaymentState_Boundaries(t *testing.T) {
	principal := domain.NewMoney(100000, "GTQ")

	assert.Equal(t, domain.Unpaid, domain.DerivePaymentState(domain.NewMoney(0, "GTQ"), principal))
	assert.Equal(t, domain.Partial, domain.DerivePaymentState(domain.NewMoney(1, "GTQ"), principal))
	assert.Equal(t, domain.Partial, domain.DerivePaymentState(domain.NewMoney(99999, "GTQ"), principal))
	assert.Equal(t, domain.Paid, domain.DerivePaymentState(domain.NewMoney(100000, "GTQ"), principal))
}
