package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recibos/internal/model"
	"recibos/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func createRequest(name, taxID string) CreateReceiptRequest {
	return CreateReceiptRequest{
		Region:          "Táchira",
		ClientName:      name,
		ClientTaxID:     taxID,
		TotalAmount:     "250,50",
		TransactionDate: "2024-04-02",
		Categories:      []int{2},
		Concept:         "Pago",
	}
}

func TestReceiptService_CreateReceipt(t *testing.T) {
	f := setup(t)

	first, err := f.service.CreateReceipt(f.ctx, createRequest("ana pérez", "v-1"), "operador")
	require.NoError(t, err)
	second, err := f.service.CreateReceipt(f.ctx, createRequest("luis", "v-2"), "operador")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ReceiptNumber)
	assert.Equal(t, "0002", second.DisplayNumber)
	assert.Equal(t, "Ana Pérez", first.ClientName)
	assert.Equal(t, "TACHIRA", first.Region)
	assert.Equal(t, "250.50", first.TotalAmount)
	assert.Equal(t, []int{2}, first.Categories)
	assert.Equal(t, []string{model.Categories[1].Label}, first.CategoryLabels)
	assert.Equal(t, model.StatusPaid, first.Status)
	assert.Equal(t, "operador", first.CreatedBy)
	assert.Equal(t, []string{model.ActionCreateReceipt, model.ActionCreateReceipt}, f.auditActions(t))

	t.Run("rejects annulled status", func(t *testing.T) {
		req := createRequest("eva", "v-3")
		req.Status = "annulled"
		_, err := f.service.CreateReceipt(f.ctx, req, "operador")
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		req := createRequest("eva", "v-3")
		req.Categories = []int{11}
		_, err := f.service.CreateReceipt(f.ctx, req, "operador")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects bad dates", func(t *testing.T) {
		req := createRequest("eva", "v-3")
		req.TransactionDate = "ayer"
		_, err := f.service.CreateReceipt(f.ctx, req, "operador")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects non numeric amounts", func(t *testing.T) {
		req := createRequest("eva", "v-3")
		req.TotalAmount = "abc"
		_, err := f.service.CreateReceipt(f.ctx, req, "operador")
		require.ErrorIs(t, err, ErrInvalidInput)
		require.ErrorContains(t, err, "total_amount")

		req = createRequest("eva", "v-3")
		req.AdministrativeFee = "12abc34"
		_, err = f.service.CreateReceipt(f.ctx, req, "operador")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects blank identity", func(t *testing.T) {
		_, err := f.service.CreateReceipt(f.ctx, createRequest("   ", "v-3"), "operador")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate transfer reference", func(t *testing.T) {
		req := createRequest("eva", "v-3")
		req.TransferReference = "ref-1"
		_, err := f.service.CreateReceipt(f.ctx, req, "operador")
		require.NoError(t, err)

		req.TransferReference = "REF-1"
		_, err = f.service.CreateReceipt(f.ctx, req, "operador")
		require.ErrorIs(t, err, ErrDuplicateReference)
	})

	assert.Equal(t, int64(3), f.count(t))
}

func TestReceiptService_AnnulEditReverse(t *testing.T) {
	f := setup(t)

	created, err := f.service.CreateReceipt(f.ctx, createRequest("ana", "v-1"), "operador")
	require.NoError(t, err)

	annulled, err := f.service.AnnulReceipt(f.ctx, created.ID, "supervisor")
	require.NoError(t, err)
	assert.True(t, annulled.IsAnnulled)
	assert.Equal(t, model.StatusAnnulled, annulled.Status)
	require.NotNil(t, annulled.AnnulledBy)
	assert.Equal(t, "supervisor", *annulled.AnnulledBy)
	assert.NotNil(t, annulled.AnnulledAt)

	_, err = f.service.AnnulReceipt(f.ctx, created.ID, "supervisor")
	require.ErrorIs(t, err, ErrAlreadyAnnulled)

	_, err = f.service.UpdateReceipt(f.ctx, created.ID, UpdateReceiptRequest{Concept: ptr("cambiado")}, "operador")
	require.ErrorIs(t, err, ErrReceiptAnnulled)
	assert.Contains(t, err.Error(), "0001")

	stored, err := f.service.FindReceipt(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pago", stored.Concept)
	assert.True(t, stored.IsAnnulled)

	reversed, err := f.service.ReverseAnnulment(f.ctx, created.ID, "admin")
	require.NoError(t, err)
	assert.False(t, reversed.IsAnnulled)
	assert.Equal(t, model.StatusPaid, reversed.Status)
	assert.Nil(t, reversed.AnnulledBy)
	assert.Nil(t, reversed.AnnulledAt)

	stored, err = f.service.FindReceipt(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AnnulledBy)
	assert.Nil(t, stored.AnnulledAt)
	assert.Equal(t, model.StatusPaid, stored.Status)

	_, err = f.service.ReverseAnnulment(f.ctx, created.ID, "admin")
	require.ErrorIs(t, err, ErrNotAnnulled)

	assert.Equal(t, []string{
		model.ActionCreateReceipt,
		model.ActionAnnulReceipt,
		model.ActionReverseAnnulment,
	}, f.auditActions(t))
	assert.Equal(t, []string{EventReceiptCreated, EventReceiptAnnulled, EventAnnulmentReversed}, f.events.Events())
}

func TestReceiptService_UpdateReceipt(t *testing.T) {
	f := setup(t)

	created, err := f.service.CreateReceipt(f.ctx, createRequest("ana", "v-1"), "operador")
	require.NoError(t, err)

	updated, err := f.service.UpdateReceipt(f.ctx, created.ID, UpdateReceiptRequest{
		Concept:     ptr("  pago   parcial "),
		TotalAmount: ptr("1.000,25"),
		Categories:  &[]int{1, 10},
		Reconciled:  ptr(true),
		Status:      ptr("under review"),
	}, "operador")
	require.NoError(t, err)
	assert.Equal(t, "pago parcial", updated.Concept)
	assert.Equal(t, "1000.25", updated.TotalAmount)
	assert.Equal(t, []int{1, 10}, updated.Categories)
	assert.True(t, updated.Reconciled)
	assert.Equal(t, model.StatusUnderReview, updated.Status)
	assert.Equal(t, created.ReceiptNumber, updated.ReceiptNumber)
	assert.Equal(t, "Ana", updated.ClientName)

	t.Run("annulled status is not settable", func(t *testing.T) {
		_, err := f.service.UpdateReceipt(f.ctx, created.ID, UpdateReceiptRequest{Status: ptr("ANNULLED")}, "operador")
		require.ErrorIs(t, err, ErrInvalidStatus)

		stored, err := f.service.FindReceipt(f.ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsAnnulled)
		assert.Equal(t, model.StatusUnderReview, stored.Status)
	})

	t.Run("non numeric amount leaves the receipt untouched", func(t *testing.T) {
		_, err := f.service.UpdateReceipt(f.ctx, created.ID, UpdateReceiptRequest{
			Concept:     ptr("otro"),
			TotalAmount: ptr("N/D 5"),
		}, "operador")
		require.ErrorIs(t, err, ErrInvalidInput)

		stored, err := f.service.FindReceipt(f.ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "1000.25", stored.TotalAmount.StringFixed(2))
		assert.Equal(t, "pago parcial", stored.Concept)
	})

	t.Run("blank tax id is rejected", func(t *testing.T) {
		_, err := f.service.UpdateReceipt(f.ctx, created.ID, UpdateReceiptRequest{ClientTaxID: ptr(" - ")}, "operador")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown receipt", func(t *testing.T) {
		_, err := f.service.UpdateReceipt(f.ctx, uuid.NewString(), UpdateReceiptRequest{}, "operador")
		require.ErrorIs(t, err, ErrReceiptNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := f.service.GetReceipt(f.ctx, "42")
		require.ErrorIs(t, err, ErrInvalidReceiptID)
	})
}

func TestReceiptService_ListReceipts(t *testing.T) {
	f := setup(t)

	amounts := []string{"0,10", "0,20", "1.234,56", "10,05"}
	for i, amount := range amounts {
		req := createRequest("cliente", "v-1")
		req.TotalAmount = amount
		req.TransactionDate = []string{"2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08"}[i]
		_, err := f.service.CreateReceipt(f.ctx, req, "operador")
		require.NoError(t, err)
	}

	list, err := f.service.ListReceipts(f.ctx, repository.ReceiptCriteria{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, int64(4), list.Total)
	assert.Equal(t, "0004", list.Items[0].DisplayNumber)
	assert.Equal(t, 4, list.Summary.Count)
	assert.Equal(t, "1244.91", list.Summary.TotalAmount)
}
