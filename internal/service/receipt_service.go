package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recibos/internal/logger"
	"recibos/internal/model"
	"recibos/internal/normalize"
	"recibos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateReceiptRequest struct {
	Region            string `json:"region"`
	ClientName        string `json:"client_name" binding:"required"`
	ClientTaxID       string `json:"client_tax_id" binding:"required"`
	PropertyAddress   string `json:"property_address"`
	LiquidatingEntity string `json:"liquidating_entity"`
	Categories        []int  `json:"categories"` // 1-based indexes of the flags to set
	AdministrativeFee string `json:"administrative_fee"`
	DailyExchangeRate string `json:"daily_exchange_rate"`
	TotalAmount       string `json:"total_amount" binding:"required"`
	TransferReference string `json:"transfer_reference"`
	TransactionDate   string `json:"transaction_date" binding:"required"`
	Reconciled        bool   `json:"reconciled"`
	Concept           string `json:"concept"`
	Status            string `json:"status"` // defaults to PAID
}

// UpdateReceiptRequest carries only the fields to change.
type UpdateReceiptRequest struct {
	Region            *string `json:"region"`
	ClientName        *string `json:"client_name"`
	ClientTaxID       *string `json:"client_tax_id"`
	PropertyAddress   *string `json:"property_address"`
	LiquidatingEntity *string `json:"liquidating_entity"`
	Categories        *[]int  `json:"categories"`
	AdministrativeFee *string `json:"administrative_fee"`
	DailyExchangeRate *string `json:"daily_exchange_rate"`
	TotalAmount       *string `json:"total_amount"`
	TransferReference *string `json:"transfer_reference"`
	TransactionDate   *string `json:"transaction_date"`
	Reconciled        *bool   `json:"reconciled"`
	Concept           *string `json:"concept"`
	Status            *string `json:"status"`
}

type ReceiptResponse struct {
	ID                string   `json:"id"`
	ReceiptNumber     int64    `json:"receipt_number"`
	DisplayNumber     string   `json:"display_number"`
	Region            string   `json:"region"`
	ClientName        string   `json:"client_name"`
	ClientTaxID       string   `json:"client_tax_id"`
	PropertyAddress   string   `json:"property_address"`
	LiquidatingEntity string   `json:"liquidating_entity"`
	Categories        []int    `json:"categories"`
	CategoryLabels    []string `json:"category_labels"`
	AdministrativeFee string   `json:"administrative_fee"`
	DailyExchangeRate string   `json:"daily_exchange_rate"`
	TotalAmount       string   `json:"total_amount"`
	TransferReference *string  `json:"transfer_reference"`
	TransactionDate   string   `json:"transaction_date"`
	Reconciled        bool     `json:"reconciled"`
	Concept           string   `json:"concept"`
	Status            string   `json:"status"`
	IsAnnulled        bool     `json:"is_annulled"`
	AnnulledBy        *string  `json:"annulled_by"`
	AnnulledAt        *string  `json:"annulled_at"`
	CreatedBy         string   `json:"created_by"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type ReceiptList struct {
	Items   []ReceiptResponse `json:"items"`
	Total   int64             `json:"total"`
	Summary SummaryResponse   `json:"summary"`
}

// --- Interface ---

type ReceiptService interface {
	CreateReceipt(ctx context.Context, req CreateReceiptRequest, actor string) (ReceiptResponse, error)
	GetReceipt(ctx context.Context, id string) (ReceiptResponse, error)
	FindReceipt(ctx context.Context, id string) (*model.Receipt, error)
	UpdateReceipt(ctx context.Context, id string, req UpdateReceiptRequest, actor string) (ReceiptResponse, error)
	AnnulReceipt(ctx context.Context, id string, actor string) (ReceiptResponse, error)
	ReverseAnnulment(ctx context.Context, id string, actor string) (ReceiptResponse, error)
	ListReceipts(ctx context.Context, criteria repository.ReceiptCriteria, page, limit int) (ReceiptList, error)
	Query(ctx context.Context, criteria repository.ReceiptCriteria) ([]model.Receipt, error)
}

type receiptService struct {
	receiptRepo  repository.ReceiptRepository
	sequenceRepo repository.SequenceRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	events       EventPublisher
	now          func() time.Time
}

func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	sequenceRepo repository.SequenceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	events EventPublisher,
) ReceiptService {
	return &receiptService{
		receiptRepo:  receiptRepo,
		sequenceRepo: sequenceRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		events:       events,
		now:          time.Now,
	}
}

// --- Implementation ---

func (s *receiptService) CreateReceipt(ctx context.Context, req CreateReceiptRequest, actor string) (ReceiptResponse, error) {
	date, err := normalize.ToDate(req.TransactionDate)
	if err != nil {
		return ReceiptResponse{}, fmt.Errorf("%w: transaction_date: %v", ErrInvalidInput, err)
	}
	flags, err := categoryFlags(req.Categories)
	if err != nil {
		return ReceiptResponse{}, err
	}
	status := model.StatusPaid
	if req.Status != "" {
		if status, err = settableStatus(req.Status); err != nil {
			return ReceiptResponse{}, err
		}
	}
	fee, err := parseAmount("administrative_fee", req.AdministrativeFee, 2)
	if err != nil {
		return ReceiptResponse{}, err
	}
	rate, err := parseAmount("daily_exchange_rate", req.DailyExchangeRate, 4)
	if err != nil {
		return ReceiptResponse{}, err
	}
	total, err := parseAmount("total_amount", req.TotalAmount, 2)
	if err != nil {
		return ReceiptResponse{}, err
	}

	receipt := &model.Receipt{
		Region:            normalize.UpperNoDiacritics(req.Region),
		ClientName:        normalize.Title(req.ClientName),
		ClientTaxID:       normalize.TaxID(req.ClientTaxID),
		PropertyAddress:   normalize.Title(req.PropertyAddress),
		LiquidatingEntity: normalize.Upper(req.LiquidatingEntity),
		AdministrativeFee: fee,
		DailyExchangeRate: rate,
		TotalAmount:       total,
		TransferReference: normalize.OptionalUpper(req.TransferReference),
		TransactionDate:   date,
		Reconciled:        req.Reconciled,
		Concept:           normalize.Text(req.Concept),
		Status:            status,
		CreatedBy:         actor,
	}
	receipt.SetFlags(flags)
	if err := validateIdentity(receipt); err != nil {
		return ReceiptResponse{}, err
	}
	receipt.SyncStatus()

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		number, err := s.sequenceRepo.AllocateNext(txCtx, 1)
		if err != nil {
			return fmt.Errorf("failed to allocate receipt number: %w", err)
		}
		receipt.ReceiptNumber = number

		if err := s.receiptRepo.Create(txCtx, receipt); err != nil {
			return translateWriteError(err)
		}
		return s.audit(txCtx, actor, model.ActionCreateReceipt, receipt, nil)
	})
	if err != nil {
		return ReceiptResponse{}, err
	}

	logger.Log.Info().Str("actor", actor).Str("receipt", receipt.DisplayNumber()).Msg("receipt created")
	publish(s.events, EventReceiptCreated, eventPayload(receipt))
	return toReceiptResponse(*receipt), nil
}

func (s *receiptService) GetReceipt(ctx context.Context, id string) (ReceiptResponse, error) {
	receipt, err := s.FindReceipt(ctx, id)
	if err != nil {
		return ReceiptResponse{}, err
	}
	return toReceiptResponse(*receipt), nil
}

func (s *receiptService) FindReceipt(ctx context.Context, id string) (*model.Receipt, error) {
	receiptID, err := parseReceiptID(id)
	if err != nil {
		return nil, err
	}
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, translateLookupError(err)
	}
	return receipt, nil
}

// UpdateReceipt edits an active receipt. Annulled receipts are rejected before
// anything is written; the only way back is ReverseAnnulment.
func (s *receiptService) UpdateReceipt(ctx context.Context, id string, req UpdateReceiptRequest, actor string) (ReceiptResponse, error) {
	receiptID, err := parseReceiptID(id)
	if err != nil {
		return ReceiptResponse{}, err
	}

	var receipt *model.Receipt
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		receipt, findErr = s.receiptRepo.FindByIDForUpdate(txCtx, receiptID)
		if findErr != nil {
			return translateLookupError(findErr)
		}
		if receipt.IsAnnulled {
			return fmt.Errorf("%w: receipt %s", ErrReceiptAnnulled, receipt.DisplayNumber())
		}

		changed, applyErr := req.apply(receipt)
		if applyErr != nil {
			return applyErr
		}
		if len(changed) == 0 {
			return nil
		}
		if err := validateIdentity(receipt); err != nil {
			return err
		}
		receipt.SyncStatus()

		if err := s.receiptRepo.Save(txCtx, receipt); err != nil {
			return translateWriteError(err)
		}
		return s.audit(txCtx, actor, model.ActionUpdateReceipt, receipt, map[string]interface{}{"fields": changed})
	})
	if err != nil {
		return ReceiptResponse{}, err
	}

	publish(s.events, EventReceiptUpdated, eventPayload(receipt))
	return toReceiptResponse(*receipt), nil
}

func (s *receiptService) AnnulReceipt(ctx context.Context, id string, actor string) (ReceiptResponse, error) {
	receipt, err := s.transition(ctx, id, actor, model.ActionAnnulReceipt, func(r *model.Receipt) error {
		if r.IsAnnulled {
			return fmt.Errorf("%w: receipt %s", ErrAlreadyAnnulled, r.DisplayNumber())
		}
		r.Annul(actor, s.now().UTC())
		return nil
	})
	if err != nil {
		return ReceiptResponse{}, err
	}

	logger.Log.Info().Str("actor", actor).Str("receipt", receipt.DisplayNumber()).Msg("receipt annulled")
	publish(s.events, EventReceiptAnnulled, eventPayload(receipt))
	return toReceiptResponse(*receipt), nil
}

func (s *receiptService) ReverseAnnulment(ctx context.Context, id string, actor string) (ReceiptResponse, error) {
	receipt, err := s.transition(ctx, id, actor, model.ActionReverseAnnulment, func(r *model.Receipt) error {
		if !r.IsAnnulled {
			return fmt.Errorf("%w: receipt %s", ErrNotAnnulled, r.DisplayNumber())
		}
		r.Reverse()
		return nil
	})
	if err != nil {
		return ReceiptResponse{}, err
	}

	logger.Log.Info().Str("actor", actor).Str("receipt", receipt.DisplayNumber()).Msg("receipt annulment reversed")
	publish(s.events, EventAnnulmentReversed, eventPayload(receipt))
	return toReceiptResponse(*receipt), nil
}

// transition locks the receipt, applies a lifecycle change and audits it.
func (s *receiptService) transition(ctx context.Context, id, actor, action string, change func(*model.Receipt) error) (*model.Receipt, error) {
	receiptID, err := parseReceiptID(id)
	if err != nil {
		return nil, err
	}

	var receipt *model.Receipt
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		receipt, findErr = s.receiptRepo.FindByIDForUpdate(txCtx, receiptID)
		if findErr != nil {
			return translateLookupError(findErr)
		}
		if err := change(receipt); err != nil {
			return err
		}
		if err := s.receiptRepo.Save(txCtx, receipt); err != nil {
			return fmt.Errorf("failed to save receipt: %w", err)
		}
		return s.audit(txCtx, actor, action, receipt, nil)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, criteria repository.ReceiptCriteria, page, limit int) (ReceiptList, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	receipts, total, err := s.receiptRepo.List(ctx, criteria, page, limit)
	if err != nil {
		return ReceiptList{}, fmt.Errorf("failed to fetch receipts: %w", err)
	}
	amounts, err := s.receiptRepo.TotalAmounts(ctx, criteria)
	if err != nil {
		return ReceiptList{}, fmt.Errorf("failed to total receipts: %w", err)
	}

	items := make([]ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		items = append(items, toReceiptResponse(r))
	}
	summary := Summary{Count: len(amounts), TotalAmount: sumAmounts(amounts)}

	return ReceiptList{Items: items, Total: total, Summary: summary.Response()}, nil
}

func (s *receiptService) Query(ctx context.Context, criteria repository.ReceiptCriteria) ([]model.Receipt, error) {
	receipts, err := s.receiptRepo.Query(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipts: %w", err)
	}
	return receipts, nil
}

func (s *receiptService) audit(ctx context.Context, actor, action string, r *model.Receipt, extra map[string]interface{}) error {
	payload := map[string]interface{}{
		"receipt_number": r.ReceiptNumber,
		"status":         r.Status,
		"total_amount":   r.TotalAmount.StringFixed(2),
	}
	for k, v := range extra {
		payload[k] = v
	}
	details, _ := json.Marshal(payload)

	entry := &model.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityID:   r.ID.String(),
		EntityName: r.DisplayNumber(),
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// --- Helpers ---

func (req UpdateReceiptRequest) apply(r *model.Receipt) ([]string, error) {
	var changed []string
	setText := func(field string, value *string, policy func(any) string, dst *string) {
		if value != nil {
			*dst = policy(*value)
			changed = append(changed, field)
		}
	}
	setAmount := func(field string, value *string, places int32, dst *decimal.Decimal) error {
		if value == nil {
			return nil
		}
		amount, err := parseAmount(field, *value, places)
		if err != nil {
			return err
		}
		*dst = amount
		changed = append(changed, field)
		return nil
	}

	setText("region", req.Region, normalize.UpperNoDiacritics, &r.Region)
	setText("client_name", req.ClientName, normalize.Title, &r.ClientName)
	setText("client_tax_id", req.ClientTaxID, normalize.TaxID, &r.ClientTaxID)
	setText("property_address", req.PropertyAddress, normalize.Title, &r.PropertyAddress)
	setText("liquidating_entity", req.LiquidatingEntity, normalize.Upper, &r.LiquidatingEntity)
	setText("concept", req.Concept, normalize.Text, &r.Concept)
	if err := setAmount("administrative_fee", req.AdministrativeFee, 2, &r.AdministrativeFee); err != nil {
		return nil, err
	}
	if err := setAmount("daily_exchange_rate", req.DailyExchangeRate, 4, &r.DailyExchangeRate); err != nil {
		return nil, err
	}
	if err := setAmount("total_amount", req.TotalAmount, 2, &r.TotalAmount); err != nil {
		return nil, err
	}

	if req.Categories != nil {
		flags, err := categoryFlags(*req.Categories)
		if err != nil {
			return nil, err
		}
		r.SetFlags(flags)
		changed = append(changed, "categories")
	}
	if req.TransferReference != nil {
		r.TransferReference = normalize.OptionalUpper(*req.TransferReference)
		changed = append(changed, "transfer_reference")
	}
	if req.TransactionDate != nil {
		date, err := normalize.ToDate(*req.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction_date: %v", ErrInvalidInput, err)
		}
		r.TransactionDate = date
		changed = append(changed, "transaction_date")
	}
	if req.Reconciled != nil {
		r.Reconciled = *req.Reconciled
		changed = append(changed, "reconciled")
	}
	if req.Status != nil {
		status, err := settableStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		r.Status = status
		changed = append(changed, "status")
	}

	return changed, nil
}

// parseAmount is strict: unlike spreadsheet cells, API input that is not a number
// is rejected rather than stored as zero.
func parseAmount(field, raw string, places int32) (decimal.Decimal, error) {
	amount, err := normalize.ParseDecimal(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return amount.Round(places), nil
}

// settableStatus parses a status a client may set directly. ANNULLED is only
// reachable through AnnulReceipt.
func settableStatus(raw string) (string, error) {
	status, ok := model.ParseStatus(raw)
	if !ok || status == model.StatusAnnulled {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func categoryFlags(indexes []int) ([model.CategoryCount]bool, error) {
	var flags [model.CategoryCount]bool
	for _, index := range indexes {
		if _, ok := model.CategoryByIndex(index); !ok {
			return flags, fmt.Errorf("%w: unknown category %d", ErrInvalidInput, index)
		}
		flags[index-1] = true
	}
	return flags, nil
}

func validateIdentity(r *model.Receipt) error {
	if r.ClientName == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	if r.ClientTaxID == "" {
		return fmt.Errorf("%w: client_tax_id is required", ErrInvalidInput)
	}
	return nil
}

func parseReceiptID(id string) (uuid.UUID, error) {
	receiptID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidReceiptID, err)
	}
	return receiptID, nil
}

func translateLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReceiptNotFound
	}
	return fmt.Errorf("failed to load receipt: %w", err)
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateReference, err)
	}
	return fmt.Errorf("failed to save receipt: %w", err)
}

func eventPayload(r *model.Receipt) map[string]interface{} {
	return map[string]interface{}{
		"id":             r.ID.String(),
		"receipt_number": r.DisplayNumber(),
		"status":         r.Status,
	}
}

// --- Mapping ---

func toReceiptResponse(r model.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:                r.ID.String(),
		ReceiptNumber:     r.ReceiptNumber,
		DisplayNumber:     r.DisplayNumber(),
		Region:            r.Region,
		ClientName:        r.ClientName,
		ClientTaxID:       r.ClientTaxID,
		PropertyAddress:   r.PropertyAddress,
		LiquidatingEntity: r.LiquidatingEntity,
		Categories:        []int{},
		CategoryLabels:    r.CategoryLabels(),
		AdministrativeFee: r.AdministrativeFee.StringFixed(2),
		DailyExchangeRate: r.DailyExchangeRate.StringFixed(4),
		TotalAmount:       r.TotalAmount.StringFixed(2),
		TransferReference: r.TransferReference,
		TransactionDate:   r.TransactionDate.Format("2006-01-02"),
		Reconciled:        r.Reconciled,
		Concept:           r.Concept,
		Status:            r.Status,
		IsAnnulled:        r.IsAnnulled,
		AnnulledBy:        r.AnnulledBy,
		CreatedBy:         r.CreatedBy,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}
	for i, on := range r.Flags() {
		if on {
			resp.Categories = append(resp.Categories, i+1)
		}
	}
	if r.AnnulledAt != nil {
		at := r.AnnulledAt.Format(time.RFC3339)
		resp.AnnulledAt = &at
	}
	return resp
}
