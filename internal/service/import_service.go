package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"recibos/internal/logger"
	"recibos/internal/model"
	"recibos/internal/normalize"
	"recibos/internal/repository"
	"recibos/internal/spreadsheet"

	"gorm.io/gorm"
)

// --- DTOs ---

type ImportResult struct {
	Success     bool     `json:"success"`
	CreatedIDs  []string `json:"created_ids"`
	Created     int      `json:"created"`
	Skipped     int      `json:"skipped"`
	FirstNumber string   `json:"first_number,omitempty"`
	LastNumber  string   `json:"last_number,omitempty"`
	Message     string   `json:"message"`
}

// --- Interface ---

type ImportService interface {
	Import(ctx context.Context, content []byte, actor string) (ImportResult, error)
}

type importService struct {
	reader       *spreadsheet.Reader
	receiptRepo  repository.ReceiptRepository
	sequenceRepo repository.SequenceRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	events       EventPublisher
}

func NewImportService(
	reader *spreadsheet.Reader,
	receiptRepo repository.ReceiptRepository,
	sequenceRepo repository.SequenceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	events EventPublisher,
) ImportService {
	return &importService{
		reader:       reader,
		receiptRepo:  receiptRepo,
		sequenceRepo: sequenceRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		events:       events,
	}
}

type pendingReceipt struct {
	row     int
	receipt *model.Receipt
}

// --- Implementation ---

// Import creates one receipt per data row of the upload, all or nothing.
//
// Every row is parsed and validated before the transaction opens. The transaction
// then allocates one contiguous number range for the batch, inserts the receipts
// and writes the audit entry; any failure rolls the whole batch back.
func (s *importService) Import(ctx context.Context, content []byte, actor string) (ImportResult, error) {
	rows, err := s.reader.Read(content)
	if err != nil {
		return s.fail(actor, s.readError(err))
	}

	pending := make([]pendingReceipt, 0, len(rows))
	refRows := make(map[string]int)
	skipped := 0
	for _, row := range rows {
		receipt, skip, err := parseRow(row, actor)
		if err != nil {
			return s.fail(actor, err)
		}
		if skip {
			skipped++
			continue
		}
		if ref := receipt.TransferReference; ref != nil {
			if _, dup := refRows[*ref]; dup {
				return s.fail(actor, &ImportError{
					Kind:  ImportConflict,
					Row:   row.Number,
					Field: spreadsheet.ColTransferReference.Header(),
					Value: *ref,
				})
			}
			refRows[*ref] = row.Number
		}
		pending = append(pending, pendingReceipt{row: row.Number, receipt: receipt})
	}

	if len(pending) == 0 {
		return ImportResult{
			Success:    true,
			CreatedIDs: []string{},
			Skipped:    skipped,
			Message:    fmt.Sprintf("no receipts to import (%d rows skipped)", skipped),
		}, nil
	}

	receipts := make([]*model.Receipt, len(pending))
	for i, p := range pending {
		receipts[i] = p.receipt
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkReferences(txCtx, pending); err != nil {
			return err
		}

		start, err := s.sequenceRepo.AllocateNext(txCtx, len(receipts))
		if err != nil {
			return fmt.Errorf("failed to allocate receipt numbers: %w", err)
		}
		for i, r := range receipts {
			r.ReceiptNumber = start + int64(i)
		}

		if err := s.receiptRepo.CreateBatch(txCtx, receipts); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &ImportError{Kind: ImportConflict, Err: err}
			}
			return fmt.Errorf("failed to insert receipts: %w", err)
		}

		first, last := receipts[0], receipts[len(receipts)-1]
		details, _ := json.Marshal(map[string]interface{}{
			"count":   len(receipts),
			"first":   first.DisplayNumber(),
			"last":    last.DisplayNumber(),
			"skipped": skipped,
		})
		audit := &model.AuditLog{
			Actor:      actor,
			Action:     model.ActionImportReceipts,
			EntityID:   first.ID.String(),
			EntityName: first.DisplayNumber() + "-" + last.DisplayNumber(),
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		var importErr *ImportError
		if !errors.As(err, &importErr) {
			importErr = &ImportError{Kind: ImportUnknown, Err: err}
		}
		return s.fail(actor, importErr)
	}

	result := ImportResult{
		Success:     true,
		CreatedIDs:  make([]string, len(receipts)),
		Created:     len(receipts),
		Skipped:     skipped,
		FirstNumber: receipts[0].DisplayNumber(),
		LastNumber:  receipts[len(receipts)-1].DisplayNumber(),
	}
	for i, r := range receipts {
		result.CreatedIDs[i] = r.ID.String()
	}
	result.Message = fmt.Sprintf("imported %d receipts from %s to %s", result.Created, result.FirstNumber, result.LastNumber)
	if skipped > 0 {
		result.Message += fmt.Sprintf(" (%d rows skipped)", skipped)
	}

	logger.Log.Info().
		Str("actor", actor).
		Int("created", result.Created).
		Int("skipped", skipped).
		Str("first", result.FirstNumber).
		Str("last", result.LastNumber).
		Msg("receipts imported")

	publish(s.events, EventReceiptsImported, map[string]interface{}{
		"count": result.Created,
		"first": result.FirstNumber,
		"last":  result.LastNumber,
	})

	return result, nil
}

func (s *importService) checkReferences(ctx context.Context, pending []pendingReceipt) error {
	refs := make([]string, 0, len(pending))
	for _, p := range pending {
		if p.receipt.TransferReference != nil {
			refs = append(refs, *p.receipt.TransferReference)
		}
	}
	existing, err := s.receiptRepo.ExistingReferences(ctx, refs)
	if err != nil {
		return fmt.Errorf("failed to check transfer references: %w", err)
	}
	if len(existing) == 0 {
		return nil
	}

	taken := make(map[string]bool, len(existing))
	for _, ref := range existing {
		taken[ref] = true
	}
	for _, p := range pending {
		if ref := p.receipt.TransferReference; ref != nil && taken[*ref] {
			return &ImportError{
				Kind:  ImportConflict,
				Row:   p.row,
				Field: spreadsheet.ColTransferReference.Header(),
				Value: *ref,
			}
		}
	}
	return nil
}

func (s *importService) fail(actor string, err error) (ImportResult, error) {
	event := logger.Log.Warn().Err(err).Str("actor", actor)
	var importErr *ImportError
	if errors.As(err, &importErr) {
		event = event.Str("kind", string(importErr.Kind)).Int("row", importErr.Row)
	}
	event.Msg("receipt import rejected")

	return ImportResult{Success: false, CreatedIDs: []string{}, Message: err.Error()}, err
}

func (s *importService) readError(err error) *ImportError {
	var colErr *spreadsheet.ColumnCountError
	switch {
	case errors.As(err, &colErr):
		return &ImportError{Kind: ImportColumnCountMismatch, Row: colErr.Row, Err: err}
	case errors.Is(err, spreadsheet.ErrMissingSheet):
		return &ImportError{Kind: ImportMissingSheet, Value: s.reader.Template().SheetName, Err: err}
	case errors.Is(err, spreadsheet.ErrInvalidFile):
		return &ImportError{Kind: ImportInvalidFile, Err: err}
	}
	return &ImportError{Kind: ImportUnknown, Err: err}
}

// parseRow maps one template row onto a receipt. Rows without both name and tax
// ID are trailing filler and are skipped.
func parseRow(row spreadsheet.Row, actor string) (receipt *model.Receipt, skip bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			receipt, skip = nil, false
			err = &ImportError{Kind: ImportUnknown, Row: row.Number, Err: fmt.Errorf("%v", r)}
		}
	}()

	name := row.Cell(spreadsheet.ColName)
	taxID := row.Cell(spreadsheet.ColTaxID)
	if normalize.IsBlank(name) && normalize.IsBlank(taxID) {
		return nil, true, nil
	}
	if normalize.IsBlank(taxID) {
		return nil, false, &ImportError{
			Kind:  ImportMissingRequiredField,
			Row:   row.Number,
			Field: spreadsheet.ColTaxID.Header(),
		}
	}

	rawDate := row.Cell(spreadsheet.ColDate)
	date, err := normalize.ToDate(rawDate)
	if err != nil {
		return nil, false, &ImportError{
			Kind:  ImportInvalidDate,
			Row:   row.Number,
			Field: spreadsheet.ColDate.Header(),
			Value: rawDate,
			Err:   err,
		}
	}

	receipt = &model.Receipt{
		Region:            normalize.UpperNoDiacritics(row.Cell(spreadsheet.ColRegion)),
		ClientName:        normalize.Title(name),
		ClientTaxID:       normalize.TaxID(taxID),
		PropertyAddress:   normalize.Title(row.Cell(spreadsheet.ColAddress)),
		LiquidatingEntity: normalize.Upper(row.Cell(spreadsheet.ColLiquidatingEntity)),
		AdministrativeFee: normalize.ToDecimal(row.Cell(spreadsheet.ColAdministrativeFee)).Round(2),
		DailyExchangeRate: normalize.ToDecimal(row.Cell(spreadsheet.ColDailyRate)).Round(4),
		TotalAmount:       normalize.ToDecimal(row.Cell(spreadsheet.ColTotalAmount)).Round(2),
		TransferReference: normalize.OptionalUpper(row.Cell(spreadsheet.ColTransferReference)),
		TransactionDate:   date,
		Reconciled:        normalize.ToBoolean(row.Cell(spreadsheet.ColReconciled)),
		Concept:           normalize.Text(row.Cell(spreadsheet.ColConcept)),
		Status:            model.StatusPaid,
		CreatedBy:         actor,
	}

	var flags [model.CategoryCount]bool
	for i := range flags {
		flags[i] = normalize.ToBoolean(row.Cell(spreadsheet.CategoryColumn(i + 1)))
	}
	receipt.SetFlags(flags)
	receipt.SyncStatus()

	return receipt, false, nil
}
