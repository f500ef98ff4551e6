package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
)

// subledgerService maintains AP bills and AR invoices and ties them to their
// control accounts. Every subledger mutation is mirrored by a journal line
// against the entity's single control account for that side.
type subledgerService struct {
	payableRepo portsrepo.PayableRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	journalSvc  portssvc.JournalSvcFacade
}

// NewSubledgerService creates a new subledger service.
func NewSubledgerService(
	payableRepo portsrepo.PayableRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
) portssvc.SubledgerSvcFacade {
	return &subledgerService{
		payableRepo: payableRepo,
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.SubledgerSvcFacade = (*subledgerService)(nil)

// RecordBill records an AP bill and posts its mirroring entry:
// expense debit / AP control credit.
func (s *subledgerService) RecordBill(ctx context.Context, entityID string, req dto.RecordBillRequest, userID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	control, err := s.accountSvc.GetControlAccount(ctx, entityID, domain.ControlAccountsPayable)
	if err != nil {
		return nil, fmt.Errorf("AP control account: %w", err)
	}

	billID := uuid.NewString()
	entry, err := s.journalSvc.PostEntry(ctx, entityID, dto.CreateEntryRequest{
		Date:       req.BillDate,
		Memo:       fmt.Sprintf("Bill from vendor %s", req.VendorID),
		SourceKind: domain.SourceBill,
		SourceRef:  billID,
		Lines: []dto.CreateLineRequest{
			{AccountID: req.ExpenseAccountID, DebitCents: req.AmountCents},
			{AccountID: control.AccountID, CreditCents: req.AmountCents},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:      billID,
		EntityID:    entityID,
		VendorID:    req.VendorID,
		AmountCents: req.AmountCents,
		DueDate:     req.DueDate,
		Status:      domain.DocumentOpen,
		JournalID:   entry.EntryID,
		Memo:        req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.payableRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill after posting its entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	logger.Info("Bill recorded", slog.String("bill_id", bill.BillID), slog.Int64("amount_cents", bill.AmountCents))
	return &bill, nil
}

// RecordInvoice records an AR invoice and posts its mirroring entry:
// AR control debit / revenue credit.
func (s *subledgerService) RecordInvoice(ctx context.Context, entityID string, req dto.RecordInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	control, err := s.accountSvc.GetControlAccount(ctx, entityID, domain.ControlAccountsReceivable)
	if err != nil {
		return nil, fmt.Errorf("AR control account: %w", err)
	}

	invoiceID := uuid.NewString()
	entry, err := s.journalSvc.PostEntry(ctx, entityID, dto.CreateEntryRequest{
		Date:       req.InvoiceDate,
		Memo:       fmt.Sprintf("Invoice to customer %s", req.CustomerID),
		SourceKind: domain.SourceInvoice,
		SourceRef:  invoiceID,
		Lines: []dto.CreateLineRequest{
			{AccountID: control.AccountID, DebitCents: req.AmountCents},
			{AccountID: req.RevenueAccountID, CreditCents: req.AmountCents},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:   invoiceID,
		EntityID:    entityID,
		CustomerID:  req.CustomerID,
		AmountCents: req.AmountCents,
		DueDate:     req.DueDate,
		Status:      domain.DocumentOpen,
		JournalID:   entry.EntryID,
		Memo:        req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.payableRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice after posting its entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice recorded", slog.String("invoice_id", invoice.InvoiceID), slog.Int64("amount_cents", invoice.AmountCents))
	return &invoice, nil
}

// GetBillByID retrieves a bill, scoped to the entity.
func (s *subledgerService) GetBillByID(ctx context.Context, entityID string, billID string) (*domain.Bill, error) {
	bill, err := s.payableRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return bill, nil
}

// GetInvoiceByID retrieves an invoice, scoped to the entity.
func (s *subledgerService) GetInvoiceByID(ctx context.Context, entityID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.payableRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// ApplyBillPayment rolls a bill's paid amount forward. The caller has
// already posted the settling journal entry.
func (s *subledgerService) ApplyBillPayment(ctx context.Context, entityID string, billID string, amountCents int64, userID string) error {
	bill, err := s.GetBillByID(ctx, entityID, billID)
	if err != nil {
		return err
	}
	if amountCents <= 0 || amountCents > bill.OpenCents() {
		return fmt.Errorf("%w: payment of %d cents against open balance of %d cents", apperrors.ErrValidation, amountCents, bill.OpenCents())
	}
	return s.payableRepo.ApplyBillPayment(ctx, billID, amountCents, userID, time.Now().UTC())
}

// ApplyInvoicePayment rolls an invoice's paid amount forward.
func (s *subledgerService) ApplyInvoicePayment(ctx context.Context, entityID string, invoiceID string, amountCents int64, userID string) error {
	invoice, err := s.GetInvoiceByID(ctx, entityID, invoiceID)
	if err != nil {
		return err
	}
	if amountCents <= 0 || amountCents > invoice.OpenCents() {
		return fmt.Errorf("%w: payment of %d cents against open balance of %d cents", apperrors.ErrValidation, amountCents, invoice.OpenCents())
	}
	return s.payableRepo.ApplyInvoicePayment(ctx, invoiceID, amountCents, userID, time.Now().UTC())
}

// ReconcileControl recomputes the sum of open subsidiary balances and
// compares it to the control account balance derived from the posted log.
// Mismatches are returned, never corrected: a nonzero delta is a signal of a
// bug upstream.
func (s *subledgerService) ReconcileControl(ctx context.Context, entityID string, control domain.ControlType, asOf time.Time) (*domain.ControlReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	controlAccount, err := s.accountSvc.GetControlAccount(ctx, entityID, control)
	if err != nil {
		return nil, err
	}

	controlCents, err := s.journalRepo.ControlBalanceAsOf(ctx, controlAccount.AccountID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to derive control balance: %w", err)
	}

	result := &domain.ControlReconciliation{
		Control:      control,
		AsOf:         asOf,
		ControlCents: controlCents,
	}

	switch control {
	case domain.ControlAccountsPayable:
		bills, err := s.payableRepo.ListOpenBills(ctx, entityID, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to list open bills: %w", err)
		}
		for _, b := range bills {
			result.SubsidiaryCents += b.OpenCents()
		}
		if result.SubsidiaryCents != result.ControlCents {
			result.Mismatches = diffDocuments(billDocs(bills), result.ControlCents, result.SubsidiaryCents)
		}
	case domain.ControlAccountsReceivable:
		invoices, err := s.payableRepo.ListOpenInvoices(ctx, entityID, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to list open invoices: %w", err)
		}
		for _, i := range invoices {
			result.SubsidiaryCents += i.OpenCents()
		}
		if result.SubsidiaryCents != result.ControlCents {
			result.Mismatches = diffDocuments(invoiceDocs(invoices), result.ControlCents, result.SubsidiaryCents)
		}
	default:
		return nil, fmt.Errorf("%w: unknown control type %s", apperrors.ErrValidation, control)
	}

	if !result.Balanced() {
		logger.Warn("Control account does not reconcile",
			slog.String("control", string(control)),
			slog.Int64("subsidiary_cents", result.SubsidiaryCents),
			slog.Int64("control_cents", result.ControlCents),
		)
	}
	return result, nil
}

type subledgerDoc struct {
	id           string
	counterparty string
	openCents    int64
}

func billDocs(bills []domain.Bill) []subledgerDoc {
	docs := make([]subledgerDoc, len(bills))
	for i, b := range bills {
		docs[i] = subledgerDoc{id: b.BillID, counterparty: b.VendorID, openCents: b.OpenCents()}
	}
	return docs
}

func invoiceDocs(invoices []domain.Invoice) []subledgerDoc {
	docs := make([]subledgerDoc, len(invoices))
	for i, inv := range invoices {
		docs[i] = subledgerDoc{id: inv.InvoiceID, counterparty: inv.CustomerID, openCents: inv.OpenCents()}
	}
	return docs
}

// diffDocuments attributes the overall delta to documents. A document whose
// open balance alone equals the delta is singled out; otherwise the whole
// delta is reported against an aggregate marker so nothing is hidden.
func diffDocuments(docs []subledgerDoc, controlCents, subsidiaryCents int64) []domain.ControlMismatch {
	delta := subsidiaryCents - controlCents
	for _, d := range docs {
		if d.openCents == delta || -d.openCents == delta {
			return []domain.ControlMismatch{{DocumentID: d.id, Counterparty: d.counterparty, DeltaCents: delta}}
		}
	}
	return []domain.ControlMismatch{{DocumentID: "AGGREGATE", DeltaCents: delta}}
}
