package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/middleware"
)

// postingService is the single inbound boundary for business events that
// settle money. Each operation assembles one balanced entry and pushes it
// through the journal engine; collaborators never build lines themselves.
type postingService struct {
	journalSvc   portssvc.JournalSvcFacade
	subledgerSvc portssvc.SubledgerSvcFacade
	paymentSvc   portssvc.PaymentSvcFacade
	accountSvc   portssvc.AccountSvcFacade
	bankRepo     portsrepo.BankRepositoryFacade
}

// NewPostingService creates the posting facade.
func NewPostingService(
	journalSvc portssvc.JournalSvcFacade,
	subledgerSvc portssvc.SubledgerSvcFacade,
	paymentSvc portssvc.PaymentSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	bankRepo portsrepo.BankRepositoryFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		journalSvc:   journalSvc,
		subledgerSvc: subledgerSvc,
		paymentSvc:   paymentSvc,
		accountSvc:   accountSvc,
		bankRepo:     bankRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostBillPayment settles a bill: AP control debit, cash credit. When
// ByCheck is set the disbursement also prints a check against the posted
// entry.
func (s *postingService) PostBillPayment(ctx context.Context, entityID string, req dto.BillPaymentRequest, userID string) (*dto.BillPaymentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bill, err := s.subledgerSvc.GetBillByID(ctx, entityID, req.BillID)
	if err != nil {
		return nil, err
	}
	if req.AmountCents <= 0 || req.AmountCents > bill.OpenCents() {
		return nil, fmt.Errorf("%w: payment of %d cents against open balance of %d cents", apperrors.ErrValidation, req.AmountCents, bill.OpenCents())
	}

	cashAccountID, err := s.cashLedgerAccountID(ctx, entityID, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	control, err := s.accountSvc.GetControlAccount(ctx, entityID, domain.ControlAccountsPayable)
	if err != nil {
		return nil, fmt.Errorf("AP control account: %w", err)
	}

	entry, err := s.journalSvc.PostEntry(ctx, entityID, dto.CreateEntryRequest{
		Date:           req.Date,
		Memo:           fmt.Sprintf("Payment on bill %s", bill.BillID),
		SourceKind:     domain.SourceBill,
		SourceRef:      bill.BillID,
		IdempotencyKey: req.IdempotencyKey,
		Lines: []dto.CreateLineRequest{
			{AccountID: control.AccountID, DebitCents: req.AmountCents},
			{AccountID: cashAccountID, CreditCents: req.AmountCents},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	if err := s.subledgerSvc.ApplyBillPayment(ctx, entityID, bill.BillID, req.AmountCents, userID); err != nil {
		logger.Error("Bill payment posted but subledger update failed",
			slog.String("bill_id", bill.BillID),
			slog.String("entry_id", entry.EntryID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result := &dto.BillPaymentResult{Entry: dto.ToEntryResponse(entry)}
	if req.ByCheck {
		check, err := s.paymentSvc.PrintCheck(ctx, entityID, dto.PrintCheckRequest{
			BankAccountID:       req.BankAccountID,
			Payee:               bill.VendorID,
			AmountCents:         req.AmountCents,
			DisbursementEntryID: entry.EntryID,
		}, userID)
		if err != nil {
			return nil, err
		}
		checkResp := dto.ToCheckResponse(check)
		result.Check = &checkResp
	}
	return result, nil
}

// PostInvoicePayment settles an invoice receipt: cash debit, AR control
// credit.
func (s *postingService) PostInvoicePayment(ctx context.Context, entityID string, req dto.InvoicePaymentRequest, userID string) (*domain.JournalEntry, error) {
	invoice, err := s.subledgerSvc.GetInvoiceByID(ctx, entityID, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if req.AmountCents <= 0 || req.AmountCents > invoice.OpenCents() {
		return nil, fmt.Errorf("%w: receipt of %d cents against open balance of %d cents", apperrors.ErrValidation, req.AmountCents, invoice.OpenCents())
	}

	cashAccountID, err := s.cashLedgerAccountID(ctx, entityID, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	control, err := s.accountSvc.GetControlAccount(ctx, entityID, domain.ControlAccountsReceivable)
	if err != nil {
		return nil, fmt.Errorf("AR control account: %w", err)
	}

	entry, err := s.journalSvc.PostEntry(ctx, entityID, dto.CreateEntryRequest{
		Date:           req.Date,
		Memo:           fmt.Sprintf("Receipt on invoice %s", invoice.InvoiceID),
		SourceKind:     domain.SourceInvoice,
		SourceRef:      invoice.InvoiceID,
		IdempotencyKey: req.IdempotencyKey,
		Lines: []dto.CreateLineRequest{
			{AccountID: cashAccountID, DebitCents: req.AmountCents},
			{AccountID: control.AccountID, CreditCents: req.AmountCents},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	if err := s.subledgerSvc.ApplyInvoicePayment(ctx, entityID, invoice.InvoiceID, req.AmountCents, userID); err != nil {
		return nil, err
	}
	return entry, nil
}

// PostPayrollRun posts one balanced entry for a payroll run. Withholding and
// employer tax are computed per employee in exact decimal, rounded half-up
// to cents before any line is built, so the integer lines always balance.
func (s *postingService) PostPayrollRun(ctx context.Context, entityID string, req dto.PayrollRunRequest, userID string) (*domain.JournalEntry, error) {
	if len(req.Employees) == 0 {
		return nil, fmt.Errorf("%w: payroll run has no employees", apperrors.ErrValidation)
	}

	cashAccountID, err := s.cashLedgerAccountID(ctx, entityID, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	var lines []dto.CreateLineRequest
	var totalWithholding, totalNet, totalEmployerTax int64
	for _, emp := range req.Employees {
		if emp.GrossCents <= 0 {
			return nil, fmt.Errorf("%w: employee %s has non-positive gross", apperrors.ErrValidation, emp.EmployeeID)
		}
		withholding := roundedShare(emp.GrossCents, emp.WithholdingRate)
		employerTax := roundedShare(emp.GrossCents, emp.EmployerTaxRate)
		if withholding > emp.GrossCents {
			return nil, fmt.Errorf("%w: employee %s withholding exceeds gross", apperrors.ErrValidation, emp.EmployeeID)
		}
		net := emp.GrossCents - withholding

		totalWithholding += withholding
		totalNet += net
		totalEmployerTax += employerTax

		lines = append(lines, dto.CreateLineRequest{
			AccountID:  req.WageAccountID,
			DebitCents: emp.GrossCents,
			ClassTag:   emp.ClassTag,
		})
		if employerTax > 0 {
			lines = append(lines, dto.CreateLineRequest{
				AccountID:  req.TaxExpenseAccountID,
				DebitCents: employerTax,
				ClassTag:   emp.ClassTag,
			})
		}
	}

	if totalWithholding > 0 {
		lines = append(lines, dto.CreateLineRequest{AccountID: req.WithholdingAccountID, CreditCents: totalWithholding})
	}
	lines = append(lines, dto.CreateLineRequest{AccountID: cashAccountID, CreditCents: totalNet})
	if totalEmployerTax > 0 {
		lines = append(lines, dto.CreateLineRequest{AccountID: req.EmployerTaxAccountID, CreditCents: totalEmployerTax})
	}

	return s.journalSvc.PostEntry(ctx, entityID, dto.CreateEntryRequest{
		Date:           req.Date,
		Memo:           fmt.Sprintf("Payroll run %s", req.RunID),
		SourceKind:     domain.SourcePayroll,
		SourceRef:      req.RunID,
		IdempotencyKey: req.IdempotencyKey,
		Lines:          lines,
	}, userID)
}

// PostManualJournalEntry posts an operator-authored entry through the same
// engine path as every generated one.
func (s *postingService) PostManualJournalEntry(ctx context.Context, entityID string, req dto.ManualEntryRequest, userID string) (*domain.JournalEntry, error) {
	return s.journalSvc.PostEntry(ctx, entityID, dto.CreateEntryRequest{
		Date:           req.Date,
		Memo:           req.Memo,
		SourceKind:     domain.SourceManual,
		IdempotencyKey: req.IdempotencyKey,
		Lines:          req.Lines,
	}, userID)
}

func (s *postingService) cashLedgerAccountID(ctx context.Context, entityID string, bankAccountID string) (string, error) {
	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return "", err
	}
	if bankAccount.EntityID != entityID {
		return "", apperrors.ErrNotFound
	}
	return bankAccount.LedgerAccountID, nil
}

// roundedShare multiplies integer cents by an exact decimal rate and rounds
// half-up to whole cents.
func roundedShare(cents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(rate).Round(0).IntPart()
}
