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
	"github.com/halverson/farmbooks/internal/utils/amountwords"
	"github.com/halverson/farmbooks/internal/utils/micr"
	"github.com/halverson/farmbooks/internal/utils/nacha"
)

// ACHOrigin is the originating institution identity stamped into every ACH
// file this system produces.
type ACHOrigin struct {
	ImmediateDestination string
	ImmediateOrigin      string
	DestinationName      string
	OriginName           string
	CompanyName          string
	CompanyID            string
}

type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	bankRepo    portsrepo.BankRepositoryFacade
	journalSvc  portssvc.JournalSvcFacade
	origin      ACHOrigin
}

// NewPaymentService creates a new payment instrument service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	bankRepo portsrepo.BankRepositoryFacade,
	journalSvc portssvc.JournalSvcFacade,
	origin ACHOrigin,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		bankRepo:    bankRepo,
		journalSvc:  journalSvc,
		origin:      origin,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// PrintCheck allocates the next check number on the bank account and renders
// the instrument. Allocation is compare-and-swap: a concurrent print of the
// same number fails with ErrDuplicateCheckNumber and the caller retries,
// which lands on the next number. A number is never handed out twice.
func (s *paymentService) PrintCheck(ctx context.Context, entityID string, req dto.PrintCheckRequest, userID string) (*domain.Check, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	if bankAccount.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}

	entry, err := s.journalSvc.GetEntryByID(ctx, entityID, req.DisbursementEntryID)
	if err != nil {
		return nil, fmt.Errorf("disbursement entry: %w", err)
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: disbursement entry %s is %s, expected %s", apperrors.ErrConflict, entry.EntryID, entry.Status, domain.Posted)
	}

	checkNumber, err := s.paymentRepo.NextCheckNumber(ctx, bankAccount.BankAccountID)
	if err != nil {
		return nil, err
	}

	micrLine, err := micr.Line(bankAccount.RoutingNumber, bankAccount.AccountNumber, checkNumber)
	if err != nil {
		return nil, err
	}
	words, err := amountwords.FromCents(req.AmountCents)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	check := domain.Check{
		CheckID:             uuid.NewString(),
		EntityID:            entityID,
		BankAccountID:       bankAccount.BankAccountID,
		CheckNumber:         checkNumber,
		Payee:               req.Payee,
		AmountCents:         req.AmountCents,
		AmountWords:         words,
		MICRLine:            micrLine,
		DisbursementEntryID: entry.EntryID,
		Status:              domain.CheckPrinted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.IssueCheck(ctx, check); err != nil {
		return nil, err
	}

	logger.Info("Check printed",
		slog.String("check_id", check.CheckID),
		slog.Int64("check_number", check.CheckNumber),
		slog.Int64("amount_cents", check.AmountCents),
	)
	return &check, nil
}

// VoidCheck retires a printed check. The number stays consumed: voiding
// leaves a gapless audit trail, it does not return the number to the pool.
func (s *paymentService) VoidCheck(ctx context.Context, entityID string, checkID string, userID string) error {
	check, err := s.paymentRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return err
	}
	if check.EntityID != entityID {
		return apperrors.ErrNotFound
	}
	switch check.Status {
	case domain.CheckVoided:
		return fmt.Errorf("%w: check %d is already voided", apperrors.ErrConflict, check.CheckNumber)
	case domain.CheckCleared:
		return fmt.Errorf("%w: check %d has cleared and cannot be voided", apperrors.ErrConflict, check.CheckNumber)
	}
	return s.paymentRepo.VoidCheck(ctx, checkID, userID, time.Now().UTC())
}

// GenerateACHBatch validates every payment and renders a complete NACHA file.
// Rendering is all-or-nothing: one invalid routing number and no bytes are
// produced, nothing is persisted.
func (s *paymentService) GenerateACHBatch(ctx context.Context, entityID string, req dto.GenerateACHRequest, userID string) (*domain.ACHBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	if bankAccount.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	if len(req.Payments) == 0 {
		return nil, fmt.Errorf("%w: batch has no payments", apperrors.ErrValidation)
	}

	batchNumber, err := s.paymentRepo.NextBatchNumber(ctx, entityID)
	if err != nil {
		return nil, err
	}

	entries := make([]nacha.Entry, len(req.Payments))
	for i, p := range req.Payments {
		entries[i] = nacha.Entry{
			PayeeName:     p.PayeeName,
			RoutingNumber: p.RoutingNumber,
			AccountNumber: p.AccountNumber,
			AmountCents:   p.AmountCents,
			IsDebit:       p.IsDebit,
		}
	}

	file := nacha.File{
		ImmediateDestination: s.origin.ImmediateDestination,
		ImmediateOrigin:      s.origin.ImmediateOrigin,
		DestinationName:      s.origin.DestinationName,
		OriginName:           s.origin.OriginName,
		CompanyName:          s.origin.CompanyName,
		CompanyID:            s.origin.CompanyID,
		EntryDescription:     req.Description,
		EffectiveDate:        req.EffectiveDate,
		CreationTime:         time.Now().UTC(),
		BatchNumber:          batchNumber,
		Entries:              entries,
	}

	contents, totals, err := file.Build()
	if err != nil {
		logger.Warn("ACH batch rejected", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	batch := domain.ACHBatch{
		BatchID:          uuid.NewString(),
		EntityID:         entityID,
		BatchNumber:      batchNumber,
		EffectiveDate:    req.EffectiveDate,
		CompanyName:      s.origin.CompanyName,
		CompanyID:        s.origin.CompanyID,
		EntryCount:       totals.EntryCount,
		EntryHash:        totals.EntryHash,
		TotalDebitCents:  totals.TotalDebitCents,
		TotalCreditCents: totals.TotalCreditCents,
		FileContents:     contents,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	batch.Entries = make([]domain.ACHEntry, len(req.Payments))
	for i, p := range req.Payments {
		batch.Entries[i] = domain.ACHEntry{
			ACHEntryID:    uuid.NewString(),
			BatchID:       batch.BatchID,
			TraceNumber:   fmt.Sprintf("%s%07d", s.origin.ImmediateDestination[:8], i+1),
			PayeeName:     p.PayeeName,
			RoutingNumber: p.RoutingNumber,
			AccountNumber: p.AccountNumber,
			AmountCents:   p.AmountCents,
			IsDebit:       p.IsDebit,
			AuditFields:   batch.AuditFields,
		}
	}

	if err := s.paymentRepo.SaveBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save ACH batch: %w", err)
	}

	logger.Info("ACH batch generated",
		slog.String("batch_id", batch.BatchID),
		slog.Int("entry_count", batch.EntryCount),
		slog.Int64("total_credit_cents", batch.TotalCreditCents),
	)
	return &batch, nil
}

// GetBatchByID retrieves an ACH batch, scoped to the entity.
func (s *paymentService) GetBatchByID(ctx context.Context, entityID string, batchID string) (*domain.ACHBatch, error) {
	batch, err := s.paymentRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return batch, nil
}
