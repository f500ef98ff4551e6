package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/core/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/utils/nacha"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockBankRepo    *MockBankRepository
	mockJournalSvc  *MockJournalService
	service         portssvc.PaymentSvcFacade

	entityID    string
	userID      string
	bankAccount domain.BankAccount
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockJournalSvc = new(MockJournalService)
	origin := services.ACHOrigin{
		ImmediateDestination: "021000021",
		ImmediateOrigin:      "011000015",
		DestinationName:      "FIRST FARM BANK",
		OriginName:           "HALVERSON FARMS",
		CompanyName:          "HALVERSON FARMS",
		CompanyID:            "1234567890",
	}
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockBankRepo, suite.mockJournalSvc, origin)

	suite.entityID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.bankAccount = domain.BankAccount{
		BankAccountID:   uuid.NewString(),
		EntityID:        suite.entityID,
		LedgerAccountID: uuid.NewString(),
		RoutingNumber:   "021000021",
		AccountNumber:   "9912345",
		NextCheckNumber: 1042,
	}
}

func (suite *PaymentServiceTestSuite) TestPrintCheck_Success() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:  uuid.NewString(),
		EntityID: suite.entityID,
		Status:   domain.Posted,
	}
	req := dto.PrintCheckRequest{
		BankAccountID:       suite.bankAccount.BankAccountID,
		Payee:               "Seed Supply Co",
		AmountCents:         123456,
		DisbursementEntryID: entry.EntryID,
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockJournalSvc.On("GetEntryByID", ctx, suite.entityID, entry.EntryID).Return(entry, nil).Once()
	suite.mockPaymentRepo.On("NextCheckNumber", ctx, suite.bankAccount.BankAccountID).Return(int64(1042), nil).Once()
	suite.mockPaymentRepo.On("IssueCheck", ctx, mock.AnythingOfType("domain.Check")).Return(nil).Once()

	check, err := suite.service.PrintCheck(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(1042), check.CheckNumber)
	suite.Equal(domain.CheckPrinted, check.Status)
	suite.Equal("One thousand two hundred thirty-four and 56/100", check.AmountWords)
	suite.Contains(check.MICRLine, "021000021")
	suite.Contains(check.MICRLine, "1042")
	suite.Equal(entry.EntryID, check.DisbursementEntryID)

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestPrintCheck_EntryNotPosted() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:  uuid.NewString(),
		EntityID: suite.entityID,
		Status:   domain.Reversed,
	}
	req := dto.PrintCheckRequest{
		BankAccountID:       suite.bankAccount.BankAccountID,
		Payee:               "Seed Supply Co",
		AmountCents:         5000,
		DisbursementEntryID: entry.EntryID,
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockJournalSvc.On("GetEntryByID", ctx, suite.entityID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PrintCheck(ctx, suite.entityID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "IssueCheck", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestVoidCheck_AlreadyVoided() {
	ctx := context.Background()
	check := &domain.Check{
		CheckID:     uuid.NewString(),
		EntityID:    suite.entityID,
		CheckNumber: 1010,
		Status:      domain.CheckVoided,
	}

	suite.mockPaymentRepo.On("FindCheckByID", ctx, check.CheckID).Return(check, nil).Once()

	err := suite.service.VoidCheck(ctx, suite.entityID, check.CheckID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "VoidCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestVoidCheck_ClearedCannotVoid() {
	ctx := context.Background()
	check := &domain.Check{
		CheckID:     uuid.NewString(),
		EntityID:    suite.entityID,
		CheckNumber: 1011,
		Status:      domain.CheckCleared,
	}

	suite.mockPaymentRepo.On("FindCheckByID", ctx, check.CheckID).Return(check, nil).Once()

	err := suite.service.VoidCheck(ctx, suite.entityID, check.CheckID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PaymentServiceTestSuite) TestVoidCheck_Success() {
	ctx := context.Background()
	check := &domain.Check{
		CheckID:     uuid.NewString(),
		EntityID:    suite.entityID,
		CheckNumber: 1012,
		Status:      domain.CheckPrinted,
	}

	suite.mockPaymentRepo.On("FindCheckByID", ctx, check.CheckID).Return(check, nil).Once()
	suite.mockPaymentRepo.On("VoidCheck", ctx, check.CheckID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.VoidCheck(ctx, suite.entityID, check.CheckID, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestGenerateACHBatch_Success() {
	ctx := context.Background()
	req := dto.GenerateACHRequest{
		BankAccountID: suite.bankAccount.BankAccountID,
		EffectiveDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Description:   "VENDOR PAY",
		Payments: []domain.ACHPayment{
			{PayeeName: "Seed Supply Co", RoutingNumber: "021000021", AccountNumber: "445566", AmountCents: 125000},
			{PayeeName: "Vet Services", RoutingNumber: "011000015", AccountNumber: "778899", AmountCents: 40000},
		},
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPaymentRepo.On("NextBatchNumber", ctx, suite.entityID).Return(int64(7), nil).Once()
	suite.mockPaymentRepo.On("SaveBatch", ctx, mock.AnythingOfType("domain.ACHBatch")).Return(nil).Once()

	batch, err := suite.service.GenerateACHBatch(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(7), batch.BatchNumber)
	suite.Equal(2, batch.EntryCount)
	suite.Equal(int64(165000), batch.TotalCreditCents)
	suite.Zero(batch.TotalDebitCents)
	suite.NotEmpty(batch.FileContents)
	// Newline-terminated 94-character records, padded to a full block of 10.
	records := bytes.Split(bytes.TrimRight(batch.FileContents, "\n"), []byte("\n"))
	suite.Zero(len(records) % nacha.BlockingFactor)
	for _, r := range records {
		suite.Len(r, nacha.RecordLength)
	}
	suite.Require().Len(batch.Entries, 2)
	suite.Equal("021000020000001", batch.Entries[0].TraceNumber)
	suite.Equal("021000020000002", batch.Entries[1].TraceNumber)

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestGenerateACHBatch_InvalidRoutingRejectsWholeBatch() {
	ctx := context.Background()
	req := dto.GenerateACHRequest{
		BankAccountID: suite.bankAccount.BankAccountID,
		EffectiveDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Description:   "VENDOR PAY",
		Payments: []domain.ACHPayment{
			{PayeeName: "Seed Supply Co", RoutingNumber: "021000021", AccountNumber: "445566", AmountCents: 125000},
			{PayeeName: "Bad Routing", RoutingNumber: "123456789", AccountNumber: "778899", AmountCents: 40000},
		},
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPaymentRepo.On("NextBatchNumber", ctx, suite.entityID).Return(int64(7), nil).Once()

	_, err := suite.service.GenerateACHBatch(ctx, suite.entityID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidRoutingNumber)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestGenerateACHBatch_NoPayments() {
	ctx := context.Background()
	req := dto.GenerateACHRequest{
		BankAccountID: suite.bankAccount.BankAccountID,
		EffectiveDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Description:   "VENDOR PAY",
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()

	_, err := suite.service.GenerateACHBatch(ctx, suite.entityID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
