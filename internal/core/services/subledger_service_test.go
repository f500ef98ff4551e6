package services_test

import (
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
)

type SubledgerServiceTestSuite struct {
	suite.Suite
	mockPayableRepo *MockPayableRepository
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	mockJournalSvc  *MockJournalService
	service         portssvc.SubledgerSvcFacade

	entityID   string
	userID     string
	apControl  domain.Account
	arControl  domain.Account
	expenseID  string
	revenueID  string
}

func (suite *SubledgerServiceTestSuite) SetupTest() {
	suite.mockPayableRepo = new(MockPayableRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockJournalSvc = new(MockJournalService)
	suite.service = services.NewSubledgerService(suite.mockPayableRepo, suite.mockJournalRepo, suite.mockAccountSvc, suite.mockJournalSvc)

	suite.entityID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.apControl = domain.Account{
		AccountID:   uuid.NewString(),
		EntityID:    suite.entityID,
		Code:        "2000",
		AccountType: domain.Liability,
		Control:     domain.ControlAccountsPayable,
		IsActive:    true,
	}
	suite.arControl = domain.Account{
		AccountID:   uuid.NewString(),
		EntityID:    suite.entityID,
		Code:        "1200",
		AccountType: domain.Asset,
		Control:     domain.ControlAccountsReceivable,
		IsActive:    true,
	}
	suite.expenseID = uuid.NewString()
	suite.revenueID = uuid.NewString()
}

func (suite *SubledgerServiceTestSuite) TestRecordBill_Success() {
	ctx := context.Background()
	billDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	req := dto.RecordBillRequest{
		VendorID:         "seed-supply-co",
		AmountCents:      125000,
		BillDate:         billDate,
		DueDate:          billDate.AddDate(0, 1, 0),
		ExpenseAccountID: suite.expenseID,
	}
	postedEntry := &domain.JournalEntry{
		EntryID:  uuid.NewString(),
		EntityID: suite.entityID,
		Status:   domain.Posted,
	}

	suite.mockAccountSvc.On("GetControlAccount", ctx, suite.entityID, domain.ControlAccountsPayable).Return(&suite.apControl, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, suite.entityID, mock.MatchedBy(func(er dto.CreateEntryRequest) bool {
		return er.SourceKind == domain.SourceBill &&
			len(er.Lines) == 2 &&
			er.Lines[0].AccountID == suite.expenseID && er.Lines[0].DebitCents == 125000 &&
			er.Lines[1].AccountID == suite.apControl.AccountID && er.Lines[1].CreditCents == 125000
	}), suite.userID).Return(postedEntry, nil).Once()
	suite.mockPayableRepo.On("SaveBill", ctx, mock.AnythingOfType("domain.Bill")).Return(nil).Once()

	bill, err := suite.service.RecordBill(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(bill)
	suite.Equal(postedEntry.EntryID, bill.JournalID)
	suite.Equal(domain.DocumentOpen, bill.Status)
	suite.Equal(int64(125000), bill.AmountCents)
	suite.Zero(bill.PaidCents)

	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockPayableRepo.AssertExpectations(suite.T())
}

func (suite *SubledgerServiceTestSuite) TestRecordInvoice_Success() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	req := dto.RecordInvoiceRequest{
		CustomerID:       "grain-elevator-llc",
		AmountCents:      480000,
		InvoiceDate:      invoiceDate,
		DueDate:          invoiceDate.AddDate(0, 1, 0),
		RevenueAccountID: suite.revenueID,
	}
	postedEntry := &domain.JournalEntry{
		EntryID:  uuid.NewString(),
		EntityID: suite.entityID,
		Status:   domain.Posted,
	}

	suite.mockAccountSvc.On("GetControlAccount", ctx, suite.entityID, domain.ControlAccountsReceivable).Return(&suite.arControl, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, suite.entityID, mock.MatchedBy(func(er dto.CreateEntryRequest) bool {
		return er.SourceKind == domain.SourceInvoice &&
			len(er.Lines) == 2 &&
			er.Lines[0].AccountID == suite.arControl.AccountID && er.Lines[0].DebitCents == 480000 &&
			er.Lines[1].AccountID == suite.revenueID && er.Lines[1].CreditCents == 480000
	}), suite.userID).Return(postedEntry, nil).Once()
	suite.mockPayableRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.RecordInvoice(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(postedEntry.EntryID, invoice.JournalID)
	suite.Equal(domain.DocumentOpen, invoice.Status)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *SubledgerServiceTestSuite) TestApplyBillPayment_Overpayment() {
	ctx := context.Background()
	bill := &domain.Bill{
		BillID:      uuid.NewString(),
		EntityID:    suite.entityID,
		AmountCents: 10000,
		PaidCents:   8000,
		Status:      domain.DocumentPartial,
	}

	suite.mockPayableRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Once()

	err := suite.service.ApplyBillPayment(ctx, suite.entityID, bill.BillID, 5000, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayableRepo.AssertNotCalled(suite.T(), "ApplyBillPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubledgerServiceTestSuite) TestApplyBillPayment_Success() {
	ctx := context.Background()
	bill := &domain.Bill{
		BillID:      uuid.NewString(),
		EntityID:    suite.entityID,
		AmountCents: 10000,
		PaidCents:   0,
		Status:      domain.DocumentOpen,
	}

	suite.mockPayableRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Once()
	suite.mockPayableRepo.On("ApplyBillPayment", ctx, bill.BillID, int64(10000), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ApplyBillPayment(ctx, suite.entityID, bill.BillID, 10000, suite.userID)

	suite.NoError(err)
	suite.mockPayableRepo.AssertExpectations(suite.T())
}

func (suite *SubledgerServiceTestSuite) TestReconcileControl_Balanced() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	bills := []domain.Bill{
		{BillID: uuid.NewString(), EntityID: suite.entityID, VendorID: "v1", AmountCents: 10000},
		{BillID: uuid.NewString(), EntityID: suite.entityID, VendorID: "v2", AmountCents: 30000, PaidCents: 10000},
	}

	suite.mockAccountSvc.On("GetControlAccount", ctx, suite.entityID, domain.ControlAccountsPayable).Return(&suite.apControl, nil).Once()
	suite.mockJournalRepo.On("ControlBalanceAsOf", ctx, suite.apControl.AccountID, asOf).Return(int64(30000), nil).Once()
	suite.mockPayableRepo.On("ListOpenBills", ctx, suite.entityID, asOf).Return(bills, nil).Once()

	rec, err := suite.service.ReconcileControl(ctx, suite.entityID, domain.ControlAccountsPayable, asOf)

	suite.Require().NoError(err)
	suite.True(rec.Balanced())
	suite.Equal(int64(30000), rec.SubsidiaryCents)
	suite.Equal(int64(30000), rec.ControlCents)
	suite.Empty(rec.Mismatches)
}

func (suite *SubledgerServiceTestSuite) TestReconcileControl_SinglesOutMismatchedDocument() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	oddBill := domain.Bill{BillID: uuid.NewString(), EntityID: suite.entityID, VendorID: "v1", AmountCents: 10000}
	bills := []domain.Bill{
		oddBill,
		{BillID: uuid.NewString(), EntityID: suite.entityID, VendorID: "v2", AmountCents: 20000},
	}

	suite.mockAccountSvc.On("GetControlAccount", ctx, suite.entityID, domain.ControlAccountsPayable).Return(&suite.apControl, nil).Once()
	// Subsidiary sums to 30000 but the control shows 20000: the 10000 bill
	// alone explains the delta.
	suite.mockJournalRepo.On("ControlBalanceAsOf", ctx, suite.apControl.AccountID, asOf).Return(int64(20000), nil).Once()
	suite.mockPayableRepo.On("ListOpenBills", ctx, suite.entityID, asOf).Return(bills, nil).Once()

	rec, err := suite.service.ReconcileControl(ctx, suite.entityID, domain.ControlAccountsPayable, asOf)

	suite.Require().NoError(err)
	suite.False(rec.Balanced())
	suite.Require().Len(rec.Mismatches, 1)
	suite.Equal(oddBill.BillID, rec.Mismatches[0].DocumentID)
	suite.Equal("v1", rec.Mismatches[0].Counterparty)
	suite.Equal(int64(10000), rec.Mismatches[0].DeltaCents)
}

func (suite *SubledgerServiceTestSuite) TestReconcileControl_AggregateMismatch() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	invoices := []domain.Invoice{
		{InvoiceID: uuid.NewString(), EntityID: suite.entityID, CustomerID: "c1", AmountCents: 10000},
		{InvoiceID: uuid.NewString(), EntityID: suite.entityID, CustomerID: "c2", AmountCents: 20000},
	}

	suite.mockAccountSvc.On("GetControlAccount", ctx, suite.entityID, domain.ControlAccountsReceivable).Return(&suite.arControl, nil).Once()
	// Delta of 3000 matches no single document.
	suite.mockJournalRepo.On("ControlBalanceAsOf", ctx, suite.arControl.AccountID, asOf).Return(int64(27000), nil).Once()
	suite.mockPayableRepo.On("ListOpenInvoices", ctx, suite.entityID, asOf).Return(invoices, nil).Once()

	rec, err := suite.service.ReconcileControl(ctx, suite.entityID, domain.ControlAccountsReceivable, asOf)

	suite.Require().NoError(err)
	suite.False(rec.Balanced())
	suite.Require().Len(rec.Mismatches, 1)
	suite.Equal("AGGREGATE", rec.Mismatches[0].DocumentID)
	suite.Equal(int64(3000), rec.Mismatches[0].DeltaCents)
}

func (suite *SubledgerServiceTestSuite) TestGetBillByID_WrongEntity() {
	ctx := context.Background()
	bill := &domain.Bill{BillID: uuid.NewString(), EntityID: uuid.NewString()}

	suite.mockPayableRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Once()

	_, err := suite.service.GetBillByID(ctx, suite.entityID, bill.BillID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSubledgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubledgerServiceTestSuite))
}
