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
	"github.com/halverson/farmbooks/internal/core/services"
	"github.com/halverson/farmbooks/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockJournalRepo *MockJournalRepository
	mockReconciler  *MockControlReconciler
	mockIntegrity   *MockIntegrityChecker
	service         *services.PeriodService

	entityID string
	userID   string
	period   domain.FiscalPeriod
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockReconciler = new(MockControlReconciler)
	suite.mockIntegrity = new(MockIntegrityChecker)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockJournalRepo)
	suite.service.SetCloseCheckers(suite.mockReconciler, suite.mockIntegrity)

	suite.entityID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.period = domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		EntityID:  suite.entityID,
		Name:      "2026-03",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (suite *PeriodServiceTestSuite) balancedRec(control domain.ControlType) *domain.ControlReconciliation {
	return &domain.ControlReconciliation{
		Control:         control,
		AsOf:            suite.period.EndDate,
		SubsidiaryCents: 120000,
		ControlCents:    120000,
	}
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockJournalRepo.On("CountDraftEntries", ctx, suite.period.PeriodID).Return(0, nil).Once()
	suite.mockReconciler.On("ReconcileControl", ctx, suite.entityID, domain.ControlAccountsPayable, suite.period.EndDate).
		Return(suite.balancedRec(domain.ControlAccountsPayable), nil).Once()
	suite.mockReconciler.On("ReconcileControl", ctx, suite.entityID, domain.ControlAccountsReceivable, suite.period.EndDate).
		Return(suite.balancedRec(domain.ControlAccountsReceivable), nil).Once()
	suite.mockIntegrity.On("CheckPeriodIntegrity", ctx, suite.entityID, suite.period.PeriodID).Return(nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, suite.period.PeriodID, domain.PeriodOpen, domain.PeriodClosed, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.entityID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
	suite.mockIntegrity.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_DraftEntriesRemain() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockJournalRepo.On("CountDraftEntries", ctx, suite.period.PeriodID).Return(3, nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.entityID, suite.period.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_ControlDoesNotReconcile() {
	ctx := context.Background()
	unbalanced := &domain.ControlReconciliation{
		Control:         domain.ControlAccountsPayable,
		AsOf:            suite.period.EndDate,
		SubsidiaryCents: 125000,
		ControlCents:    120000,
		Mismatches:      []domain.ControlMismatch{{DocumentID: "AGGREGATE", DeltaCents: 5000}},
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockJournalRepo.On("CountDraftEntries", ctx, suite.period.PeriodID).Return(0, nil).Once()
	suite.mockReconciler.On("ReconcileControl", ctx, suite.entityID, domain.ControlAccountsPayable, suite.period.EndDate).
		Return(unbalanced, nil).Once()
	// The entity has no AR control account; close tolerates that.
	suite.mockReconciler.On("ReconcileControl", ctx, suite.entityID, domain.ControlAccountsReceivable, suite.period.EndDate).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ClosePeriod(ctx, suite.entityID, suite.period.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrUnreconciled)
	suite.mockIntegrity.AssertNotCalled(suite.T(), "CheckPeriodIntegrity", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_IntegrityViolation() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockJournalRepo.On("CountDraftEntries", ctx, suite.period.PeriodID).Return(0, nil).Once()
	suite.mockReconciler.On("ReconcileControl", ctx, suite.entityID, mock.Anything, suite.period.EndDate).
		Return(suite.balancedRec(domain.ControlAccountsPayable), nil).Twice()
	suite.mockIntegrity.On("CheckPeriodIntegrity", ctx, suite.entityID, suite.period.PeriodID).
		Return(apperrors.ErrIntegrity).Once()

	err := suite.service.ClosePeriod(ctx, suite.entityID, suite.period.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_NotOpen() {
	ctx := context.Background()
	closed := suite.period
	closed.Status = domain.PeriodClosed

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(&closed, nil).Once()

	err := suite.service.ClosePeriod(ctx, suite.entityID, closed.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_Success() {
	ctx := context.Background()
	closed := suite.period
	closed.Status = domain.PeriodClosed

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(&closed, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, closed.PeriodID, domain.PeriodClosed, domain.PeriodOpen, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ReopenPeriod(ctx, suite.entityID, closed.PeriodID, suite.userID)

	suite.NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_LockedIsPermanent() {
	ctx := context.Background()
	locked := suite.period
	locked.Status = domain.PeriodLocked

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, locked.PeriodID).Return(&locked, nil).Once()

	err := suite.service.ReopenPeriod(ctx, suite.entityID, locked.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_OnlyClosedCanLock() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.period.PeriodID).Return(&suite.period, nil).Once()

	err := suite.service.LockPeriod(ctx, suite.entityID, suite.period.PeriodID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_Success() {
	ctx := context.Background()
	closed := suite.period
	closed.Status = domain.PeriodClosed

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, closed.PeriodID).Return(&closed, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, closed.PeriodID, domain.PeriodClosed, domain.PeriodLocked, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.LockPeriod(ctx, suite.entityID, closed.PeriodID, suite.userID)

	suite.NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Overlap() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "2026-03b",
		StartDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.entityID, req.StartDate).Return(&suite.period, nil).Once()

	_, err := suite.service.CreatePeriod(ctx, suite.entityID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreateMonthlyPeriods_FullYear() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.entityID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).
		Return(nil).Times(12)

	periods, err := suite.service.CreateMonthlyPeriods(ctx, suite.entityID, 2027, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 12)
	suite.Equal("2027-01", periods[0].Name)
	suite.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), periods[0].StartDate)
	suite.Equal(time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), periods[0].EndDate)
	suite.Equal("2027-02", periods[1].Name)
	suite.Equal(time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC), periods[1].EndDate)
	suite.Equal("2027-12", periods[11].Name)
	suite.Equal(time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), periods[11].EndDate)
	for _, p := range periods {
		suite.Equal(domain.PeriodOpen, p.Status)
	}
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreateMonthlyPeriods_StopsOnOverlap() {
	ctx := context.Background()
	marchStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.entityID, mock.MatchedBy(func(d time.Time) bool {
		return d.Before(marchStart)
	})).Return(nil, apperrors.ErrNotFound)
	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.entityID, marchStart).
		Return(&suite.period, nil).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).
		Return(nil).Times(2)

	_, err := suite.service.CreateMonthlyPeriods(ctx, suite.entityID, 2026, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Name:      "backwards",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.CreatePeriod(ctx, suite.entityID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PeriodServiceTestSuite) TestGetPeriodForDate_NoCoverage() {
	ctx := context.Background()
	date := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriodForDate", ctx, suite.entityID, date).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetPeriodForDate(ctx, suite.entityID, date)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
