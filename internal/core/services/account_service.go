package services

import (
	"context"
	"errors"
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

// maxAncestorDepth caps the parent-chain walk; any chain this deep is
// treated as a cycle.
const maxAncestorDepth = 64

// accountService implements the chart-of-accounts registry.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account in the entity's chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.FindAccountByCode(ctx, entityID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %s", apperrors.ErrDuplicateCode, req.Code)
	}

	accountID := uuid.NewString()
	if req.ParentAccountID != "" {
		if err := s.validateParentChain(ctx, entityID, accountID, req.ParentAccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       accountID,
		EntityID:        entityID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		NormalSide:      domain.NormalSideFor(req.AccountType),
		ParentAccountID: req.ParentAccountID,
		Control:         req.Control,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// validateParentChain walks the ancestor chain from parentID. The chain must
// stay inside the entity and must never revisit the new account.
func (s *accountService) validateParentChain(ctx context.Context, entityID, newAccountID, parentID string) error {
	current := parentID
	for depth := 0; current != ""; depth++ {
		if depth >= maxAncestorDepth {
			return fmt.Errorf("%w: ancestor chain exceeds depth %d", apperrors.ErrAccountCycle, maxAncestorDepth)
		}
		if current == newAccountID {
			return apperrors.ErrAccountCycle
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, current)
			}
			return fmt.Errorf("failed to walk parent chain: %w", err)
		}
		if parent.EntityID != entityID {
			return fmt.Errorf("%w: parent account %s belongs to a different entity", apperrors.ErrValidation, current)
		}
		current = parent.ParentAccountID
	}
	return nil
}

// GetAccountByID retrieves an account, scoped to the entity.
func (s *accountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts returns a paginated listing of the entity's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, entityID string, params dto.ListParams) (*dto.ListAccountsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, entityID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	resp := &dto.ListAccountsResponse{NextToken: nextToken}
	for i := range accounts {
		resp.Accounts = append(resp.Accounts, dto.ToAccountResponse(&accounts[i]))
	}
	return resp, nil
}

// DeactivateAccount soft-deletes an account. An account with posted
// references dated in an OPEN period cannot be deactivated; historical
// references in closed or locked periods are fine.
func (s *accountService) DeactivateAccount(ctx context.Context, entityID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, entityID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil // Already inactive
	}

	inUse, err := s.accountRepo.HasPostingsInOpenPeriod(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check open-period postings: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: account %s", apperrors.ErrAccountInUse, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// GetControlAccount returns the entity's AP or AR control account.
func (s *accountService) GetControlAccount(ctx context.Context, entityID string, control domain.ControlType) (*domain.Account, error) {
	return s.accountRepo.FindControlAccount(ctx, entityID, control)
}

// RebuildBalances re-derives every cached account balance for the entity
// from the posted line log. Cached balances are an optimization; the log is
// the source of truth, so this can always run.
func (s *accountService) RebuildBalances(ctx context.Context, entityID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.accountRepo.RebuildBalances(ctx, entityID); err != nil {
		logger.Error("Failed to rebuild balances", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return fmt.Errorf("failed to rebuild balances: %w", err)
	}
	logger.Info("Cached balances rebuilt", slog.String("entity_id", entityID))
	return nil
}

// AssertPostable enforces the registry validity rules for a posting: every
// referenced account must exist, be active, be a leaf, and belong to the
// same entity.
func (s *accountService) AssertPostable(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	unique := uniqueStrings(accountIDs)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, id := range unique {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if acc.EntityID != entityID {
			return nil, fmt.Errorf("%w: account %s does not belong to entity %s", apperrors.ErrNotFound, id, entityID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrInactiveAccount, id)
		}
		hasChildren, err := s.accountRepo.HasChildren(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check children of account %s: %w", id, err)
		}
		if hasChildren {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotLeafAccount, id)
		}
	}
	return accounts, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
