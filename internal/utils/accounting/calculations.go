package accounting

import (
	"fmt"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
)

// SignedAmountCents applies the correct sign to a line amount based on
// account type. This is used in both services and repositories to keep the
// accounting convention in one place.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmountCents(line domain.JournalLine, accountType domain.AccountType) (int64, error) {
	amount := line.AmountCents()
	isDebit := line.IsDebit()

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			amount = -amount
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			amount = -amount
		}
	default:
		return 0, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
	return amount, nil
}

// ValidateLineShape checks that exactly one side of the line is nonzero and
// that no side is negative.
func ValidateLineShape(line domain.JournalLine) error {
	if line.DebitCents < 0 || line.CreditCents < 0 {
		return fmt.Errorf("%w: line %s has a negative amount", apperrors.ErrValidation, line.LineID)
	}
	if (line.DebitCents == 0) == (line.CreditCents == 0) {
		return fmt.Errorf("%w: line %s must have exactly one nonzero side", apperrors.ErrValidation, line.LineID)
	}
	return nil
}

// ValidateEntryBalance checks the double-entry invariant over a set of lines:
// every line well-formed and sum(debits) == sum(credits) in integer cents.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	}

	var debits, credits int64
	for _, line := range lines {
		if err := ValidateLineShape(line); err != nil {
			return err
		}
		debits += line.DebitCents
		credits += line.CreditCents
	}

	if debits != credits {
		return fmt.Errorf("%w: debits are %d cents and credits are %d cents", apperrors.ErrUnbalancedEntry, debits, credits)
	}
	return nil
}

// NetChangeCents aggregates signed per-account balance changes for a set of
// lines. accountTypes must contain every referenced account.
func NetChangeCents(lines []domain.JournalLine, accountTypes map[string]domain.AccountType) (map[string]int64, error) {
	changes := make(map[string]int64, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", line.AccountID)
		}
		signed, err := SignedAmountCents(line, accountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] += signed
	}
	return changes, nil
}
