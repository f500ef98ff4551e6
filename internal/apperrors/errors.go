package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the requested change conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("action forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger-specific errors. Every one of these signals a financial-correctness
// failure and is surfaced synchronously to the caller; none are ever
// auto-corrected or treated as "close enough".
var (
	// ErrUnbalancedEntry indicates a journal entry whose debits do not equal its credits.
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")

	// ErrInactiveAccount indicates a posting referenced an inactive or unusable account.
	ErrInactiveAccount = errors.New("account is inactive")

	// ErrNotLeafAccount indicates a posting referenced an account that has children.
	ErrNotLeafAccount = errors.New("only leaf accounts may receive postings")

	// ErrClosedPeriod indicates a posting dated into a period that is not OPEN.
	ErrClosedPeriod = errors.New("fiscal period is not open for posting")

	// ErrAlreadyReversed indicates a second reversal attempt on the same entry.
	ErrAlreadyReversed = errors.New("journal entry has already been reversed")

	// ErrDuplicateCode indicates an account code already in use within the entity.
	ErrDuplicateCode = errors.New("account code already exists for entity")

	// ErrAccountCycle indicates a parent chain that would revisit the account.
	ErrAccountCycle = errors.New("account parent chain forms a cycle")

	// ErrAccountInUse indicates deactivation of an account with postings in an open period.
	ErrAccountInUse = errors.New("account has postings in an open period")

	// ErrUnreconciled indicates a period close attempted with control-account mismatches.
	ErrUnreconciled = errors.New("subsidiary ledger does not reconcile to control account")

	// ErrBalanceMismatch indicates a bank reconciliation whose cleared total does not
	// reach the statement ending balance.
	ErrBalanceMismatch = errors.New("reconciliation does not reach statement ending balance")

	// ErrInvalidRoutingNumber indicates an ACH routing number failing its checksum.
	ErrInvalidRoutingNumber = errors.New("invalid ACH routing number")

	// ErrDuplicateCheckNumber indicates a check number that was already issued.
	ErrDuplicateCheckNumber = errors.New("check number already issued")

	// ErrIntegrity indicates a violated accounting identity (assets != liabilities + equity).
	// It signals a defect in the posting engine itself: always logged, never swallowed.
	ErrIntegrity = errors.New("ledger integrity violation")
)

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
