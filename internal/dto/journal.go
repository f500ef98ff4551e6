package dto

import (
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// CreateLineRequest is one line of a journal entry to post.
type CreateLineRequest struct {
	AccountID   string `json:"accountID" binding:"required"`
	DebitCents  int64  `json:"debitCents" binding:"min=0"`
	CreditCents int64  `json:"creditCents" binding:"min=0"`
	ClassTag    string `json:"classTag"`
}

// CreateEntryRequest defines the body for posting a journal entry.
type CreateEntryRequest struct {
	Date           time.Time           `json:"date" binding:"required"`
	Memo           string              `json:"memo" binding:"required"`
	SourceKind     domain.SourceKind   `json:"sourceKind"`
	SourceRef      string              `json:"sourceRef"`
	IdempotencyKey string              `json:"idempotencyKey"`
	Lines          []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest defines the body for reversing a posted entry.
type ReverseEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
}

// LineResponse is the response shape of a journal line.
type LineResponse struct {
	LineID      string `json:"lineID"`
	EntryID     string `json:"entryID"`
	AccountID   string `json:"accountID"`
	DebitCents  int64  `json:"debitCents"`
	CreditCents int64  `json:"creditCents"`
	ClassTag    string `json:"classTag,omitempty"`
	Cleared     bool   `json:"cleared"`
}

// EntryResponse is the response shape of a journal entry.
type EntryResponse struct {
	EntryID          string             `json:"entryID"`
	EntityID         string             `json:"entityID"`
	PeriodID         string             `json:"periodID"`
	Date             time.Time          `json:"date"`
	Memo             string             `json:"memo"`
	Status           domain.EntryStatus `json:"status"`
	SourceKind       domain.SourceKind  `json:"sourceKind"`
	SourceRef        string             `json:"sourceRef,omitempty"`
	ReversedByID     *string            `json:"reversedByID,omitempty"`
	ReversalOfID     *string            `json:"reversalOfID,omitempty"`
	TotalDebitsCents int64              `json:"totalDebitsCents"`
	Lines            []LineResponse     `json:"lines,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// ToLineResponse maps a domain line.
func ToLineResponse(l domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		EntryID:     l.EntryID,
		AccountID:   l.AccountID,
		DebitCents:  l.DebitCents,
		CreditCents: l.CreditCents,
		ClassTag:    l.ClassTag,
		Cleared:     l.Cleared,
	}
}

// ToEntryResponse maps a domain entry with its lines.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntityID:         e.EntityID,
		PeriodID:         e.PeriodID,
		Date:             e.EntryDate,
		Memo:             e.Memo,
		Status:           e.Status,
		SourceKind:       e.SourceKind,
		SourceRef:        e.SourceRef,
		ReversedByID:     e.ReversedByID,
		ReversalOfID:     e.ReversalOfID,
		TotalDebitsCents: e.TotalDebitsCents,
		CreatedAt:        e.CreatedAt,
	}
	for _, l := range e.Lines {
		resp.Lines = append(resp.Lines, ToLineResponse(l))
	}
	return resp
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
	IncludeLines     bool    `form:"includeLines"`
}

// ListEntriesResponse is a paginated entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ListLinesResponse is a paginated listing of lines for one account.
type ListLinesResponse struct {
	Lines     []LineResponse `json:"lines"`
	NextToken *string        `json:"nextToken,omitempty"`
}
