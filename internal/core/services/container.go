package services

import (
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/utils/matching"
)

// NewServiceContainer wires the service graph. The period service's close
// checks depend on the subledger and reporting services, which themselves sit
// on top of the period-gated journal engine; the late binding keeps the
// construction order simple.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, matchCfg matching.Config, achOrigin ACHOrigin) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account)
	periodSvc := NewPeriodService(repos.Period, repos.Journal)
	journalSvc := NewJournalService(repos.Journal, accountSvc, periodSvc)
	subledgerSvc := NewSubledgerService(repos.Payable, repos.Journal, accountSvc, journalSvc)
	bankRecSvc := NewBankRecService(repos.Bank, repos.Journal, periodSvc, matchCfg)
	paymentSvc := NewPaymentService(repos.Payment, repos.Bank, journalSvc, achOrigin)
	postingSvc := NewPostingService(journalSvc, subledgerSvc, paymentSvc, accountSvc, repos.Bank)
	reportingSvc := NewReportingService(repos.Reporting, repos.Period, accountSvc)

	periodSvc.SetCloseCheckers(subledgerSvc, reportingSvc)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Period:    periodSvc,
		Subledger: subledgerSvc,
		BankRec:   bankRecSvc,
		Payment:   paymentSvc,
		Posting:   postingSvc,
		Reporting: reportingSvc,
	}
}
