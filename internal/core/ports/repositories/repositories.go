package repositories

// RepositoryProvider aggregates every repository facade the service layer
// needs, so wiring happens in one place.
type RepositoryProvider struct {
	Account   AccountRepositoryFacade
	Journal   JournalRepositoryFacade
	Period    PeriodRepositoryFacade
	Payable   PayableRepositoryFacade
	Bank      BankRepositoryFacade
	Payment   PaymentRepositoryFacade
	Reporting ReportingRepositoryFacade
}
