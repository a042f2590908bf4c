package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service container.
type RepositoryProvider struct {
	EntryRepo     EntryRepositoryWithTx
	PaymentRepo   PaymentRepositoryFacade
	ReportingRepo ReportingRepository
}
