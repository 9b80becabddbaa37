package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LoadRepo      LoadRepositoryFacade
	DetailRepo    LoadDetailRepositoryFacade
	StopRepo      StopDetailRepositoryFacade
	AuditRepo     AuditRepositoryFacade
	UserRepo      UserRepositoryFacade
	APITokenRepo  APITokenRepository
	ReportingRepo ReportingRepository
}
