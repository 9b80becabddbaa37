package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Load               LoadSvcFacade
	Import             ImportSvc
	Document           DocumentSvc
	Audit              AuditSvc
	Reporting          ReportingSvc
	User               UserSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	APIToken           APITokenSvc
	ChangeFeed         ChangeFeedSvc
}
