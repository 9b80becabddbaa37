package services

import (
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/platform/config"
)

// NewServiceContainer wires the full service graph on top of the
// repository provider.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	auditSvc := NewAuditService(repos.AuditRepo)
	documentSvc := NewDocumentService(repos.LoadRepo, repos.DetailRepo, repos.StopRepo, auditSvc)
	loadSvc := NewLoadService(repos.LoadRepo, repos.DetailRepo, repos.StopRepo, auditSvc, documentSvc)
	importSvc := NewImportService(repos.LoadRepo, repos.DetailRepo, repos.StopRepo, auditSvc)
	reportingSvc := NewReportingService(repos.ReportingRepo)
	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(cfg, repos.UserRepo)
	googleOAuthSvc := NewGoogleOAuthHandlerService(cfg)
	apiTokenSvc := NewAPITokenService(repos.APITokenRepo, repos.UserRepo)
	changeFeedSvc := NewChangeFeedService()

	return &portssvc.ServiceContainer{
		Load:               loadSvc,
		Import:             importSvc,
		Document:           documentSvc,
		Audit:              auditSvc,
		Reporting:          reportingSvc,
		User:               userSvc,
		TokenService:       tokenSvc,
		GoogleOAuthHandler: googleOAuthSvc,
		APIToken:           apiTokenSvc,
		ChangeFeed:         changeFeedSvc,
	}
}
