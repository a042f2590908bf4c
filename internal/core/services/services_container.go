package services

import (
	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/platform/config"
	"github.com/staffbook/staff_ledger_app/internal/platform/events"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Entry = NewEntryService(repos.EntryRepo)
	container.Payment = NewPaymentService(repos.EntryRepo, repos.PaymentRepo, publisher, cfg.ReferenceZone)
	container.Reporting = NewReportingService(repos.EntryRepo, repos.ReportingRepo, cfg.ReferenceZone)

	return container
}
