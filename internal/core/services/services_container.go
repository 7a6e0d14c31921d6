package services

import (
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/card_inventory_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, store portsrepo.RecordStore) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:  NewLedgerService(store, WithCurrencyCode(cfg.CurrencyCode)),
		Metrics: NewMetricsService(),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
	_ portssvc.MetricsSvc      = (*metricsService)(nil)
)
