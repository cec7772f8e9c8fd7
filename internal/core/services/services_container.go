package services

import (
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(store portsrepo.Store, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Loot:           NewLootService(store, options...),
		Consumable:     NewConsumableService(store, options...),
		Sale:           NewSaleService(store, options...),
		Ledger:         NewLedgerService(store, options...),
		Distribution:   NewDistributionService(store, options...),
		Identification: NewIdentificationService(store, options...),
	}
}
