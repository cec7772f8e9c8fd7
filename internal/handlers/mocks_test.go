package handlers_test

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LootService ---
type MockLootService struct {
	mock.Mock
}

func (m *MockLootService) GetLoot(ctx context.Context, id int64) (*domain.LootItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LootItem), args.Error(1)
}
func (m *MockLootService) ListLoot(ctx context.Context, filter domain.LootFilter) ([]domain.LootItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LootItem), args.Error(1)
}
func (m *MockLootService) CreateLoot(ctx context.Context, items []domain.LootItem, actor domain.Actor) ([]domain.LootItem, error) {
	args := m.Called(ctx, items, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LootItem), args.Error(1)
}
func (m *MockLootService) Transition(ctx context.Context, req domain.TransitionRequest, actor domain.Actor) ([]domain.LootItem, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LootItem), args.Error(1)
}
func (m *MockLootService) Split(ctx context.Context, itemID int64, partition []int, actor domain.Actor) ([]domain.LootItem, error) {
	args := m.Called(ctx, itemID, partition, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LootItem), args.Error(1)
}

var _ portssvc.LootSvcFacade = (*MockLootService)(nil)

// --- Mock ConsumableService ---
type MockConsumableService struct {
	mock.Mock
}

func (m *MockConsumableService) UseConsumable(ctx context.Context, req domain.UseConsumableRequest, actor domain.Actor) (*domain.LootItem, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LootItem), args.Error(1)
}
func (m *MockConsumableService) SetCharges(ctx context.Context, itemID int64, charges int, actor domain.Actor) (*domain.LootItem, error) {
	args := m.Called(ctx, itemID, charges, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LootItem), args.Error(1)
}
func (m *MockConsumableService) ListConsumables(ctx context.Context) (*domain.ConsumableSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsumableSummary), args.Error(1)
}
func (m *MockConsumableService) UseHistory(ctx context.Context, limit int) ([]domain.ConsumableUseRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsumableUseRecord), args.Error(1)
}

var _ portssvc.ConsumableSvcFacade = (*MockConsumableService)(nil)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) PendingSaleSummary(ctx context.Context) (*domain.PendingSaleSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingSaleSummary), args.Error(1)
}
func (m *MockSaleService) SaleHistory(ctx context.Context, limit, offset int) ([]domain.SoldRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SoldRecord), args.Error(1)
}
func (m *MockSaleService) SellAll(ctx context.Context, actor domain.Actor) (*domain.SaleResult, error) {
	return m.saleResult(m.Called(ctx, actor))
}
func (m *MockSaleService) SellUpTo(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.SaleResult, error) {
	return m.saleResult(m.Called(ctx, amount, actor))
}
func (m *MockSaleService) SellSelected(ctx context.Context, itemIDs []int64, actor domain.Actor) (*domain.SaleResult, error) {
	return m.saleResult(m.Called(ctx, itemIDs, actor))
}
func (m *MockSaleService) SellAllExcept(ctx context.Context, keepIDs []int64, actor domain.Actor) (*domain.SaleResult, error) {
	return m.saleResult(m.Called(ctx, keepIDs, actor))
}
func (m *MockSaleService) saleResult(args mock.Arguments) (*domain.SaleResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleResult), args.Error(1)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Totals(ctx context.Context) (domain.Coins, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Coins), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}
func (m *MockLedgerService) RecordEntry(ctx context.Context, entry domain.LedgerEntry, actor domain.Actor) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) Balance(ctx context.Context, actor domain.Actor) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock DistributionService ---
type MockDistributionService struct {
	mock.Mock
}

func (m *MockDistributionService) DistributeAll(ctx context.Context, actor domain.Actor) (*domain.DistributionResult, error) {
	return m.result(m.Called(ctx, actor))
}
func (m *MockDistributionService) DistributePlusPartyLoot(ctx context.Context, actor domain.Actor) (*domain.DistributionResult, error) {
	return m.result(m.Called(ctx, actor))
}
func (m *MockDistributionService) DefinePartyLootDistribute(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.DistributionResult, error) {
	return m.result(m.Called(ctx, amount, actor))
}
func (m *MockDistributionService) DefineCharacterDistribute(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.DistributionResult, error) {
	return m.result(m.Called(ctx, amount, actor))
}
func (m *MockDistributionService) result(args mock.Arguments) (*domain.DistributionResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DistributionResult), args.Error(1)
}

var _ portssvc.DistributionSvcFacade = (*MockDistributionService)(nil)

// --- Mock IdentificationService ---
type MockIdentificationService struct {
	mock.Mock
}

func (m *MockIdentificationService) Identify(ctx context.Context, itemID int64, roll int, actor domain.Actor) (*domain.IdentifyResult, error) {
	args := m.Called(ctx, itemID, roll, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentifyResult), args.Error(1)
}
func (m *MockIdentificationService) IdentifyMany(ctx context.Context, reqs []domain.IdentifyRequest, actor domain.Actor) ([]domain.IdentifyResult, error) {
	args := m.Called(ctx, reqs, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IdentifyResult), args.Error(1)
}

var _ portssvc.IdentificationSvcFacade = (*MockIdentificationService)(nil)
