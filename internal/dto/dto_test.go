package dto

import (
	"testing"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLootRequest_ToDomain(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	value := decimal.NewFromInt(50)
	req := CreateLootRequest{Items: []CreateLootItemRequest{
		{Name: "Potion of CLW", Quantity: 3, SessionDate: &day, Value: &value, Type: "potion"},
		{Name: "Longsword", Quantity: 1, ModIDs: []int64{2}},
	}}

	items := req.ToDomain()
	require.Len(t, items, 2)
	assert.Equal(t, day, items[0].SessionDate)
	assert.True(t, items[0].Value.Equal(value))
	assert.True(t, items[1].SessionDate.IsZero())
	assert.Equal(t, []int64{2}, items[1].ModIDs)
}

func TestCreateLedgerEntryRequest_ToDomain(t *testing.T) {
	req := CreateLedgerEntryRequest{
		Gold:   decimal.NewFromInt(10),
		Silver: decimal.NewFromInt(5),
		Notes:  "bounty",
	}

	entry := req.ToDomain(domain.TxDeposit)
	assert.Equal(t, domain.TxDeposit, entry.TransactionType)
	assert.True(t, entry.Gold.Equal(decimal.NewFromInt(10)))
	assert.True(t, entry.Silver.Equal(decimal.NewFromInt(5)))
	assert.True(t, entry.SessionDate.IsZero())
}

func TestUseConsumableRequest_ToDomain(t *testing.T) {
	got := UseConsumableRequest{Mode: "quantity", ItemID: 9}.ToDomain()
	assert.Equal(t, domain.ConsumeQuantity, got.Mode)
	assert.Equal(t, int64(9), got.CatalogItemID)
	assert.NoError(t, got.Validate())
}

func TestRegisterValidators(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))

	assert.NoError(t, v.Struct(TransitionLootRequest{ItemIDs: []int64{1}, Status: "Kept Party"}))
	assert.Error(t, v.Struct(TransitionLootRequest{ItemIDs: []int64{1}, Status: "Lost"}))

	assert.NoError(t, v.Struct(CreateLedgerEntryRequest{TransactionType: "Party Loot Purchase"}))
	assert.Error(t, v.Struct(CreateLedgerEntryRequest{TransactionType: "Loan"}))

	assert.NoError(t, v.Struct(ListLootQuery{}))
	assert.Error(t, v.Struct(ListLootQuery{Status: []string{"Sold", "Gone"}}))
}
