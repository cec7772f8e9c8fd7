package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/dto"
	"github.com/SscSPs/loot_ledger_app/internal/handlers"
	"github.com/SscSPs/loot_ledger_app/internal/platform/config"
	"github.com/SscSPs/loot_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "loot-ledger-test"
)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine

	loot           *MockLootService
	consumable     *MockConsumableService
	sale           *MockSaleService
	ledger         *MockLedgerService
	distribution   *MockDistributionService
	identification *MockIdentificationService

	player domain.Actor
	dm     domain.Actor
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.loot = new(MockLootService)
	suite.consumable = new(MockConsumableService)
	suite.sale = new(MockSaleService)
	suite.ledger = new(MockLedgerService)
	suite.distribution = new(MockDistributionService)
	suite.identification = new(MockIdentificationService)

	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: testIssuer, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Loot:           suite.loot,
		Consumable:     suite.consumable,
		Sale:           suite.sale,
		Ledger:         suite.ledger,
		Distribution:   suite.distribution,
		Identification: suite.identification,
	}, nil)

	suite.player = domain.Actor{UserID: "player-1", CharacterID: domain.Int64Ptr(7)}
	suite.dm = domain.Actor{UserID: "dm-1", IsDM: true}
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.loot.AssertExpectations(suite.T())
	suite.consumable.AssertExpectations(suite.T())
	suite.sale.AssertExpectations(suite.T())
	suite.ledger.AssertExpectations(suite.T())
	suite.distribution.AssertExpectations(suite.T())
	suite.identification.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) token(actor domain.Actor) string {
	token, err := utils.GenerateJWT(actor, testSecret, time.Hour, testIssuer)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlersTestSuite) do(method, path string, actor *domain.Actor, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+suite.token(*actor))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestRequiresToken() {
	w := suite.do(http.MethodGet, "/api/v1/gold/totals", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestCreateLoot_Success() {
	body := dto.CreateLootRequest{Items: []dto.CreateLootItemRequest{{Name: "Longsword", Quantity: 2, Type: "weapon"}}}
	created := []domain.LootItem{{ID: 1, Name: "Longsword", Quantity: 2, Status: domain.StatusUnprocessed}}
	suite.loot.On("CreateLoot", mock.Anything, mock.MatchedBy(func(items []domain.LootItem) bool {
		return len(items) == 1 && items[0].Name == "Longsword" && items[0].Quantity == 2
	}), suite.player).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/loot", &suite.player, body)

	suite.Equal(http.StatusCreated, w.Code)
	var got []domain.LootItem
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 1)
	suite.Equal(int64(1), got[0].ID)
}

func (suite *HandlersTestSuite) TestCreateLoot_BindError() {
	body := dto.CreateLootRequest{Items: []dto.CreateLootItemRequest{{Name: "Rope", Quantity: 0}}}
	w := suite.do(http.MethodPost, "/api/v1/loot", &suite.player, body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListLoot_Grouped() {
	items := []domain.LootItem{
		{ID: 1, Name: "Arrow", Quantity: 20, Status: domain.StatusKeptParty},
		{ID: 2, Name: "Arrow", Quantity: 10, Status: domain.StatusKeptParty},
	}
	suite.loot.On("ListLoot", mock.Anything, domain.LootFilter{Statuses: []domain.LootStatus{domain.StatusKeptParty}}).
		Return(items, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/loot?status=Kept+Party&grouped=true", &suite.player, nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListLootResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got.Stacks, 1)
	suite.Equal(30, got.Stacks[0].Quantity)
}

func (suite *HandlersTestSuite) TestListLoot_UnknownStatus() {
	w := suite.do(http.MethodGet, "/api/v1/loot?status=Lost", &suite.player, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestGetLoot_NotFound() {
	suite.loot.On("GetLoot", mock.Anything, int64(42)).
		Return(nil, fmt.Errorf("%w: loot item 42 not found", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/loot/42", &suite.player, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestGetLoot_InvalidID() {
	w := suite.do(http.MethodGet, "/api/v1/loot/abc", &suite.player, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestTransition_ErrorMapping() {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: not allowed", apperrors.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: dm only", apperrors.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: busy", apperrors.ErrConflict), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	body := dto.TransitionLootRequest{ItemIDs: []int64{1}, Status: string(domain.StatusTrashed)}
	for _, tc := range cases {
		suite.loot.On("Transition", mock.Anything, mock.Anything, suite.player).Return(nil, tc.err).Once()
		w := suite.do(http.MethodPost, "/api/v1/loot/transition", &suite.player, body)
		suite.Equal(tc.code, w.Code, tc.err.Error())
	}
}

func (suite *HandlersTestSuite) TestTransition_PassesRequest() {
	body := dto.TransitionLootRequest{ItemIDs: []int64{1, 2}, Status: string(domain.StatusKeptSelf), WhoHas: domain.Int64Ptr(7)}
	expected := domain.TransitionRequest{ItemIDs: []int64{1, 2}, Status: domain.StatusKeptSelf, WhoHas: domain.Int64Ptr(7)}
	suite.loot.On("Transition", mock.Anything, expected, suite.player).Return([]domain.LootItem{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/loot/transition", &suite.player, body)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestSplit_RejectsEmptyPartition() {
	w := suite.do(http.MethodPost, "/api/v1/loot/3/split", &suite.player, dto.SplitLootRequest{Quantities: []int{}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUseConsumable() {
	item := &domain.LootItem{ID: 9, Name: "Wand of Light", Charges: domain.IntPtr(4)}
	suite.consumable.On("UseConsumable", mock.Anything,
		domain.UseConsumableRequest{Mode: domain.ConsumeCharges, LootItemID: 9}, suite.player).
		Return(item, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/consumables/use", &suite.player, dto.UseConsumableRequest{Mode: "charges", LootItemID: 9})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestSetCharges_OutOfRange() {
	w := suite.do(http.MethodPut, "/api/v1/consumables/9/charges", &suite.player, dto.SetChargesRequest{Charges: 51})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestSellUpTo() {
	result := &domain.SaleResult{SoldCount: 1, SoldTotal: decimal.NewFromInt(50)}
	suite.sale.On("SellUpTo", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(75))
	}), suite.player).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales/up-to", &suite.player, map[string]string{"amount": "75"})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestSellAll_NothingToSell() {
	suite.sale.On("SellAll", mock.Anything, suite.player).
		Return(nil, fmt.Errorf("%w: no valid items to sell", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales/all", &suite.player, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestTotals() {
	suite.ledger.On("Totals", mock.Anything).Return(domain.Coins{Gold: decimal.NewFromInt(12)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/gold/totals", &suite.player, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestListEntries_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/gold/entries?from=yesterday", &suite.player, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListEntries_PassesFilter() {
	next := "tok"
	suite.ledger.On("ListEntries", mock.Anything, mock.MatchedBy(func(f domain.LedgerFilter) bool {
		return f.Limit == 10 && f.From != nil && f.From.Day() == 2 && f.To == nil && f.NextToken == nil
	})).Return([]domain.LedgerEntry{}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/gold/entries?from=2024-03-02&limit=10", &suite.player, nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListLedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().NotNil(got.NextToken)
	suite.Equal("tok", *got.NextToken)
}

func (suite *HandlersTestSuite) TestBalance_NothingToDo() {
	suite.ledger.On("Balance", mock.Anything, suite.player).Return(nil, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/gold/balance", &suite.player, nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.False(got.Balanced)
}

func (suite *HandlersTestSuite) TestDefineDistribution_DMOnly() {
	body := map[string]string{"amount": "10"}

	w := suite.do(http.MethodPost, "/api/v1/gold/distribute/define-character", &suite.player, body)
	suite.Equal(http.StatusForbidden, w.Code)

	suite.distribution.On("DefineCharacterDistribute", mock.Anything, mock.Anything, suite.dm).
		Return(&domain.DistributionResult{Policy: domain.PolicyDefineCharacter}, nil).Once()
	w = suite.do(http.MethodPost, "/api/v1/gold/distribute/define-character", &suite.dm, body)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestDistributeAll_OpenToPlayers() {
	suite.distribution.On("DistributeAll", mock.Anything, suite.player).
		Return(nil, fmt.Errorf("%w: no active characters", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/gold/distribute/all", &suite.player, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestIdentify() {
	result := &domain.IdentifyResult{Success: true, Roll: 30, RequiredDC: 20}
	suite.identification.On("Identify", mock.Anything, int64(5), 30, suite.player).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/identify/5", &suite.player, dto.IdentifyRequest{Roll: 30})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestIdentifyBatch() {
	reqs := []domain.IdentifyRequest{{LootItemID: 5, Roll: 12}, {LootItemID: 6, Roll: 25}}
	suite.identification.On("IdentifyMany", mock.Anything, reqs, suite.player).
		Return([]domain.IdentifyResult{{}, {AlreadyAttempted: true}}, nil).Once()

	body := dto.IdentifyBatchRequest{Attempts: []dto.IdentifyAttempt{{LootItemID: 5, Roll: 12}, {LootItemID: 6, Roll: 25}}}
	w := suite.do(http.MethodPost, "/api/v1/identify/batch", &suite.player, body)
	suite.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---
func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
