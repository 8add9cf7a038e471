package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	"github.com/vendorfx/vendor_fx_app/internal/core/ports/providers"
	"github.com/vendorfx/vendor_fx_app/internal/core/services"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base string, symbols []string) (*providers.RateQuote, error) {
	args := m.Called(ctx, base, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.RateQuote), args.Error(1)
}

// --- Test Suite ---
type RefreshServiceTestSuite struct {
	suite.Suite
	mockProvider *MockRateProvider
	mockRateRepo *MockRateRepository
}

func (suite *RefreshServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.mockRateRepo = new(MockRateRepository)
}

func (suite *RefreshServiceTestSuite) newService(targets []string) *services.RefreshService {
	return services.NewRefreshService(suite.mockProvider, suite.mockRateRepo, "GBP", targets)
}

// --- Test Cases ---

func (suite *RefreshServiceTestSuite) TestRefreshRates_Success() {
	ctx := context.Background()
	service := suite.newService([]string{"GBP", "EUR", "CAD"})

	quote := &providers.RateQuote{
		Base: "GBP",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromFloat(1.17),
			"CAD": decimal.NewFromFloat(1.71),
		},
		Source: "frankfurter.app",
	}
	// The base currency is filtered out of the fetch.
	suite.mockProvider.On("FetchRates", ctx, "GBP", []string{"EUR", "CAD"}).Return(quote, nil).Once()

	var stored []domain.ExchangeRate
	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).(domain.ExchangeRate)) }).
		Return(nil).Times(3)

	count, err := service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, count) // two quotes plus the base self-rate
	suite.mockProvider.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())

	byQuote := make(map[string]domain.ExchangeRate, len(stored))
	for _, r := range stored {
		suite.Equal("GBP", r.BaseCurrencyCode)
		suite.Equal("frankfurter.app", r.Source)
		suite.Equal("fx-refresh", r.CreatedBy)
		byQuote[r.QuoteCurrencyCode] = r
	}
	suite.True(byQuote["EUR"].Rate.Equal(decimal.NewFromFloat(1.17)))
	suite.True(byQuote["CAD"].Rate.Equal(decimal.NewFromFloat(1.71)))
	suite.True(byQuote["GBP"].Rate.Equal(decimal.NewFromInt(1)))
}

func (suite *RefreshServiceTestSuite) TestRefreshRates_NoTargetsBeyondBase() {
	ctx := context.Background()
	service := suite.newService([]string{"GBP", "gbp", ""})

	count, err := service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, count)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates")
}

func (suite *RefreshServiceTestSuite) TestRefreshRates_ProviderFailure() {
	ctx := context.Background()
	service := suite.newService([]string{"EUR"})

	suite.mockProvider.On("FetchRates", ctx, "GBP", []string{"EUR"}).Return(nil, assert.AnError).Once()

	count, err := service.RefreshRates(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Equal(0, count)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertRate")
}

func (suite *RefreshServiceTestSuite) TestRefreshRates_SkipsNonPositiveRates() {
	ctx := context.Background()
	service := suite.newService([]string{"EUR", "CAD"})

	quote := &providers.RateQuote{
		Base: "GBP",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromFloat(1.17),
			"CAD": decimal.Zero,
		},
		Source: "frankfurter.app",
	}
	suite.mockProvider.On("FetchRates", ctx, "GBP", mock.AnythingOfType("[]string")).Return(quote, nil).Once()

	var stored []domain.ExchangeRate
	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).(domain.ExchangeRate)) }).
		Return(nil).Times(2)

	count, err := service.RefreshRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, count) // EUR plus the base self-rate, CAD skipped
	for _, r := range stored {
		suite.NotEqual("CAD", r.QuoteCurrencyCode)
	}
}

func (suite *RefreshServiceTestSuite) TestRefreshRates_UpsertFailureSkipsRate() {
	ctx := context.Background()
	service := suite.newService([]string{"EUR"})

	quote := &providers.RateQuote{
		Base:   "GBP",
		Rates:  map[string]decimal.Decimal{"EUR": decimal.NewFromFloat(1.17)},
		Source: "frankfurter.app",
	}
	suite.mockProvider.On("FetchRates", ctx, "GBP", []string{"EUR"}).Return(quote, nil).Once()

	suite.mockRateRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.QuoteCurrencyCode == "EUR"
	})).Return(assert.AnError).Once()
	suite.mockRateRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.QuoteCurrencyCode == "GBP"
	})).Return(nil).Once()

	count, err := service.RefreshRates(ctx)

	// Individual upsert failures are not fatal to the run.
	suite.Require().NoError(err)
	suite.Equal(1, count)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestRefreshService(t *testing.T) {
	suite.Run(t, new(RefreshServiceTestSuite))
}
