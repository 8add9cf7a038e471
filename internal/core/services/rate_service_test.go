package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	portssvc "github.com/vendorfx/vendor_fx_app/internal/core/ports/services"
	"github.com/vendorfx/vendor_fx_app/internal/core/services"
	"github.com/vendorfx/vendor_fx_app/internal/dto"
)

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) FindRate(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrencyCode, quoteCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockRateRepository
	service      portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockRateRepository)
	suite.service = services.NewRateService(suite.mockRateRepo)
}

// --- Test Cases ---

func (suite *RateServiceTestSuite) TestGetRateToBase_IdentityPair() {
	ctx := context.Background()

	rate, err := suite.service.GetRateToBase(ctx, "GBP", "GBP")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	// Identity never hits storage.
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRate")
}

func (suite *RateServiceTestSuite) TestGetRateToBase_IdentityPair_Normalized() {
	ctx := context.Background()

	rate, err := suite.service.GetRateToBase(ctx, " gbp ", "GBP")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRate")
}

func (suite *RateServiceTestSuite) TestGetRateToBase_Success() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{
		BaseCurrencyCode:  "GBP",
		QuoteCurrencyCode: "EUR",
		Rate:              decimal.NewFromFloat(1.17),
	}

	suite.mockRateRepo.On("FindRate", ctx, "GBP", "EUR").Return(stored, nil).Once()

	rate, err := suite.service.GetRateToBase(ctx, "EUR", "GBP")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromFloat(1.17)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetRateToBase_NotFound() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindRate", ctx, "GBP", "AED").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetRateToBase(ctx, "AED", "GBP")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetRate_InvalidCode() {
	ctx := context.Background()

	rate, err := suite.service.GetRate(ctx, "GB", "EUR")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestGetRate_Success() {
	ctx := context.Background()
	expected := &domain.ExchangeRate{BaseCurrencyCode: "GBP", QuoteCurrencyCode: "EUR"}

	suite.mockRateRepo.On("FindRate", ctx, "GBP", "EUR").Return(expected, nil).Once()

	rate, err := suite.service.GetRate(ctx, "gbp", "eur")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestListRates_Success() {
	ctx := context.Background()
	expected := []domain.ExchangeRate{
		{BaseCurrencyCode: "GBP", QuoteCurrencyCode: "EUR"},
		{BaseCurrencyCode: "GBP", QuoteCurrencyCode: "INR"},
	}

	suite.mockRateRepo.On("ListRates", ctx).Return(expected, nil).Once()

	rates, err := suite.service.ListRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, rates)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestUpsertRate_Success() {
	ctx := context.Background()
	req := dto.UpsertRateRequest{
		BaseCurrencyCode:  "gbp",
		QuoteCurrencyCode: "eur",
		Rate:              decimal.NewFromFloat(1.17),
	}

	var stored domain.ExchangeRate
	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.ExchangeRate) }).
		Return(nil).Once()

	rate, err := suite.service.UpsertRate(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("GBP", stored.BaseCurrencyCode)
	suite.Equal("EUR", stored.QuoteCurrencyCode)
	suite.True(stored.Rate.Equal(req.Rate))
	suite.Equal("manual", stored.Source)
	suite.Equal("admin-1", stored.CreatedBy)
	suite.WithinDuration(time.Now().UTC(), stored.ObservedAt, time.Minute)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestUpsertRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.UpsertRateRequest{
		BaseCurrencyCode:  "GBP",
		QuoteCurrencyCode: "EUR",
		Rate:              decimal.Zero,
	}

	rate, err := suite.service.UpsertRate(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "must be positive")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertRate")
}

func (suite *RateServiceTestSuite) TestUpsertRate_SamePair() {
	ctx := context.Background()
	req := dto.UpsertRateRequest{
		BaseCurrencyCode:  "GBP",
		QuoteCurrencyCode: "gbp",
		Rate:              decimal.NewFromInt(1),
	}

	rate, err := suite.service.UpsertRate(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertRate")
}

func (suite *RateServiceTestSuite) TestUpsertRate_RepoFailure() {
	ctx := context.Background()
	req := dto.UpsertRateRequest{
		BaseCurrencyCode:  "GBP",
		QuoteCurrencyCode: "EUR",
		Rate:              decimal.NewFromFloat(1.17),
	}

	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(assert.AnError).Once()

	rate, err := suite.service.UpsertRate(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, assert.AnError)
}

func TestNewRateService(t *testing.T) {
	mockRateRepo := new(MockRateRepository)

	service := services.NewRateService(mockRateRepo)

	assert.NotNil(t, service)
	var _ portssvc.RateSvcFacade = service
}

// --- Run Suite ---
func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
