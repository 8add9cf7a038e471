package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	portssvc "github.com/vendorfx/vendor_fx_app/internal/core/ports/services"
	"github.com/vendorfx/vendor_fx_app/internal/core/services"
)

// --- Mock VendorRepository ---
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) SaveCurrencySetting(ctx context.Context, setting domain.VendorCurrencySetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockVendorRepository) FindCurrencySetting(ctx context.Context, vendorID string) (*domain.VendorCurrencySetting, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorCurrencySetting), args.Error(1)
}

// --- Test Suite ---
type VendorServiceTestSuite struct {
	suite.Suite
	mockVendorRepo *MockVendorRepository
	service        portssvc.VendorSvcFacade
}

func (suite *VendorServiceTestSuite) SetupTest() {
	suite.mockVendorRepo = new(MockVendorRepository)
	suite.service = services.NewVendorService(suite.mockVendorRepo, "GBP", []string{"GBP", "EUR", "CAD", "AED", "INR"})
}

// --- Test Cases ---

func (suite *VendorServiceTestSuite) TestGetCurrency_Success() {
	ctx := context.Background()
	setting := &domain.VendorCurrencySetting{VendorID: "v-1", CurrencyCode: "EUR"}

	suite.mockVendorRepo.On("FindCurrencySetting", ctx, "v-1").Return(setting, nil).Once()

	currency := suite.service.GetCurrency(ctx, "v-1")

	suite.Equal("EUR", currency)
	suite.mockVendorRepo.AssertExpectations(suite.T())
}

func (suite *VendorServiceTestSuite) TestGetCurrency_EmptyVendorID_DefaultsToBase() {
	ctx := context.Background()

	currency := suite.service.GetCurrency(ctx, "")

	suite.Equal("GBP", currency)
	suite.mockVendorRepo.AssertNotCalled(suite.T(), "FindCurrencySetting")
}

func (suite *VendorServiceTestSuite) TestGetCurrency_NoSetting_DefaultsToBase() {
	ctx := context.Background()

	suite.mockVendorRepo.On("FindCurrencySetting", ctx, "v-1").Return(nil, apperrors.ErrNotFound).Once()

	currency := suite.service.GetCurrency(ctx, "v-1")

	suite.Equal("GBP", currency)
}

func (suite *VendorServiceTestSuite) TestGetCurrency_RepoFailure_DefaultsToBase() {
	ctx := context.Background()

	suite.mockVendorRepo.On("FindCurrencySetting", ctx, "v-1").Return(nil, assert.AnError).Once()

	currency := suite.service.GetCurrency(ctx, "v-1")

	suite.Equal("GBP", currency)
}

func (suite *VendorServiceTestSuite) TestGetCurrency_BlankSetting_DefaultsToBase() {
	ctx := context.Background()
	setting := &domain.VendorCurrencySetting{VendorID: "v-1", CurrencyCode: "  "}

	suite.mockVendorRepo.On("FindCurrencySetting", ctx, "v-1").Return(setting, nil).Once()

	currency := suite.service.GetCurrency(ctx, "v-1")

	suite.Equal("GBP", currency)
}

func (suite *VendorServiceTestSuite) TestSetCurrency_Success() {
	ctx := context.Background()

	var stored domain.VendorCurrencySetting
	suite.mockVendorRepo.On("SaveCurrencySetting", ctx, mock.AnythingOfType("domain.VendorCurrencySetting")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.VendorCurrencySetting) }).
		Return(nil).Once()

	setting, err := suite.service.SetCurrency(ctx, "v-1", "eur", "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(setting)
	suite.Equal("v-1", stored.VendorID)
	suite.Equal("EUR", stored.CurrencyCode)
	suite.Equal("admin-1", stored.CreatedBy)
	suite.mockVendorRepo.AssertExpectations(suite.T())
}

func (suite *VendorServiceTestSuite) TestSetCurrency_UnknownCode_CoercedToBase() {
	ctx := context.Background()

	var stored domain.VendorCurrencySetting
	suite.mockVendorRepo.On("SaveCurrencySetting", ctx, mock.AnythingOfType("domain.VendorCurrencySetting")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.VendorCurrencySetting) }).
		Return(nil).Once()

	setting, err := suite.service.SetCurrency(ctx, "v-1", "XYZ", "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(setting)
	suite.Equal("GBP", stored.CurrencyCode)
}

func (suite *VendorServiceTestSuite) TestSetCurrency_EmptyVendorID() {
	ctx := context.Background()

	setting, err := suite.service.SetCurrency(ctx, "", "EUR", "admin-1")

	suite.Require().Error(err)
	suite.Nil(setting)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVendorRepo.AssertNotCalled(suite.T(), "SaveCurrencySetting")
}

func (suite *VendorServiceTestSuite) TestSetCurrency_SaveFailure() {
	ctx := context.Background()

	suite.mockVendorRepo.On("SaveCurrencySetting", ctx, mock.AnythingOfType("domain.VendorCurrencySetting")).Return(assert.AnError).Once()

	setting, err := suite.service.SetCurrency(ctx, "v-1", "EUR", "admin-1")

	suite.Require().Error(err)
	suite.Nil(setting)
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Suite ---
func TestVendorService(t *testing.T) {
	suite.Run(t, new(VendorServiceTestSuite))
}
