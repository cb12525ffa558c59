package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/core/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepositoryFacade = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) DeactivateTenant(ctx context.Context, tenantID string, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	service        portssvc.TenantSvcFacade
	userID         string
	ctx            context.Context
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.service = services.NewTenantService(suite.mockTenantRepo)
	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
}

func (suite *TenantServiceTestSuite) activeTenant() *domain.Tenant {
	return &domain.Tenant{
		TenantID:     uuid.NewString(),
		Name:         "Testovacia firma s.r.o.",
		CurrencyCode: "EUR",
		IsActive:     true,
	}
}

func (suite *TenantServiceTestSuite) TestCreateTenant_DefaultsToEUR() {
	req := dto.CreateTenantRequest{Name: "Nova firma s.r.o."}

	suite.mockTenantRepo.On("SaveTenant", suite.ctx, mock.AnythingOfType("domain.Tenant")).Return(nil).Once()

	tenant, err := suite.service.CreateTenant(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("EUR", tenant.CurrencyCode)
	suite.True(tenant.IsActive)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestDisableTenant_Success() {
	tenant := suite.activeTenant()

	suite.mockTenantRepo.On("FindTenantByID", suite.ctx, tenant.TenantID).Return(tenant, nil).Once()
	suite.mockTenantRepo.On("DeactivateTenant", suite.ctx, tenant.TenantID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DisableTenant(suite.ctx, tenant.TenantID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestDisableTenant_AlreadyInactiveIsIdempotent() {
	tenant := suite.activeTenant()
	tenant.IsActive = false

	suite.mockTenantRepo.On("FindTenantByID", suite.ctx, tenant.TenantID).Return(tenant, nil).Once()

	err := suite.service.DisableTenant(suite.ctx, tenant.TenantID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "DeactivateTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestDisableTenant_UnknownTenant() {
	tenantID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", suite.ctx, tenantID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DisableTenant(suite.ctx, tenantID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
