package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/core/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

// --- Mock TemplateRepository ---
type MockTemplateRepository struct {
	mock.Mock
}

var _ portsrepo.TemplateRepositoryFacade = (*MockTemplateRepository)(nil)

func (m *MockTemplateRepository) SaveTemplate(ctx context.Context, template domain.PostingTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.PostingTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListTemplates(ctx context.Context, tenantID string) ([]domain.PostingTemplate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostingTemplate), args.Error(1)
}

// --- Test Suite ---
// The applier runs against a real entry service so template expansion goes
// through the same draft-creation path the API uses.
type TemplateServiceTestSuite struct {
	suite.Suite
	mockTemplateRepo *MockTemplateRepository
	mockEntryRepo    *MockEntryRepository
	mockAccountSvc   *MockAccountService
	service          portssvc.TemplateSvcFacade
	tenantID         string
	userID           string
	expenseAcc       domain.Account
	payableAcc       domain.Account
	ctx              context.Context
}

func (suite *TemplateServiceTestSuite) SetupTest() {
	suite.mockTemplateRepo = new(MockTemplateRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)

	entrySvc := services.NewEntryService(suite.mockEntryRepo, suite.mockAccountSvc, new(MockCurrencyService))
	suite.service = services.NewTemplateService(suite.mockTemplateRepo, suite.mockAccountSvc, entrySvc)

	suite.ctx = context.Background()
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.expenseAcc = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "518",
		Name:        "Ostatne sluzby",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.payableAcc = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "321",
		Name:        "Dodavatelia",
		AccountType: domain.Liability,
		IsActive:    true,
	}
}

func (suite *TemplateServiceTestSuite) rentTemplate() *domain.PostingTemplate {
	templateID := uuid.NewString()
	return &domain.PostingTemplate{
		TemplateID:   templateID,
		TenantID:     suite.tenantID,
		Name:         "Monthly rent",
		DocumentType: domain.DocInvoiceReceived,
		Lines: []domain.TemplateLine{
			{
				TemplateLineID: uuid.NewString(),
				TemplateID:     templateID,
				Position:       1,
				AccountCode:    "518",
				Side:           domain.Debit,
				AmountKind:     domain.AmountFixed,
				Amount:         decimal.RequireFromString("100.00"),
				Description:    "Rent expense",
			},
			{
				TemplateLineID: uuid.NewString(),
				TemplateID:     templateID,
				Position:       2,
				AccountCode:    "321",
				Side:           domain.Credit,
				AmountKind:     domain.AmountFixed,
				Amount:         decimal.RequireFromString("100.00"),
				Description:    "Payable to landlord",
			},
		},
	}
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_Success() {
	req := dto.CreateTemplateRequest{
		Name:         "Monthly rent",
		DocumentType: domain.DocInvoiceReceived,
		Lines: []dto.CreateTemplateLineRequest{
			{AccountCode: "518", Side: domain.Debit, AmountKind: domain.AmountFixed, Amount: decimal.RequireFromString("100.00")},
			{AccountCode: "321", Side: domain.Credit, AmountKind: domain.AmountFixed, Amount: decimal.RequireFromString("100.00")},
		},
	}

	suite.mockTemplateRepo.On("SaveTemplate", suite.ctx, mock.AnythingOfType("domain.PostingTemplate")).Return(nil).Once()

	template, err := suite.service.CreateTemplate(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Monthly rent", template.Name)
	suite.Len(template.Lines, 2)
	suite.Equal(1, template.Lines[0].Position)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_NoLines() {
	req := dto.CreateTemplateRequest{Name: "Empty", DocumentType: domain.DocInternal}

	_, err := suite.service.CreateTemplate(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTemplateEmpty)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_NegativeFixedAmount() {
	req := dto.CreateTemplateRequest{
		Name:         "Bad",
		DocumentType: domain.DocInternal,
		Lines: []dto.CreateTemplateLineRequest{
			{AccountCode: "518", Side: domain.Debit, AmountKind: domain.AmountFixed, Amount: decimal.RequireFromString("-5.00")},
		},
	}

	_, err := suite.service.CreateTemplate(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TemplateServiceTestSuite) TestApplyTemplate_ExpandsBalancedDraft() {
	template := suite.rentTemplate()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockTemplateRepo.On("FindTemplateByID", suite.ctx, template.TemplateID).Return(template, nil).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "518", "").Return(&suite.expenseAcc, nil).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "321", "").Return(&suite.payableAcc, nil).Once()
	suite.mockEntryRepo.On("SaveDraftEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.ApplyTemplate(suite.ctx, suite.tenantID, template.TemplateID, date, "March rent", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(domain.DocInvoiceReceived, entry.DocumentType)
	suite.Equal("March rent", entry.Description)
	suite.True(entry.EntryDate.Equal(date))
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(suite.expenseAcc.AccountID, entry.Lines[0].AccountID)
	suite.Equal(suite.payableAcc.AccountID, entry.Lines[1].AccountID)
	suite.True(entry.TotalDebit.Equal(entry.TotalCredit), "fixed-amount template must expand balanced")
	suite.True(entry.TotalDebit.Equal(decimal.RequireFromString("100.00")))
}

func (suite *TemplateServiceTestSuite) TestApplyTemplate_DefaultsDescriptionToName() {
	template := suite.rentTemplate()

	suite.mockTemplateRepo.On("FindTemplateByID", suite.ctx, template.TemplateID).Return(template, nil).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "518", "").Return(&suite.expenseAcc, nil).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "321", "").Return(&suite.payableAcc, nil).Once()
	suite.mockEntryRepo.On("SaveDraftEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.ApplyTemplate(suite.ctx, suite.tenantID, template.TemplateID, time.Now(), "", suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Monthly rent", entry.Description)
}

func (suite *TemplateServiceTestSuite) TestApplyTemplate_UnresolvedCodeIsMarkedNotFatal() {
	template := suite.rentTemplate()
	template.Lines[0].AccountCode = "519"
	template.Lines[0].Analytic = "100"

	suite.mockTemplateRepo.On("FindTemplateByID", suite.ctx, template.TemplateID).Return(template, nil).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "519", "100").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "321", "").Return(&suite.payableAcc, nil).Once()
	suite.mockEntryRepo.On("SaveDraftEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.ApplyTemplate(suite.ctx, suite.tenantID, template.TemplateID, time.Now(), "", suite.userID)

	suite.Require().NoError(err)
	suite.Empty(entry.Lines[0].AccountID)
	suite.Contains(entry.Lines[0].Description, "[unresolved account 519.100]")
	suite.Equal(suite.payableAcc.AccountID, entry.Lines[1].AccountID)
}

func (suite *TemplateServiceTestSuite) TestApplyTemplate_PercentLinesExpandWithZeroAmount() {
	template := suite.rentTemplate()
	template.Lines[0].AmountKind = domain.AmountPercent
	template.Lines[0].Percent = decimal.RequireFromString("80")

	suite.mockTemplateRepo.On("FindTemplateByID", suite.ctx, template.TemplateID).Return(template, nil).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "518", "").Return(&suite.expenseAcc, nil).Once()
	suite.mockAccountSvc.On("LookupAccountByCode", suite.ctx, suite.tenantID, "321", "").Return(&suite.payableAcc, nil).Once()
	suite.mockEntryRepo.On("SaveDraftEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.ApplyTemplate(suite.ctx, suite.tenantID, template.TemplateID, time.Now(), "", suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Lines[0].Amount.IsZero())
	suite.True(entry.Lines[1].Amount.Equal(decimal.RequireFromString("100.00")))
}

func (suite *TemplateServiceTestSuite) TestApplyTemplate_WrongTenantIsNotFound() {
	template := suite.rentTemplate()
	template.TenantID = uuid.NewString()

	suite.mockTemplateRepo.On("FindTemplateByID", suite.ctx, template.TemplateID).Return(template, nil).Once()

	_, err := suite.service.ApplyTemplate(suite.ctx, suite.tenantID, template.TemplateID, time.Now(), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceTestSuite))
}
