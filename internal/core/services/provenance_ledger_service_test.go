package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/core/services"
)

// --- Mock ProvenanceRepository ---
type MockProvenanceRepository struct {
	mock.Mock
}

var _ portsrepo.ProvenanceRepositoryFacade = (*MockProvenanceRepository)(nil)

func (m *MockProvenanceRepository) FindSource(ctx context.Context, claimID string, field domain.FieldName) (*domain.FieldProvenance, error) {
	args := m.Called(ctx, claimID, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldProvenance), args.Error(1)
}

func (m *MockProvenanceRepository) FindSourcesByClaimID(ctx context.Context, claimID string) ([]domain.FieldProvenance, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldProvenance), args.Error(1)
}

func (m *MockProvenanceRepository) UpsertSource(ctx context.Context, entry domain.FieldProvenance) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProvenanceRepository) UpsertSources(ctx context.Context, entries []domain.FieldProvenance) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ProvenanceLedgerServiceTestSuite struct {
	suite.Suite
	mockProvenanceRepo *MockProvenanceRepository
	service            portssvc.ProvenanceSvcFacade
	claimID            string
	actorID            string
}

func (suite *ProvenanceLedgerServiceTestSuite) SetupTest() {
	suite.mockProvenanceRepo = new(MockProvenanceRepository)
	suite.service = services.NewProvenanceLedgerService(suite.mockProvenanceRepo)
	suite.claimID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *ProvenanceLedgerServiceTestSuite) TestInitialProvenance_DefaultsToAutomated() {
	entries, err := suite.service.InitialProvenance(suite.claimID, nil, suite.actorID, time.Now().UTC())

	suite.Require().NoError(err)
	suite.Require().Len(entries, len(domain.EditableFields))
	for _, e := range entries {
		suite.Equal(domain.SourceAutomated, e.Source)
		suite.Equal(suite.claimID, e.ClaimID)
		suite.Equal(suite.actorID, e.UpdatedBy)
	}
}

func (suite *ProvenanceLedgerServiceTestSuite) TestInitialProvenance_ManualFieldsTagged() {
	manual := []domain.FieldName{domain.FieldVendor, domain.FieldDescription}

	entries, err := suite.service.InitialProvenance(suite.claimID, manual, suite.actorID, time.Now().UTC())

	suite.Require().NoError(err)
	sources := make(map[domain.FieldName]domain.FieldSource, len(entries))
	for _, e := range entries {
		sources[e.Field] = e.Source
	}
	suite.Equal(domain.SourceManual, sources[domain.FieldVendor])
	suite.Equal(domain.SourceManual, sources[domain.FieldDescription])
	suite.Equal(domain.SourceAutomated, sources[domain.FieldAmount])
	suite.Equal(domain.SourceAutomated, sources[domain.FieldCategory])
}

func (suite *ProvenanceLedgerServiceTestSuite) TestInitialProvenance_UnknownFieldFailsWhole() {
	_, err := suite.service.InitialProvenance(suite.claimID, []domain.FieldName{domain.FieldVendor, "salary"}, suite.actorID, time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownField)
}

func (suite *ProvenanceLedgerServiceTestSuite) TestHROverrides_AllTaggedHROverride() {
	at := time.Now().UTC()
	entries, err := suite.service.HROverrides(suite.claimID, []domain.FieldName{domain.FieldAmount, domain.FieldProjectCode}, suite.actorID, at)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	for _, e := range entries {
		suite.Equal(domain.SourceHROverride, e.Source)
		suite.Equal(at, e.UpdatedAt)
	}
}

func (suite *ProvenanceLedgerServiceTestSuite) TestHROverrides_EmptyFieldsRejected() {
	_, err := suite.service.HROverrides(suite.claimID, nil, suite.actorID, time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProvenanceLedgerServiceTestSuite) TestHROverrides_UnknownFieldFailsWhole() {
	_, err := suite.service.HROverrides(suite.claimID, []domain.FieldName{domain.FieldAmount, "bonus"}, suite.actorID, time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownField)
}

func (suite *ProvenanceLedgerServiceTestSuite) TestGetSource() {
	ctx := context.Background()
	suite.mockProvenanceRepo.On("FindSource", ctx, suite.claimID, domain.FieldVendor).
		Return(&domain.FieldProvenance{ClaimID: suite.claimID, Field: domain.FieldVendor, Source: domain.SourceManual}, nil).Once()

	source, err := suite.service.GetSource(ctx, suite.claimID, domain.FieldVendor)

	suite.Require().NoError(err)
	suite.Equal(domain.SourceManual, source)
}

func (suite *ProvenanceLedgerServiceTestSuite) TestGetSource_UnknownField() {
	_, err := suite.service.GetSource(context.Background(), suite.claimID, "salary")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownField)
	suite.mockProvenanceRepo.AssertNotCalled(suite.T(), "FindSource", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProvenanceLedgerServiceTestSuite) TestSourcesForClaim() {
	ctx := context.Background()
	entries := []domain.FieldProvenance{
		{ClaimID: suite.claimID, Field: domain.FieldAmount, Source: domain.SourceHROverride},
		{ClaimID: suite.claimID, Field: domain.FieldVendor, Source: domain.SourceAutomated},
	}
	suite.mockProvenanceRepo.On("FindSourcesByClaimID", ctx, suite.claimID).Return(entries, nil).Once()

	sources, err := suite.service.SourcesForClaim(ctx, suite.claimID)

	suite.Require().NoError(err)
	suite.Equal(domain.SourceHROverride, sources[domain.FieldAmount])
	suite.Equal(domain.SourceAutomated, sources[domain.FieldVendor])
}

func (suite *ProvenanceLedgerServiceTestSuite) TestSourcesForClaim_NoRowsIsNotFound() {
	ctx := context.Background()
	suite.mockProvenanceRepo.On("FindSourcesByClaimID", ctx, suite.claimID).Return([]domain.FieldProvenance{}, nil).Once()

	_, err := suite.service.SourcesForClaim(ctx, suite.claimID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProvenanceLedgerServiceTestSuite) TestSetSource_InvalidSource() {
	err := suite.service.SetSource(context.Background(), suite.claimID, domain.FieldVendor, "guessed", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProvenanceRepo.AssertNotCalled(suite.T(), "UpsertSource", mock.Anything, mock.Anything)
}

func (suite *ProvenanceLedgerServiceTestSuite) TestSetSource_Success() {
	ctx := context.Background()
	suite.mockProvenanceRepo.On("UpsertSource", ctx, mock.AnythingOfType("domain.FieldProvenance")).Return(nil).Once()

	err := suite.service.SetSource(ctx, suite.claimID, domain.FieldVendor, domain.SourceManual, suite.actorID)

	suite.Require().NoError(err)
	suite.mockProvenanceRepo.AssertExpectations(suite.T())
}

func TestProvenanceLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProvenanceLedgerServiceTestSuite))
}
