package services_test

import (
	"context"
	"testing"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/core/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EvidenceRepository ---
type MockEvidenceRepository struct {
	mock.Mock
}

func (m *MockEvidenceRepository) SaveEvidence(ctx context.Context, evidence domain.Evidence) error {
	args := m.Called(ctx, evidence)
	return args.Error(0)
}

func (m *MockEvidenceRepository) FindEvidenceByID(ctx context.Context, evidenceID string) (*domain.Evidence, error) {
	args := m.Called(ctx, evidenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evidence), args.Error(1)
}

const testMaxEvidenceBytes = int64(5 * 1024 * 1024)

// --- Test Suite ---
type EvidenceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockEvidenceRepository
	service  portssvc.EvidenceSvcFacade
}

func (suite *EvidenceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockEvidenceRepository)
	suite.service = services.NewEvidenceService(suite.mockRepo, testMaxEvidenceBytes, []string{"image/png", "image/jpeg", "application/pdf"})
}

func (suite *EvidenceServiceTestSuite) TestRegisterEvidence_Success() {
	ctx := context.Background()
	uploaderID := uuid.NewString()
	req := dto.RegisterEvidenceRequest{
		FileName:    "voucher.png",
		ContentType: "image/png",
		SizeBytes:   2048,
	}

	suite.mockRepo.On("SaveEvidence", ctx, mock.MatchedBy(func(e domain.Evidence) bool {
		return e.FileName == req.FileName && e.ContentType == req.ContentType &&
			e.SizeBytes == req.SizeBytes && e.UploadedBy == uploaderID && e.StorageKey != ""
	})).Return(nil).Once()

	evidence, err := suite.service.RegisterEvidence(ctx, req, uploaderID)

	suite.Require().NoError(err)
	suite.Require().NotNil(evidence)
	suite.NotEmpty(evidence.EvidenceID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EvidenceServiceTestSuite) TestRegisterEvidence_RejectsContentType() {
	ctx := context.Background()
	req := dto.RegisterEvidenceRequest{
		FileName:    "macro.xlsm",
		ContentType: "application/vnd.ms-excel.sheet.macroEnabled.12",
		SizeBytes:   2048,
	}

	_, err := suite.service.RegisterEvidence(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEvidence", mock.Anything, mock.Anything)
}

func (suite *EvidenceServiceTestSuite) TestRegisterEvidence_RejectsOversize() {
	ctx := context.Background()
	req := dto.RegisterEvidenceRequest{
		FileName:    "scan.pdf",
		ContentType: "application/pdf",
		SizeBytes:   testMaxEvidenceBytes + 1,
	}

	_, err := suite.service.RegisterEvidence(ctx, req, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEvidence", mock.Anything, mock.Anything)
}

func (suite *EvidenceServiceTestSuite) TestValidate_Success() {
	ctx := context.Background()
	evidenceID := uuid.NewString()

	suite.mockRepo.On("FindEvidenceByID", ctx, evidenceID).Return(&domain.Evidence{
		EvidenceID:  evidenceID,
		ContentType: "image/jpeg",
		SizeBytes:   1024,
	}, nil).Once()

	err := suite.service.Validate(ctx, domain.EvidenceRef{EvidenceID: evidenceID})

	suite.Require().NoError(err)
}

func (suite *EvidenceServiceTestSuite) TestValidate_ZeroRef() {
	err := suite.service.Validate(context.Background(), domain.EvidenceRef{})
	suite.Require().ErrorIs(err, services.ErrMissingEvidence)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindEvidenceByID", mock.Anything, mock.Anything)
}

func (suite *EvidenceServiceTestSuite) TestValidate_UnknownRefCollapsesToMissingEvidence() {
	ctx := context.Background()
	evidenceID := uuid.NewString()

	suite.mockRepo.On("FindEvidenceByID", ctx, evidenceID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Validate(ctx, domain.EvidenceRef{EvidenceID: evidenceID})

	suite.Require().ErrorIs(err, services.ErrMissingEvidence)
}

func TestEvidenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EvidenceServiceTestSuite))
}
