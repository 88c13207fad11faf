package services_test

import (
	"context"
	"testing"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/core/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/clubsalud/findoc_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ActorRepository ---
type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) SaveActor(ctx context.Context, actor domain.Actor, passwordHash string) error {
	args := m.Called(ctx, actor, passwordHash)
	return args.Error(0)
}

func (m *MockActorRepository) FindActorByID(ctx context.Context, actorID string) (*domain.Actor, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockActorRepository) FindActorByEmail(ctx context.Context, email string) (*domain.Actor, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Actor), args.String(1), args.Error(2)
}

func (m *MockActorRepository) ListActors(ctx context.Context, limit int, offset int) ([]domain.Actor, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Actor), args.Error(1)
}

func (m *MockActorRepository) CountActors(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---
type ActorServiceTestSuite struct {
	suite.Suite
	mockRepo *MockActorRepository
	service  portssvc.ActorSvcFacade
}

func (suite *ActorServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockActorRepository)
	suite.service = services.NewActorService(suite.mockRepo)
}

func (suite *ActorServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	password := "correct-horse-battery"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.Actor{ActorID: uuid.NewString(), Email: "finance@club.gt", Role: domain.RoleFinance}
	suite.mockRepo.On("FindActorByEmail", ctx, stored.Email).Return(stored, hash, nil).Once()

	actor, err := suite.service.Authenticate(ctx, stored.Email, password)

	suite.Require().NoError(err)
	suite.Equal(stored.ActorID, actor.ActorID)
}

func (suite *ActorServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the-real-password")
	suite.Require().NoError(err)

	stored := &domain.Actor{ActorID: uuid.NewString(), Email: "finance@club.gt"}
	suite.mockRepo.On("FindActorByEmail", ctx, stored.Email).Return(stored, hash, nil).Once()

	_, err = suite.service.Authenticate(ctx, stored.Email, "a-guess")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *ActorServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	ctx := context.Background()
	suite.mockRepo.On("FindActorByEmail", ctx, "nobody@club.gt").Return(nil, "", apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "nobody@club.gt", "whatever")

	// Indistinguishable from a wrong password.
	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *ActorServiceTestSuite) TestResolveRole() {
	ctx := context.Background()
	stored := &domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleBoard}
	suite.mockRepo.On("FindActorByID", ctx, stored.ActorID).Return(stored, nil).Once()

	role, err := suite.service.ResolveRole(ctx, stored.ActorID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleBoard, role)
}

func (suite *ActorServiceTestSuite) TestCreateActor_RequiresSuperAdmin() {
	ctx := context.Background()
	creator := &domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleFinance}
	suite.mockRepo.On("FindActorByID", ctx, creator.ActorID).Return(creator, nil).Once()

	_, err := suite.service.CreateActor(ctx, dto.CreateActorRequest{
		Name:     "New Receptionist",
		Email:    "reception@club.gt",
		Password: "longenough",
		Role:     string(domain.RoleReception),
	}, creator.ActorID)

	suite.Require().ErrorIs(err, services.ErrInsufficientRole)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveActor", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ActorServiceTestSuite) TestCreateActor_Success() {
	ctx := context.Background()
	creator := &domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleSuperAdmin}
	req := dto.CreateActorRequest{
		Name:     "New Receptionist",
		Email:    "reception@club.gt",
		Password: "longenough",
		Role:     string(domain.RoleReception),
	}

	suite.mockRepo.On("FindActorByID", ctx, creator.ActorID).Return(creator, nil).Once()
	suite.mockRepo.On("SaveActor", ctx, mock.MatchedBy(func(a domain.Actor) bool {
		return a.Email == req.Email && a.Role == domain.RoleReception && a.CreatedBy == creator.ActorID
	}), mock.AnythingOfType("string")).Return(nil).Once()

	actor, err := suite.service.CreateActor(ctx, req, creator.ActorID)

	suite.Require().NoError(err)
	suite.Equal(req.Name, actor.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ActorServiceTestSuite) TestCreateActor_DuplicateEmail() {
	ctx := context.Background()
	creator := &domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleSuperAdmin}

	suite.mockRepo.On("FindActorByID", ctx, creator.ActorID).Return(creator, nil).Once()
	suite.mockRepo.On("SaveActor", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateActor(ctx, dto.CreateActorRequest{
		Name:     "Twin",
		Email:    "taken@club.gt",
		Password: "longenough",
		Role:     string(domain.RoleFinance),
	}, creator.ActorID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ActorServiceTestSuite) TestEnsureBootstrapActor_SeedsEmptyRegistry() {
	ctx := context.Background()

	suite.mockRepo.On("CountActors", ctx).Return(0, nil).Once()
	suite.mockRepo.On("SaveActor", ctx, mock.MatchedBy(func(a domain.Actor) bool {
		return a.Role == domain.RoleSuperAdmin && a.Email == "admin@club.gt" && a.CreatedBy == a.ActorID
	}), mock.AnythingOfType("string")).Return(nil).Once()

	err := suite.service.EnsureBootstrapActor(ctx, "Admin", "admin@club.gt", "bootstrap-secret")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ActorServiceTestSuite) TestEnsureBootstrapActor_NoOpWhenPopulated() {
	ctx := context.Background()

	suite.mockRepo.On("CountActors", ctx).Return(3, nil).Once()

	err := suite.service.EnsureBootstrapActor(ctx, "Admin", "admin@club.gt", "bootstrap-secret")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveActor", mock.Anything, mock.Anything, mock.Anything)
}

func TestActorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ActorServiceTestSuite))
}
