package service

import (
	"context"
	"testing"
	"time"

	"farm-market/internal/auth"
	"farm-market/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFarmerRepository is a mock implementation of FarmerRepository.
type MockFarmerRepository struct {
	mock.Mock
}

func (m *MockFarmerRepository) Create(ctx context.Context, farmer *model.Farmer) error {
	args := m.Called(ctx, farmer)
	return args.Error(0)
}

func (m *MockFarmerRepository) GetAll(ctx context.Context) ([]model.Farmer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Farmer), args.Error(1)
}

func (m *MockFarmerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Farmer), args.Error(1)
}

func (m *MockFarmerRepository) GetByEmail(ctx context.Context, email string) (*model.Farmer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Farmer), args.Error(1)
}

func (m *MockFarmerRepository) Update(ctx context.Context, farmer *model.Farmer) error {
	args := m.Called(ctx, farmer)
	return args.Error(0)
}

func (m *MockFarmerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func TestFarmerService_Register_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.FarmerRegisterRequest{
		Name:     "Wanjiku Farms",
		Email:    "wanjiku@example.com",
		Password: "secret123",
		Phone:    "+254700000001",
		Location: "Nakuru",
	}

	mockRepo := new(MockFarmerRepository)
	service := NewFarmerService(mockRepo, newTestTokenManager(), logger)

	mockRepo.On("GetByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Farmer")).Return(nil)

	farmer, err := service.Register(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, farmer)
	assert.NotEqual(t, uuid.Nil, farmer.ID)
	assert.Equal(t, req.Email, farmer.Email)
	// The stored credential must be a hash, never the raw password.
	assert.NotEqual(t, req.Password, farmer.PasswordHash)
	assert.NoError(t, auth.CheckPassword(farmer.PasswordHash, req.Password))
	mockRepo.AssertExpectations(t)
}

func TestFarmerService_Register_DuplicateEmail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.FarmerRegisterRequest{
		Name:     "Wanjiku Farms",
		Email:    "wanjiku@example.com",
		Password: "secret123",
		Phone:    "+254700000001",
		Location: "Nakuru",
	}
	existing := &model.Farmer{ID: uuid.New(), Email: req.Email}

	mockRepo := new(MockFarmerRepository)
	service := NewFarmerService(mockRepo, newTestTokenManager(), logger)

	mockRepo.On("GetByEmail", ctx, req.Email).Return(existing, nil)

	farmer, err := service.Register(ctx, req)

	require.ErrorIs(t, err, model.ErrDuplicateEmail)
	assert.Nil(t, farmer)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFarmerService_Register_Validation(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.FarmerRegisterRequest
	}{
		{
			name: "Missing email",
			req:  &model.FarmerRegisterRequest{Name: "W", Password: "secret123", Phone: "1", Location: "Nakuru"},
		},
		{
			name: "Malformed email",
			req:  &model.FarmerRegisterRequest{Name: "W", Email: "not-an-email", Password: "secret123", Phone: "1", Location: "Nakuru"},
		},
		{
			name: "Short password",
			req:  &model.FarmerRegisterRequest{Name: "W", Email: "w@example.com", Password: "abc", Phone: "1", Location: "Nakuru"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFarmerRepository)
			service := NewFarmerService(mockRepo, newTestTokenManager(), logger)

			farmer, err := service.Register(ctx, tt.req)

			require.Error(t, err)
			assert.Nil(t, farmer)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidationFailed, domainErr.Code)
		})
	}
}

func TestFarmerService_Login(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	farmer := &model.Farmer{
		ID:           uuid.New(),
		Email:        "wanjiku@example.com",
		PasswordHash: hash,
	}

	tokens := newTestTokenManager()

	tests := []struct {
		name        string
		email       string
		password    string
		stored      *model.Farmer
		expectedErr error
	}{
		{
			name:     "Valid credentials",
			email:    farmer.Email,
			password: "secret123",
			stored:   farmer,
		},
		{
			name:        "Unknown email",
			email:       "nobody@example.com",
			password:    "secret123",
			stored:      nil,
			expectedErr: model.ErrInvalidCredentials,
		},
		{
			name:        "Wrong password",
			email:       farmer.Email,
			password:    "wrong-password",
			stored:      farmer,
			expectedErr: model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFarmerRepository)
			service := NewFarmerService(mockRepo, tokens, logger)

			if tt.stored != nil {
				mockRepo.On("GetByEmail", ctx, tt.email).Return(tt.stored, nil)
			} else {
				mockRepo.On("GetByEmail", ctx, tt.email).Return(nil, nil)
			}

			token, err := service.Login(ctx, &model.LoginRequest{Email: tt.email, Password: tt.password})

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			claims, err := tokens.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, farmer.ID, claims.UserID)
			assert.Equal(t, model.RoleFarmer, claims.Role)
		})
	}
}

func TestFarmerService_GetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()

	mockRepo := new(MockFarmerRepository)
	service := NewFarmerService(mockRepo, newTestTokenManager(), logger)

	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	farmer, err := service.GetByID(ctx, id)

	require.ErrorIs(t, err, model.ErrFarmerNotFound)
	assert.Nil(t, farmer)
}
