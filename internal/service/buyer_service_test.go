package service

import (
	"context"
	"testing"

	"farm-market/internal/auth"
	"farm-market/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBuyerRepository is a mock implementation of BuyerRepository.
type MockBuyerRepository struct {
	mock.Mock
}

func (m *MockBuyerRepository) Create(ctx context.Context, buyer *model.Buyer) error {
	args := m.Called(ctx, buyer)
	return args.Error(0)
}

func (m *MockBuyerRepository) GetAll(ctx context.Context) ([]model.Buyer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Buyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) GetByEmail(ctx context.Context, email string) (*model.Buyer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) Update(ctx context.Context, buyer *model.Buyer) error {
	args := m.Called(ctx, buyer)
	return args.Error(0)
}

func (m *MockBuyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestBuyerService_Register_DuplicateEmail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.BuyerRegisterRequest{
		Name:     "Otieno",
		Email:    "otieno@example.com",
		Password: "secret123",
		Phone:    "+254700000002",
	}

	mockRepo := new(MockBuyerRepository)
	service := NewBuyerService(mockRepo, newTestTokenManager(), logger)

	mockRepo.On("GetByEmail", ctx, req.Email).Return(&model.Buyer{ID: uuid.New(), Email: req.Email}, nil)

	buyer, err := service.Register(ctx, req)

	require.ErrorIs(t, err, model.ErrDuplicateEmail)
	assert.Nil(t, buyer)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBuyerService_Login(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	buyer := &model.Buyer{
		ID:           uuid.New(),
		Name:         "Otieno",
		Email:        "otieno@example.com",
		PasswordHash: hash,
	}

	tokens := newTestTokenManager()

	tests := []struct {
		name        string
		email       string
		password    string
		stored      *model.Buyer
		expectedErr error
	}{
		{
			name:     "Valid credentials",
			email:    buyer.Email,
			password: "secret123",
			stored:   buyer,
		},
		{
			name:        "Unknown email",
			email:       "nobody@example.com",
			password:    "secret123",
			stored:      nil,
			expectedErr: model.ErrBuyerNotFound,
		},
		{
			name:        "Wrong password",
			email:       buyer.Email,
			password:    "wrong-password",
			stored:      buyer,
			expectedErr: model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBuyerRepository)
			service := NewBuyerService(mockRepo, tokens, logger)

			if tt.stored != nil {
				mockRepo.On("GetByEmail", ctx, tt.email).Return(tt.stored, nil)
			} else {
				mockRepo.On("GetByEmail", ctx, tt.email).Return(nil, nil)
			}

			resp, err := service.Login(ctx, &model.LoginRequest{Email: tt.email, Password: tt.password})

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, buyer.ID, resp.Buyer.ID)

			claims, err := tokens.Verify(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, buyer.ID, claims.UserID)
			assert.Equal(t, model.RoleBuyer, claims.Role)
		})
	}
}

func TestBuyerService_GetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()

	mockRepo := new(MockBuyerRepository)
	service := NewBuyerService(mockRepo, newTestTokenManager(), logger)

	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	buyer, err := service.GetByID(ctx, id)

	require.ErrorIs(t, err, model.ErrBuyerNotFound)
	assert.Nil(t, buyer)
}
