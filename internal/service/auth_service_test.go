package service

import (
	"survey_tool_backend/internal/config"
	"survey_tool_backend/internal/model"
	"survey_tool_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserStore) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) FindByID(id string) (*model.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func authConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "unit-test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	users := new(mockUserStore)
	users.On("FindByEmail", "op@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything).Return(nil)
	svc := NewAuthService(users, authConfig())

	user := &model.User{Name: "op", Email: "op@example.com", Password: "hunter22"}
	err := svc.Register(user)

	assert.NoError(t, err)
	assert.Equal(t, model.Operator, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := new(mockUserStore)
	users.On("FindByEmail", "op@example.com").Return(&model.User{Email: "op@example.com"}, nil)
	svc := NewAuthService(users, authConfig())

	err := svc.Register(&model.User{Email: "op@example.com", Password: "hunter22"})

	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginReturnsTokenForValidCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	users := new(mockUserStore)
	users.On("FindByEmail", "op@example.com").Return(&model.User{
		UUIDBase: model.UUIDBase{ID: "u1"},
		Email:    "op@example.com",
		Password: string(hash),
		Role:     model.Operator,
	}, nil)
	svc := NewAuthService(users, authConfig())

	token, err := svc.Login("op@example.com", "hunter22")

	assert.NoError(t, err)
	claims, err := util.ParseJWT(token, "unit-test-secret")
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, model.Operator, claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)

	users := new(mockUserStore)
	users.On("FindByEmail", "op@example.com").Return(&model.User{
		Email:    "op@example.com",
		Password: string(hash),
	}, nil)
	svc := NewAuthService(users, authConfig())

	_, err := svc.Login("op@example.com", "wrong")

	assert.ErrorIs(t, err, util.ErrInvalidLogin)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	users := new(mockUserStore)
	users.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	svc := NewAuthService(users, authConfig())

	_, err := svc.Login("ghost@example.com", "whatever")

	assert.ErrorIs(t, err, util.ErrInvalidLogin)
}
