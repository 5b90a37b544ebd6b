package service

import (
	"errors"
	"testing"
	"time"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports/mocks"
	"sfa-bank-client/pkg/apperror"
	"sfa-bank-client/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u1", "exp": expiresAt.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func testUser() domain.User {
	return domain.User{ID: "u1", Username: "jdoe", Email: "jane@example.com", FullName: "Jane Doe"}
}

func TestSessionService_HydrateRestoresSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Load().Return(&domain.Session{User: testUser(), Token: "tok"}, nil)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Hydrate())

	assert.True(t, svc.Authenticated())
	assert.Equal(t, "tok", svc.Token())
	assert.Equal(t, "jdoe", svc.User().Username)
}

func TestSessionService_HydrateNoStoredSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Load().Return(nil, nil)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Hydrate())

	assert.False(t, svc.Authenticated())
	assert.Empty(t, svc.Token())
}

func TestSessionService_HydrateCorruptSessionClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Load().Return(nil, errors.New("unseal session: cipher: message authentication failed"))
	store.EXPECT().Clear().Return(nil)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Hydrate())
	assert.False(t, svc.Authenticated())
}

func TestSessionService_EstablishPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(&domain.Session{User: testUser(), Token: "tok"}).Return(nil)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Establish(testUser(), "tok"))
	assert.True(t, svc.Authenticated())
}

func TestSessionService_EstablishSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any()).Return(errors.New("disk full"))

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.Error(t, svc.Establish(testUser(), "tok"))
	assert.False(t, svc.Authenticated())
}

func TestSessionService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any()).Return(nil)
	store.EXPECT().Clear().Return(nil)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Establish(testUser(), "tok"))
	require.NoError(t, svc.Logout())

	assert.False(t, svc.Authenticated())
	assert.Empty(t, svc.Token())
	assert.True(t, svc.User().IsZero())
}

func TestSessionService_UpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any()).Return(nil).Times(2)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Establish(testUser(), "tok"))

	name := "Jane A. Doe"
	require.NoError(t, svc.UpdateUser(domain.UserUpdate{FullName: &name}))
	assert.Equal(t, "Jane A. Doe", svc.User().FullName)
	assert.Equal(t, "jane@example.com", svc.User().Email)
}

func TestSessionService_UpdateUserAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	name := "Jane"
	err := svc.UpdateUser(domain.UserUpdate{FullName: &name})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SES_001", appErr.Code)
}

func TestSessionService_RequireAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	svc := NewSessionService(store, logger.NewWithWriter("error", nil))

	err := svc.RequireAuth()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SES_001", appErr.Code)

	store.EXPECT().Save(gomock.Any()).Return(nil)
	require.NoError(t, svc.Establish(testUser(), signedToken(t, time.Now().Add(time.Hour))))
	assert.NoError(t, svc.RequireAuth())
}

func TestSessionService_ExpiredTokenNotAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any()).Return(nil)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Establish(testUser(), signedToken(t, time.Now().Add(-time.Minute))))

	assert.False(t, svc.Authenticated())

	err := svc.RequireAuth()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SES_002", appErr.Code)
}

func TestSessionService_OpaqueTokenAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any()).Return(nil)

	svc := NewSessionService(store, logger.NewWithWriter("error", nil))
	require.NoError(t, svc.Establish(testUser(), "opaque-token-value"))

	assert.True(t, svc.Authenticated())
	assert.NoError(t, svc.RequireAuth())
}
