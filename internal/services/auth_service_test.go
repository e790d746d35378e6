package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/category-task-api/internal/repository"
	"github.com/yukikurage/category-task-api/internal/testutil"
	"github.com/yukikurage/category-task-api/internal/token"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.NewTestDB(t)
	issuer := token.NewIssuer("test-secret", 24*time.Hour)
	return NewAuthService(repository.NewUserRepository(db), issuer).WithHashCost(bcrypt.MinCost)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, Credentials{Username: " alice ", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", registered.User.Username)
	assert.NotEmpty(t, registered.Token)
	assert.NotEqual(t, "supersecret", registered.User.PasswordHash)

	userID, err := svc.VerifyToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	loggedIn, err := svc.Login(ctx, Credentials{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	userID, err = svc.VerifyToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	user, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register(ctx, Credentials{Username: "bob", Password: ""})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Register(ctx, Credentials{Username: "bob", Password: "123"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Register(ctx, Credentials{Username: string(long), Password: "supersecret"})
	assert.ErrorIs(t, err, ErrUsernameTooLong)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, Credentials{Username: "alice", Password: "another-secret"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, Credentials{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, Credentials{Username: "nobody", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, Credentials{Username: "alice"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestAuthService_VerifyTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.VerifyToken("")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_GetUserNotFound(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.GetUser(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
