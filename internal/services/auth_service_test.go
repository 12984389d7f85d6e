package services

import (
	"context"
	cryptorand "crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func setupAuthConfig() {
	viper.Set("argon2.salt_length", 16)
	viper.Set("argon2.time", 1)
	viper.Set("argon2.memory", 64*1024)
	viper.Set("argon2.threads", 4)
	viper.Set("argon2.key_length", 32)
	viper.Set("jwt.secret_key", "test-secret")
	viper.Set("jwt.expiry_hours", 24)
}

func loginForm(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	form := loginForm("user@nextmail.com", "123456")

	t.Run("success returns the session", func(t *testing.T) {
		provider := &MockSignInProvider{}
		session := &Session{Token: "token"}
		provider.On("SignIn", mock.Anything, "credentials", form).Return(session, nil)
		service := NewAuthService(provider, nil)

		got, msg, err := service.Authenticate(ctx, form)
		require.NoError(t, err)
		assert.Empty(t, msg)
		assert.Same(t, session, got)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		provider := &MockSignInProvider{}
		provider.On("SignIn", mock.Anything, "credentials", form).Return(nil, &AuthError{Type: CredentialsSignin})
		service := NewAuthService(provider, nil)

		got, msg, err := service.Authenticate(ctx, form)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, "Invalid credentials.", msg)
	})

	t.Run("other auth errors", func(t *testing.T) {
		for _, kind := range []AuthErrorType{Configuration, InvalidProvider, "CallbackRouteError"} {
			provider := &MockSignInProvider{}
			provider.On("SignIn", mock.Anything, "credentials", form).Return(nil, &AuthError{Type: kind})
			service := NewAuthService(provider, nil)

			_, msg, err := service.Authenticate(ctx, form)
			require.NoError(t, err)
			assert.Equal(t, "Something went wrong.", msg, kind)
		}
	})

	t.Run("wrapped auth error is still recognised", func(t *testing.T) {
		provider := &MockSignInProvider{}
		wrapped := errors.Join(errors.New("sign-in"), &AuthError{Type: CredentialsSignin})
		provider.On("SignIn", mock.Anything, "credentials", form).Return(nil, wrapped)
		service := NewAuthService(provider, nil)

		_, msg, err := service.Authenticate(ctx, form)
		require.NoError(t, err)
		assert.Equal(t, "Invalid credentials.", msg)
	})

	t.Run("unrecognised errors are returned unchanged", func(t *testing.T) {
		provider := &MockSignInProvider{}
		boom := errors.New("database is down")
		provider.On("SignIn", mock.Anything, "credentials", form).Return(nil, boom)
		service := NewAuthService(provider, nil)

		_, msg, err := service.Authenticate(ctx, form)
		assert.Same(t, boom, err)
		assert.Empty(t, msg)
	})
}

func TestCredentialsProvider_SignIn(t *testing.T) {
	setupAuthConfig()
	ctx := context.Background()
	userQuery := `SELECT id, name, email, password FROM users WHERE email = \$1`
	userColumns := []string{"id", "name", "email", "password"}

	hashed, err := hashTestPassword("123456")
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		provider := NewCredentialsProvider(db)

		sqlMock.ExpectQuery(userQuery).
			WithArgs("user@nextmail.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "User", "user@nextmail.com", hashed))

		session, err := provider.SignIn(ctx, "credentials", loginForm(" User@NextMail.com ", "123456"))
		require.NoError(t, err)
		assert.Equal(t, "u1", session.User.ID)
		assert.Empty(t, session.User.Password)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)

		parsed, err := jwt.Parse(session.Token, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "u1", claims["user_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		provider := NewCredentialsProvider(db)

		sqlMock.ExpectQuery(userQuery).
			WithArgs("user@nextmail.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "User", "user@nextmail.com", hashed))

		_, err = provider.SignIn(ctx, "credentials", loginForm("user@nextmail.com", "wrong-password"))
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, CredentialsSignin, authErr.Type)
	})

	t.Run("unknown user", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		provider := NewCredentialsProvider(db)

		sqlMock.ExpectQuery(userQuery).WithArgs("ghost@nextmail.com").WillReturnError(sql.ErrNoRows)

		_, err = provider.SignIn(ctx, "credentials", loginForm("ghost@nextmail.com", "123456"))
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, CredentialsSignin, authErr.Type)
	})

	t.Run("malformed input never queries", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		provider := NewCredentialsProvider(db)

		_, err = provider.SignIn(ctx, "credentials", loginForm("not-an-email", "123"))
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, CredentialsSignin, authErr.Type)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("database failure is not an auth error", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		provider := NewCredentialsProvider(db)

		sqlMock.ExpectQuery(userQuery).WillReturnError(sql.ErrConnDone)

		_, err = provider.SignIn(ctx, "credentials", loginForm("user@nextmail.com", "123456"))
		require.Error(t, err)
		var authErr *AuthError
		assert.False(t, errors.As(err, &authErr))
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		provider := NewCredentialsProvider(db)

		_, err = provider.SignIn(ctx, "github", loginForm("user@nextmail.com", "123456"))
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, InvalidProvider, authErr.Type)
	})

	t.Run("missing signing secret", func(t *testing.T) {
		viper.Set("jwt.secret_key", "")
		defer viper.Set("jwt.secret_key", "test-secret")

		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		provider := NewCredentialsProvider(db)

		sqlMock.ExpectQuery(userQuery).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "User", "user@nextmail.com", hashed))

		_, err = provider.SignIn(ctx, "credentials", loginForm("user@nextmail.com", "123456"))
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, Configuration, authErr.Type)
	})
}

func signSessionToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthService_LogoutAndRevocation(t *testing.T) {
	setupAuthConfig()
	ctx := context.Background()

	expiresAt := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signSessionToken(t, "test-secret", jwt.MapClaims{"user_id": "u1", "exp": expiresAt.Unix()})

	t.Run("blacklists a verified token until it expires", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		service := NewAuthService(&MockSignInProvider{}, client)
		service.now = func() time.Time { return expiresAt.Add(-90 * time.Minute) }

		redisMock.ExpectSet("blacklist:"+token, "1", 90*time.Minute).SetVal("OK")
		redisMock.ExpectExists("blacklist:" + token).SetVal(1)
		redisMock.ExpectExists("blacklist:other").SetVal(0)

		require.NoError(t, service.Logout(ctx, token))

		revoked, err := service.IsRevoked(ctx, token)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = service.IsRevoked(ctx, "other")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("tokens that do not verify are never stored", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		service := NewAuthService(&MockSignInProvider{}, client)

		forged := signSessionToken(t, "other-secret", jwt.MapClaims{"user_id": "u1", "exp": expiresAt.Unix()})
		for _, candidate := range []string{strings.Repeat("A", 100000), "abc", forged} {
			require.NoError(t, service.Logout(ctx, candidate))
		}
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("redis failure is reported", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		service := NewAuthService(&MockSignInProvider{}, client)
		service.now = func() time.Time { return expiresAt.Add(-time.Hour) }

		redisMock.ExpectSet("blacklist:"+token, "1", time.Hour).SetErr(errors.New("READONLY"))

		assert.Error(t, service.Logout(ctx, token))
	})
}

func TestParseSessionToken(t *testing.T) {
	setupAuthConfig()
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("valid", func(t *testing.T) {
		token := signSessionToken(t, "test-secret", jwt.MapClaims{"user_id": "u1", "exp": expiresAt.Unix()})

		claims, err := ParseSessionToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.True(t, expiresAt.Equal(claims.ExpiresAt))
	})

	t.Run("missing exp", func(t *testing.T) {
		token := signSessionToken(t, "test-secret", jwt.MapClaims{"user_id": "u1"})

		_, err := ParseSessionToken(token)
		assert.Error(t, err)
	})

	t.Run("missing user_id", func(t *testing.T) {
		token := signSessionToken(t, "test-secret", jwt.MapClaims{"exp": expiresAt.Unix()})

		_, err := ParseSessionToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"user_id": "u1", "exp": expiresAt.Unix()}).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ParseSessionToken(token)
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	setupAuthConfig()

	hashed, err := hashTestPassword("testpassword")
	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)

	assert.True(t, verifyPassword("testpassword", hashed))
	assert.False(t, verifyPassword("wrongpassword", hashed))
	assert.False(t, verifyPassword("testpassword", "not-a-hash"))
}

// hashTestPassword encodes password the way stored user rows are encoded
func hashTestPassword(password string) (string, error) {
	salt := make([]byte, viper.GetInt("argon2.salt_length"))
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt,
		uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(viper.GetInt("argon2.key_length")))
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}
