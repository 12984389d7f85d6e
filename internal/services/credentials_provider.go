package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/acmedash/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"
)

const credentialsProviderID = "credentials"

// SignInProvider verifies a sign-in attempt and opens a session
type SignInProvider interface {
	SignIn(ctx context.Context, provider string, form url.Values) (*Session, error)
}

// Session is what a successful sign-in hands back to the web layer
type Session struct {
	Token     string
	User      models.User
	ExpiresAt time.Time
}

type credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// CredentialsProvider checks email/password against the users table
type CredentialsProvider struct {
	db        *sql.DB
	validator *ValidationHelper
}

func NewCredentialsProvider(db *sql.DB) *CredentialsProvider {
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	return &CredentialsProvider{
		db:        db,
		validator: NewValidationHelper(),
	}
}

// SignIn returns an *AuthError for every failure it can classify. Database
// failures other than a missing user are returned as they are.
func (p *CredentialsProvider) SignIn(ctx context.Context, provider string, form url.Values) (*Session, error) {
	if provider != credentialsProviderID {
		return nil, &AuthError{Type: InvalidProvider, Err: fmt.Errorf("unsupported provider %q", provider)}
	}

	creds := credentials{
		Email:    strings.ToLower(strings.TrimSpace(form.Get("email"))),
		Password: form.Get("password"),
	}
	if err := p.validator.ValidateStruct(&creds); err != nil {
		log.Printf("[AUTH] Sign-in rejected - malformed credentials: %v", err)
		return nil, &AuthError{Type: CredentialsSignin}
	}

	user, err := p.getUser(ctx, creds.Email)
	if errors.Is(err, sql.ErrNoRows) {
		log.Printf("[AUTH] User not found for email: %s", creds.Email)
		return nil, &AuthError{Type: CredentialsSignin}
	}
	if err != nil {
		log.Printf("[AUTH] Failed to fetch user %s: %v", creds.Email, err)
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !verifyPassword(creds.Password, user.Password) {
		log.Printf("[AUTH] Invalid password for user: %s", creds.Email)
		return nil, &AuthError{Type: CredentialsSignin}
	}

	token, expiresAt, err := generateJWT(user)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for user %s: %v", user.ID, err)
		return nil, &AuthError{Type: Configuration, Err: err}
	}

	log.Printf("[AUTH] Sign-in successful for user %s", user.ID)
	user.Password = ""
	return &Session{Token: token, User: *user, ExpiresAt: expiresAt}, nil
}

func (p *CredentialsProvider) getUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := p.db.QueryRowContext(ctx,
		"SELECT id, name, email, password FROM users WHERE email = $1", email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SessionClaims are the verified contents of a session token
type SessionClaims struct {
	UserID    string
	ExpiresAt time.Time
}

// ParseSessionToken verifies an HS256 session token issued by SignIn. Tokens
// without a user_id or exp claim are rejected.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(viper.GetString("jwt.secret_key")), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	userID, ok := claims["user_id"]
	if !ok {
		return nil, errors.New("token has no user_id claim")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("token has no exp claim")
	}

	return &SessionClaims{UserID: fmt.Sprintf("%v", userID), ExpiresAt: exp.Time}, nil
}

func generateJWT(user *models.User) (string, time.Time, error) {
	secret := viper.GetString("jwt.secret_key")
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret key is not configured")
	}

	expiresAt := time.Now().Add(time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func verifyPassword(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt,
		uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computedHash) == 1
}
