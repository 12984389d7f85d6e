package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
)

type AuthService struct {
	provider SignInProvider
	redis    *redis.Client
	now      func() time.Time
}

func NewAuthService(provider SignInProvider, redisClient *redis.Client) *AuthService {
	return &AuthService{
		provider: provider,
		redis:    redisClient,
		now:      time.Now,
	}
}

// Authenticate signs the user in with the submitted login form.
//
// On success it returns the session and an empty message. Recognised sign-in
// failures come back as a user-facing message with a nil error; any other
// error is returned unchanged for the caller to surface as a failure page.
func (s *AuthService) Authenticate(ctx context.Context, form url.Values) (*Session, string, error) {
	session, err := s.provider.SignIn(ctx, credentialsProviderID, form)
	if err == nil {
		return session, "", nil
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		switch authErr.Type {
		case CredentialsSignin:
			return nil, "Invalid credentials.", nil
		default:
			log.Printf("[AUTH] Sign-in failed: %v", authErr)
			return nil, "Something went wrong.", nil
		}
	}
	return nil, "", err
}

// Logout blacklists token for the rest of its lifetime. Tokens that do not
// verify are ignored: there is no session to end.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" || s.redis == nil {
		return nil
	}

	claims, err := ParseSessionToken(token)
	if err != nil {
		log.Printf("[AUTH] Logout with unverifiable token ignored: %v", err)
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		log.Printf("[AUTH] Failed to blacklist token for user %s: %v", claims.UserID, err)
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// IsRevoked reports whether token was blacklisted by Logout
func (s *AuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	if s.redis == nil {
		return false, nil
	}

	n, err := s.redis.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}
