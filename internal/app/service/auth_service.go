package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ikkim/permit-backend/pkg/logger"
	"github.com/ikkim/permit-backend/pkg/util"
)

// RoleAdmin is the only role issued. Staff share one credential.
const RoleAdmin = "admin"

const blacklistTimeout = 3 * time.Second

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrTokenRevoked     = util.ErrRevokedToken
)

// TokenBlacklist records revoked session ids until their tokens expire.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AdminSession is returned by a successful login.
type AdminSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthService interface {
	Login(password string) (*AdminSession, error)
	Logout(token string) error
	Authenticate(token string) (*util.Claims, error)
}

type authService struct {
	passwordHash string
	jwtSecret    string
	expiry       time.Duration
	blacklist    TokenBlacklist
}

// NewAuthService accepts the admin credential either as a bcrypt hash or in
// plain text; plain text is hashed once here so it is never compared directly.
// A nil blacklist keeps revocations in process memory.
func NewAuthService(credential, jwtSecret string, expiry time.Duration, blacklist TokenBlacklist) (AuthService, error) {
	hash := credential
	if !util.IsPasswordHash(credential) {
		logger.Warn("Admin password configured in plain text, hashing at startup", nil)
		var err error
		hash, err = util.HashPassword(credential)
		if err != nil {
			return nil, err
		}
	}
	if blacklist == nil {
		blacklist = NewMemoryBlacklist()
	}
	return &authService{
		passwordHash: hash,
		jwtSecret:    jwtSecret,
		expiry:       expiry,
		blacklist:    blacklist,
	}, nil
}

func (s *authService) Login(password string) (*AdminSession, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !util.VerifyPassword(s.passwordHash, password) {
		logger.Warn("Admin login failed: invalid password", nil)
		return nil, ErrInvalidPassword
	}

	token, claims, err := util.GenerateToken(RoleAdmin, RoleAdmin, s.jwtSecret, s.expiry)
	if err != nil {
		logger.Error("Failed to generate admin token", err, nil)
		return nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"token_id": claims.ID,
	})
	return &AdminSession{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes token for the rest of its lifetime. Tokens that are already
// invalid or expired need no revocation.
func (s *authService) Logout(token string) error {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		logger.Debug("Logout with unusable token", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), blacklistTimeout)
	defer cancel()
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Error("Failed to revoke admin token", err, map[string]interface{}{
			"token_id": claims.ID,
		})
		return err
	}

	logger.Info("Admin logged out", map[string]interface{}{
		"token_id": claims.ID,
	})
	return nil
}

// Authenticate validates token and rejects revoked sessions.
func (s *authService) Authenticate(token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(strings.TrimSpace(token), s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, util.ErrInvalidToken
	}

	ctx, cancel := context.WithTimeout(context.Background(), blacklistTimeout)
	defer cancel()
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// MemoryBlacklist is the single-instance TokenBlacklist used without Redis.
type MemoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for id, until := range b.revoked {
		if !now.Before(until) {
			delete(b.revoked, id)
		}
	}
	b.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.revoked[tokenID]
	return ok && b.now().Before(until), nil
}
