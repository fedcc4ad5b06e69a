package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

const tokenIssuer = "property-manager"

// InterfaceAuthService defines the identity provider interface
type InterfaceAuthService interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.Identity, error)
	OnSessionChange(ctx context.Context, token string, listener SessionListener) (unsubscribe func())
	ValidateToken(ctx context.Context, token string) (*SessionClaims, error)
	CreateUser(ctx context.Context, email, name, password, role string) (*models.User, error)
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// Session is returned by a successful sign-in
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      models.Identity `json:"user"`
}

// SessionClaims are the claims of a session token
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the signed-in user of the claims
func (c *SessionClaims) Identity() *models.Identity {
	return &models.Identity{UserID: c.UserID, Email: c.Email, Name: c.Name, Role: c.Role}
}

// AuthService signs users in against the users table and issues HS256 tokens
type AuthService struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions InterfaceSessionStore
	Hub      *SessionHub
	now      func() time.Time
}

// NewAuthService creates an auth service. A nil session store keeps revocations in process.
func NewAuthService(db *gorm.DB, cfg *config.Config, sessions InterfaceSessionStore, hub *SessionHub) InterfaceAuthService {
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	if hub == nil {
		hub = NewSessionHub()
	}
	return &AuthService{
		DB:       db,
		Config:   cfg,
		Sessions: sessions,
		Hub:      hub,
		now:      time.Now,
	}
}

func (s *AuthService) ttl() time.Duration {
	if s.Config.JWTTTL > 0 {
		return s.Config.JWTTTL
	}
	return 24 * time.Hour
}

// generateToken signs a session token for user
func (s *AuthService) generateToken(user models.User) (string, *SessionClaims, error) {
	now := s.now()
	claims := &SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Config.JWTSecretKey))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// 1 SignIn checks the credentials. Every failure is reported as ErrAuthFailed.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrAuthFailed
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Logger.Warning("sign-in failed for %s: unknown user", email)
		return nil, ErrAuthFailed
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.Status != "" && user.Status != "active" {
		Logger.Warning("sign-in failed for %s: account %s", email, user.Status)
		return nil, ErrAuthFailed
	}
	if !CheckPasswordHash(password, user.Password) {
		Logger.Warning("sign-in failed for %s: wrong password", email)
		return nil, ErrAuthFailed
	}

	token, claims, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	Logger.Info("user %s signed in", email)
	return &Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      *claims.Identity(),
	}, nil
}

// 2 ValidateToken parses a token and rejects revoked ones
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrSessionInvalid
	}
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.Config.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	revoked, err := s.Sessions.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: signed out", ErrSessionInvalid)
	}
	return claims, nil
}

// 3 SignOut revokes the token until it would have expired and notifies its watchers
func (s *AuthService) SignOut(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		// signing out twice is fine
		if errors.Is(err, ErrSessionInvalid) {
			return nil
		}
		return err
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.Sessions.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.Hub.Publish(claims.ID, nil)
	Logger.Info("user %s signed out", claims.Email)
	return nil
}

// 4 CurrentUser returns the identity of a valid token
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*models.Identity, error) {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Identity(), nil
}

// 5 OnSessionChange calls listener with the current identity (nil when signed out),
// then again when the session ends by sign-out or expiry
func (s *AuthService) OnSessionChange(ctx context.Context, tokenString string, listener SessionListener) func() {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		listener(nil)
		return func() {}
	}
	unsubscribe := s.Hub.Subscribe(claims.ID, claims.Identity(), claims.ExpiresAt.Time, listener)

	// a sign-out between validation and subscription published to nobody
	revoked, err := s.Sessions.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		Logger.Warning("session watch: check revocation: %v", err)
	} else if revoked {
		s.Hub.Publish(claims.ID, nil)
	}
	return unsubscribe
}

// 6 CreateUser registers an account with a bcrypt-hashed password
func (s *AuthService) CreateUser(ctx context.Context, email, name, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &ValidationSkippedError{Missing: missing}
	}
	if role == "" {
		role = "staff"
	}
	if role != "admin" && role != "staff" {
		return nil, invalid("role must be admin or staff")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Email:    email,
		Name:     name,
		Password: hash,
		Role:     role,
		Status:   "active",
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// 7 EnsureAdmin creates the default admin when no admin exists. It reports whether one was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.CreateUser(ctx, email, "Administrator", password, "admin"); err != nil {
		return false, err
	}
	Logger.Info("created default admin %s", email)
	return true, nil
}
