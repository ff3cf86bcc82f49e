package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/config"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,50}$`)

// AuthResult is what a successful register/login yields: the user, the raw opaque
// session token destined for the cookie, and a short-lived bearer token for
// programmatic clients. Both channels resolve to the same session row, so revoking
// the session kills both.
type AuthResult struct {
	User         models.User
	SessionToken string
	AccessToken  string
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a user with a bcrypt-hashed password, an empty profile matching
// the role, and a fresh session.
func (s *AuthService) Register(username, password, role string) (*AuthResult, error) {
	if !usernameRe.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-50 lowercase letters, digits or underscores", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if role != models.RoleBrand && role != models.RoleStaff {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.RoleBrand, models.RoleStaff)
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// The unique index is the authoritative guard against the
		// check-then-insert race.
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	switch role {
	case models.RoleBrand:
		s.db.Create(&models.BrandProfile{ID: uuid.New(), UserID: user.ID})
	case models.RoleStaff:
		s.db.Create(&models.StaffProfile{ID: uuid.New(), UserID: user.ID})
	}

	return s.openSession(&user)
}

// Login authenticates a username/password pair. The error is the same whether the
// username is unknown or the password is wrong.
func (s *AuthService) Login(username, password string) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(&user)
}

// Logout revokes the session behind the raw token. Idempotent: unknown or
// already-revoked tokens are not an error.
func (s *AuthService) Logout(rawToken string) error {
	if rawToken == "" {
		return nil
	}
	return s.db.Model(&models.Session{}).
		Where("token_hash = ?", hashToken(rawToken)).
		Update("revoked", true).Error
}

// RevokeSession revokes a session by id. The middleware carries the session id for
// both auth channels, so this kills cookie and bearer access alike. Idempotent.
func (s *AuthService) RevokeSession(sessionID uuid.UUID) error {
	return s.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error
}

// CurrentUser resolves a raw session token to its user and session, rejecting
// revoked and expired sessions.
func (s *AuthService) CurrentUser(rawToken string) (*models.User, *models.Session, error) {
	if rawToken == "" {
		return nil, nil, ErrUnauthenticated
	}

	var session models.Session
	if err := s.db.Where("token_hash = ? AND revoked = false", hashToken(rawToken)).First(&session).Error; err != nil {
		return nil, nil, ErrUnauthenticated
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", session.UserID).Error; err != nil {
		return nil, nil, ErrUnauthenticated
	}
	return &user, &session, nil
}

// UserFromAccessToken validates a bearer JWT and checks that the session it was
// minted under is still live, so a logout revokes bearer access too.
func (s *AuthService) UserFromAccessToken(tokenString string) (*models.User, *models.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, nil, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrUnauthenticated
	}
	sid, _ := claims["sid"].(string)
	sessionID, err := uuid.Parse(sid)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}

	var session models.Session
	if err := s.db.Where("id = ? AND revoked = false", sessionID).First(&session).Error; err != nil {
		return nil, nil, ErrUnauthenticated
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", session.UserID).Error; err != nil {
		return nil, nil, ErrUnauthenticated
	}
	return &user, &session, nil
}

func (s *AuthService) openSession(user *models.User) (*AuthResult, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	session := models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.Auth.SessionTTL),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	accessToken, err := s.generateAccessToken(user, session.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: *user, SessionToken: rawToken, AccessToken: accessToken}, nil
}

func (s *AuthService) generateAccessToken(user *models.User, sessionID uuid.UUID) (string, error) {
	if s.cfg.Auth.JWTSecret == "" {
		return "", errors.New("JWT secret is not configured")
	}

	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"sid":      sessionID.String(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.Auth.AccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
