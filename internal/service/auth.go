package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taigen-app/taigen/internal/gateway"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/repository"
	"github.com/taigen-app/taigen/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const AuthCookieName = "auth_token"

// Error texts carry the markers the UI maps to localized messages.
var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrUserAlreadyExists  = errors.New("User already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	purposeSession      = "session"
	purposeConfirmEmail = "confirm_email"
)

// AuthService is the auth half of the gateway. Sessions are signed JWTs;
// sign-out revokes the token's ID until it would have expired anyway.
type AuthService struct {
	userRepository    repository.UserRepository
	emailService      *EmailService
	jwtSecret         string
	jwtExpiry         time.Duration
	confirmExpiry     time.Duration
	minPasswordLength int
	isProduction      bool

	mu          sync.Mutex
	subscribers map[int]func(gateway.SessionEvent)
	nextSub     int
	revoked     map[string]time.Time
}

func NewAuthService(
	userRepository repository.UserRepository,
	emailService *EmailService,
	jwtSecret string,
	jwtExpiry time.Duration,
	confirmExpiry time.Duration,
	minPasswordLength int,
	isProduction bool,
) *AuthService {
	return &AuthService{
		userRepository:    userRepository,
		emailService:      emailService,
		jwtSecret:         jwtSecret,
		jwtExpiry:         jwtExpiry,
		confirmExpiry:     confirmExpiry,
		minPasswordLength: minPasswordLength,
		isProduction:      isProduction,
		subscribers:       make(map[int]func(gateway.SessionEvent)),
		revoked:           make(map[string]time.Time),
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}

	err = validation.ValidatePassword(password, s.minPasswordLength)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.userRepository.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)

	err = s.sendConfirmation(ctx, user)
	if err != nil {
		slog.Warn("failed to send confirmation email", "error", err, "user_id", user.ID)
	}

	return s.startSession(user)
}

func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)

	user, err := s.userRepository.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(user)
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.verify(token, purposeSession)
	if err != nil {
		// Already unusable.
		return nil
	}

	userID, _ := claims["user_id"].(string)
	jti, _ := claims["jti"].(string)
	expiresAt := time.Now().Add(s.jwtExpiry)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	s.mu.Lock()
	s.pruneRevoked()
	s.revoked[jti] = expiresAt
	s.mu.Unlock()

	slog.Info("user signed out", "user_id", userID)
	s.emit(gateway.SessionEvent{UserID: userID})
	return nil
}

// GetSession returns gateway.ErrNoSession for any token that is not a live
// session.
func (s *AuthService) GetSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, gateway.ErrNoSession
	}

	claims, err := s.verify(token, purposeSession)
	if err != nil {
		return nil, gateway.ErrNoSession
	}

	jti, _ := claims["jti"].(string)
	s.mu.Lock()
	_, revoked := s.revoked[jti]
	s.mu.Unlock()
	if revoked {
		return nil, gateway.ErrNoSession
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	sess := &model.Session{UserID: userID, Email: email, Token: token}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	return sess, nil
}

func (s *AuthService) OnSessionChange(fn func(gateway.SessionEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// ConfirmEmail marks the address in a confirmation link as verified.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.verify(token, purposeConfirmEmail)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired confirmation link: %w", ErrInvalidToken)
	}

	userID, _ := claims["user_id"].(string)
	err = s.userRepository.MarkEmailVerified(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm email: %w", err)
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	slog.Info("email confirmed", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, sess *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    sess.Token,
		Expires:  sess.ExpiresAt,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) startSession(user *model.User) (*model.Session, error) {
	expiresAt := time.Now().Add(s.jwtExpiry)

	token, err := s.sign(jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"purpose": purposeSession,
		"jti":     uuid.New().String(),
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	sess := &model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: time.Unix(expiresAt.Unix(), 0),
	}

	slog.Info("session started", "user_id", user.ID)
	s.emit(gateway.SessionEvent{UserID: user.ID, Session: sess})
	return sess, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, user *model.User) error {
	token, err := s.sign(jwt.MapClaims{
		"user_id": user.ID,
		"purpose": purposeConfirmEmail,
		"exp":     time.Now().Add(s.confirmExpiry).Unix(),
		"iat":     time.Now().Unix(),
	})
	if err != nil {
		return err
	}

	return s.emailService.SendSignUpConfirmation(ctx, user.Email, token)
}

func (s *AuthService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) verify(tokenString, purpose string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if p, _ := claims["purpose"].(string); p != purpose {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// emit must be called without s.mu held; subscribers may call back in.
func (s *AuthService) emit(ev gateway.SessionEvent) {
	s.mu.Lock()
	subs := make([]func(gateway.SessionEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// pruneRevoked expects s.mu to be held.
func (s *AuthService) pruneRevoked() {
	now := time.Now()
	for jti, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, jti)
		}
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
