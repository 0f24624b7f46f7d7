package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/events"
	"github.com/jobboard/jobboard-go/internal/model"
	"github.com/jobboard/jobboard-go/internal/repository"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthService handles signup, login and session lookups.
type AuthService struct {
	users  *repository.UserRepository
	codec  *crypto.TokenCodec
	events events.Publisher
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, codec *crypto.TokenCodec, pub events.Publisher) *AuthService {
	return &AuthService{
		users:  users,
		codec:  codec,
		events: pub,
		now:    time.Now,
	}
}

// Signup creates an account and signs a session token for it. The unique
// email index decides duplicates, so no row is written for a taken email.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" || req.Role == "" {
		return model.AuthResult{}, ErrMissingFields
	}
	if !req.Role.Valid() {
		return model.AuthResult{}, ErrInvalidRole
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResult{}, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResult{}, ErrEmailTaken
		}
		return model.AuthResult{}, err
	}

	publish(ctx, s.events, events.New(events.TypeUserSignedUp, summarize(user)))

	return s.issue(user)
}

// Login checks credentials. An unknown email and a wrong password are
// reported identically.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return model.AuthResult{}, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResult{}, ErrInvalidCredentials
		}
		return model.AuthResult{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Warn("stored password hash unreadable", "user_id", user.ID, "error", err)
		return model.AuthResult{}, ErrInvalidCredentials
	}
	if !match {
		return model.AuthResult{}, ErrInvalidCredentials
	}
	if crypto.NeedsRehash(user.PasswordHash) {
		slog.Info("password hash uses legacy parameters", "user_id", user.ID)
	}

	return s.issue(user)
}

// Profile returns the account behind a verified session.
func (s *AuthService) Profile(ctx context.Context, userID int64) (model.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserProfile{}, ErrUnauthorized
		}
		return model.UserProfile{}, err
	}
	return model.UserProfile{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) issue(user *model.User) (model.AuthResult, error) {
	token, err := s.codec.Sign(user.ID, string(user.Role))
	if err != nil {
		return model.AuthResult{}, err
	}
	return model.AuthResult{Token: token, User: summarize(user)}, nil
}

func summarize(u *model.User) model.UserSummary {
	return model.UserSummary{ID: u.ID, Name: u.Name, Role: u.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publish delivers an event best-effort; a broker outage never fails a request.
func publish(ctx context.Context, pub events.Publisher, e events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		slog.Warn("event publish failed", "type", e.Type, "error", err)
	}
}
