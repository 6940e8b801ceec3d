package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/idrsdev/agile-task/common/id"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/store"
	"github.com/idrsdev/agile-task/internal/token"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	IssueAccess(userID int64) (string, time.Time, error)
	RefreshTTL() time.Duration
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, *model.TokenPair, error)
	Login(ctx context.Context, email, password string) (*model.User, *model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, *model.TokenPair, error)
}

type authService struct {
	txRunner   TxRunner
	userStore  store.UserStore
	tokenStore store.TokenStore
	issuer     TokenIssuer
	sso        SSOProvider
	now        func() time.Time
}

// NewAuthService wires password and SSO sign-in. sso may be nil.
func NewAuthService(
	txRunner TxRunner,
	userStore store.UserStore,
	tokenStore store.TokenStore,
	issuer TokenIssuer,
	sso SSOProvider,
) AuthService {
	return &authService{
		txRunner:   txRunner,
		userStore:  userStore,
		tokenStore: tokenStore,
		issuer:     issuer,
		sso:        sso,
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, *model.TokenPair, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, nil, err
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return nil, nil, fmt.Errorf("%w: password must be %d to %d bytes", ErrValidation, minPasswordLength, maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:           id.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	var pair *model.TokenPair
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := createWithMemberRole(ctx, stores, user); err != nil {
			return err
		}
		pair, err = s.issue(ctx, stores.Tokens(), user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		slog.ErrorContext(ctx, "failed to register user", "error", err)
		return nil, nil, fmt.Errorf("registering user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, *model.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}
	if !user.HasPassword() {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, s.tokenStore, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh rotates the caller's refresh token. The old token stops working.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.GetByHash(ctx, token.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("getting refresh token: %w", err)
	}

	if stored.Expired(s.now()) {
		if err := s.tokenStore.DeleteByUser(ctx, stored.UserID); err != nil {
			slog.WarnContext(ctx, "failed to delete expired refresh token", "error", err, "user_id", stored.UserID)
		}
		return nil, ErrInvalidRefreshToken
	}

	return s.issue(ctx, s.tokenStore, stored.UserID)
}

func (s *authService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenStore.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting refresh token: %w", err)
	}
	return nil
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	if s.sso == nil {
		return "", ErrSSODisabled
	}
	return s.sso.AuthorizationURL(state)
}

// HandleCallback signs in an SSO user, linking by email to an existing
// account or creating a new active one.
func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *model.TokenPair, error) {
	if s.sso == nil {
		return nil, nil, ErrSSODisabled
	}

	identity, err := s.sso.Authenticate(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	var (
		user *model.User
		pair *model.TokenPair
	)
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		var err error
		user, err = s.resolveSSOUser(ctx, stores, identity)
		if err != nil {
			return err
		}
		pair, err = s.issue(ctx, stores.Tokens(), user.ID)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign in sso user",
			"error", err,
			"workos_id", identity.ProviderUserID,
		)
		return nil, nil, fmt.Errorf("signing in sso user: %w", err)
	}

	slog.InfoContext(ctx, "user authenticated via sso", "user_id", user.ID)
	return user, pair, nil
}

func (s *authService) resolveSSOUser(ctx context.Context, stores StoreProvider, identity *SSOIdentity) (*model.User, error) {
	users := stores.Users()

	user, err := users.GetByWorkOSID(ctx, identity.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting user by workos id: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	user, err = users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return users.LinkWorkOS(ctx, user.ID, identity.ProviderUserID)
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	user = &model.User{
		ID:       id.New(),
		Name:     identity.Name,
		Email:    email,
		IsActive: true,
		WorkOSID: &identity.ProviderUserID,
	}
	if err := createWithMemberRole(ctx, stores, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issue(ctx context.Context, tokens store.TokenStore, userID int64) (*model.TokenPair, error) {
	access, accessExpiresAt, err := s.issuer.IssueAccess(userID)
	if err != nil {
		return nil, err
	}

	plain, hash, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	refresh := &model.Token{
		ID:        id.New(),
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: s.now().Add(s.issuer.RefreshTTL()),
	}
	if err := tokens.Upsert(ctx, refresh); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &model.TokenPair{
		AccessToken:      access,
		RefreshToken:     plain,
		TokenType:        "Bearer",
		ExpiresAt:        accessExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

func createWithMemberRole(ctx context.Context, stores StoreProvider, user *model.User) error {
	if err := stores.Users().Create(ctx, user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	role, err := stores.Roles().GetByName(ctx, model.RoleMember)
	if err != nil {
		return fmt.Errorf("getting member role: %w", err)
	}
	if err := stores.Roles().Assign(ctx, user.ID, role.ID); err != nil {
		return fmt.Errorf("assigning member role: %w", err)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return email, nil
}
