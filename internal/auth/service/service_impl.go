package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/auth/domain"
	"github.com/gastrak/gastrak/internal/auth/password"
	"github.com/gastrak/gastrak/internal/config"
	"github.com/gastrak/gastrak/pkg/db"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	tokenBytes        = 32
	minPasswordLength = 8
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Cfg    config.Config
	GenID  *snowflake.Node
	Repo   domain.Repository
	Tokens domain.TokenRepository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	tokens   domain.TokenRepository
	tokenTTL time.Duration
}

func New(p Params) domain.Service {
	ttl := time.Duration(p.Cfg.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		tokens:   p.Tokens,
		tokenTTL: ttl,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !domain.ValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.User{}, err
	}
	if existing != nil {
		return domain.User{}, domain.ErrUserExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:            s.genID.Generate(),
		Email:         email,
		PasswordHash:  hashed,
		FullName:      strings.TrimSpace(req.FullName),
		Role:          role,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Address:       strings.TrimSpace(req.Address),
		LicenseNumber: req.LicenseNumber,
		VehicleID:     req.VehicleID,
		Certification: req.Certification,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.LoginResult{}, domain.ErrUserInactive
	}

	rawToken, err := newToken()
	if err != nil {
		return domain.LoginResult{}, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	token := domain.AccessToken{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tokens.Insert(ctx, tx, &token); err != nil {
			return err
		}
		user.LastLogin = &now
		user.UpdatedAt = now
		return s.repo.Update(ctx, tx, user)
	})
	if err != nil {
		return domain.LoginResult{}, err
	}

	s.log.Info("issued access token", zap.String("user_id", user.ID.String()))

	return domain.LoginResult{
		RawToken:  rawToken,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (domain.User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return domain.User{}, domain.ErrInvalidToken
	}

	token, err := s.tokens.FindByHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return domain.User{}, err
	}
	if token == nil {
		return domain.User{}, domain.ErrInvalidToken
	}
	if time.Now().UTC().After(token.ExpiresAt) {
		return domain.User{}, domain.ErrTokenExpired
	}

	user, err := s.repo.FindByID(ctx, s.db, token.UserID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrInvalidToken
	}
	if !user.IsActive {
		return domain.User{}, domain.ErrUserInactive
	}

	return *user, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUsersRequest) ([]domain.User, error) {
	return s.repo.List(ctx, s.db, pagination.Pagination{Skip: req.Skip, Limit: req.Limit})
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, patch domain.UserPatch) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}

	if patch.FullName != nil {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return domain.User{}, domain.ErrInvalidRole
		}
		user.Role = *patch.Role
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.Address != nil {
		user.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.LicenseNumber != nil {
		user.LicenseNumber = patch.LicenseNumber
	}
	if patch.VehicleID != nil {
		user.VehicleID = patch.VehicleID
	}
	if patch.Certification != nil {
		user.Certification = patch.Certification
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.Password != nil {
		if len(strings.TrimSpace(*patch.Password)) < minPasswordLength {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		hashed, err := password.Hash(*patch.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hashed
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", domain.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", domain.ErrInvalidEmail
	}
	return addr.Address, nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
