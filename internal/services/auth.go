package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/ctxutil"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

const (
	DefaultBcryptCost = 12
	DefaultAccessTTL  = 30 * 24 * time.Hour
	minPasswordLen    = 6
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	// Login returns a signed HS256 access token.
	Login(ctx context.Context, email, password string) (string, error)
	// ParseToken validates a token and returns the identity it carries.
	ParseToken(ctx context.Context, token string) (*ctxutil.RequestData, error)
	AccessTTL() time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	AccessTTL  time.Duration
	BcryptCost int
}

// JWTClaims mirrors the token payload the web client decodes: id and email.
type JWTClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	secret     []byte
	accessTTL  time.Duration
	bcryptCost int
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, cfg AuthConfig) AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}
	return &authService{
		log:        log.With("service", "AuthService"),
		userRepo:   userRepo,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		bcryptCost: cfg.BcryptCost,
	}
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	const op = "auth.Register"
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op, "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op, "a valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op,
			fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("%s: check email: %w", op, err)
	}
	if exists {
		return nil, apperrors.New(apperrors.KindConflict, op, "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}
	created, err := as.userRepo.Create(ctx, nil, []*types.User{{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}})
	if err != nil {
		return nil, fmt.Errorf("%s: create user: %w", op, err)
	}
	as.log.Info("user registered", "user_id", created[0].ID)
	return created[0], nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.Login"
	invalid := apperrors.New(apperrors.KindUnauthorized, op, "invalid email or password")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", invalid
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", invalid
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", invalid
	}

	now := time.Now()
	claims := JWTClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("%s: sign token: %w", op, err)
	}
	return signed, nil
}

func (as *authService) ParseToken(ctx context.Context, token string) (*ctxutil.RequestData, error) {
	const op = "auth.ParseToken"
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.New(apperrors.KindUnauthorized, op, "you are not authorized")
	}
	parsed, err := jwt.ParseWithClaims(token, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		return as.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, &apperrors.Error{Kind: apperrors.KindUnauthorized, Op: op, Msg: "invalid or expired token", Err: err}
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.New(apperrors.KindUnauthorized, op, "invalid or expired token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, &apperrors.Error{Kind: apperrors.KindUnauthorized, Op: op, Msg: "invalid user id in token", Err: err}
	}
	return &ctxutil.RequestData{UserID: userID, Email: claims.Email}, nil
}
