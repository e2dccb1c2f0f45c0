package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/yungbote/lessonquiz-backend/internal/data/repos/user"
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/dbctx"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

// DefaultTokenTTL applies when IssueToken is asked for a non-positive lifetime.
const DefaultTokenTTL = 15 * time.Minute

type AuthService interface {
	HashPassword(plain string) (string, error)
	Register(dbc dbctx.Context, username string, email *string, password string) (*types.User, error)
	Authenticate(dbc dbctx.Context, username, password string) (*types.User, error)
	IssueToken(subject string, ttl time.Duration) (string, error)
	Login(dbc dbctx.Context, username, password string) (string, error)
	ResolveToken(dbc dbctx.Context, tokenString string) (*types.User, error)
	ActiveUser(dbc dbctx.Context, tokenString string) (*types.User, error)
	AccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     userrepo.UserRepo
	jwtSecretKey []byte
	accessTTL    time.Duration
	bcryptCost   int
}

type AuthOption func(*authService)

// WithBcryptCost overrides bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) AuthOption {
	return func(as *authService) { as.bcryptCost = cost }
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	opts ...AuthOption,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	as := &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
		bcryptCost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(as)
	}
	return as
}

func (as *authService) AccessTTL() time.Duration {
	if as.accessTTL <= 0 {
		return DefaultTokenTTL
	}
	return as.accessTTL
}

func (as *authService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), as.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (as *authService) Register(dbc dbctx.Context, username string, email *string, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apierr.BadRequest("invalid_request", "username and password are required")
	}
	if email != nil {
		trimmed := strings.TrimSpace(*email)
		if trimmed == "" {
			email = nil
		} else {
			email = &trimmed
		}
	}

	taken, err := as.userRepo.UsernameExists(dbc.Ctx, dbc.Tx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apierr.Conflict("username_taken", "Username already registered")
	}
	if email != nil {
		taken, err := as.userRepo.EmailExists(dbc.Ctx, dbc.Tx, *email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, apierr.Conflict("email_taken", "Email already registered")
		}
	}

	hash, err := as.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &types.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
	}
	if _, err := as.userRepo.Create(dbc.Ctx, dbc.Tx, []*types.User{user}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("username_taken", "Username already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	as.log.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate returns (nil, nil) for an unknown user or a wrong password.
func (as *authService) Authenticate(dbc dbctx.Context, username, password string) (*types.User, error) {
	users, err := as.userRepo.GetByUsernames(dbc.Ctx, dbc.Tx, []string{strings.TrimSpace(username)})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

func (as *authService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) Login(dbc dbctx.Context, username, password string) (string, error) {
	user, err := as.Authenticate(dbc, username, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		as.log.Warn("Login rejected", "username", username)
		return "", apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("Incorrect username or password"))
	}
	if user.Disabled {
		return "", apierr.BadRequest("inactive_user", "Inactive user")
	}
	return as.IssueToken(user.Username, as.AccessTTL())
}

func (as *authService) ResolveToken(dbc dbctx.Context, tokenString string) (*types.User, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, apierr.Unauthorized("Could not validate credentials")
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return as.jwtSecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		as.log.Debug("Token rejected", "error", err)
		return nil, apierr.Unauthorized("Could not validate credentials")
	}
	if claims.Subject == "" {
		return nil, apierr.Unauthorized("Could not validate credentials")
	}
	users, err := as.userRepo.GetByUsernames(dbc.Ctx, dbc.Tx, []string{claims.Subject})
	if err != nil {
		return nil, fmt.Errorf("load token subject: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.Unauthorized("Could not validate credentials")
	}
	return users[0], nil
}

func (as *authService) ActiveUser(dbc dbctx.Context, tokenString string) (*types.User, error) {
	user, err := as.ResolveToken(dbc, tokenString)
	if err != nil {
		return nil, err
	}
	if user.Disabled {
		return nil, apierr.BadRequest("inactive_user", "Inactive user")
	}
	return user, nil
}
