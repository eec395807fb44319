package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"milestone-api/logger"
	"milestone-api/models"
	"milestone-api/repositories"
	"milestone-api/utils"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type WelcomeMailer interface {
	SendWelcomeEmail(to, username string) error
}

type SignupInput struct {
	Email    string
	Username string
	UserType string
	Password string
}

type AuthService struct {
	users    UserStore
	tokens   *TokenManager
	mailer   WelcomeMailer
	log      *logger.Logger
	hashCost int
	newID    func() string
}

// NewAuthService wires account handling. mailer may be nil, in which case no
// welcome email is sent.
func NewAuthService(users UserStore, tokens *TokenManager, mailer WelcomeMailer, log *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		log:      log.WithComponent(logger.ComponentAuth),
		hashCost: bcrypt.DefaultCost,
		newID:    newRecordID,
	}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if email == "" || username == "" || in.UserType == "" || in.Password == "" {
		return nil, InvalidArgument("email, username, user type, and password are required")
	}
	if !utils.IsValidEmail(email) {
		return nil, InvalidArgument("email address is not valid")
	}
	if !utils.IsValidUsername(username) {
		return nil, InvalidArgument("username must be 3-50 characters of letters, digits, '.', '_' or '-'")
	}
	if !utils.IsValidPassword(in.Password) {
		return nil, InvalidArgument("password must be at least 6 characters and mix at least three of upper case, lower case, digits and symbols")
	}
	userType, ok := models.ParseUserType(in.UserType)
	if !ok {
		return nil, InvalidArgument(`user type must be "admin" or "driver"`)
	}

	if err := s.ensureAvailable(ctx, email, username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, &AppError{Kind: KindInternal, Message: "failed to hash password", Err: err}
	}

	user := &models.User{
		ID:       s.newID(),
		Email:    email,
		Username: username,
		UserType: userType,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, Conflict("email or username already exists")
		}
		return nil, Transient("failed to create user", err)
	}

	s.log.Info("user registered", logger.FieldUserID, user.ID, "user_type", user.UserType)

	if s.mailer != nil {
		go func(to, name string) {
			if err := s.mailer.SendWelcomeEmail(to, name); err != nil {
				s.log.Warn("failed to send welcome email", logger.FieldUserID, user.ID, logger.FieldError, err)
			}
		}(user.Email, user.Username)
	}

	return user, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, email, username string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return Conflict("email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return Transient("failed to check email", err)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return Conflict("username already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return Transient("failed to check username", err)
	}
	return nil
}

// Signin checks the credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, InvalidArgument("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, Unauthorized("invalid credentials")
		}
		return "", nil, Transient("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, &AppError{Kind: KindInternal, Message: "failed to generate token", Err: err}
	}
	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("user not found")
		}
		return nil, Transient("failed to fetch profile", err)
	}
	profile := user.Profile()
	return &profile, nil
}
