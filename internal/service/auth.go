package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/auth"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/model"
	"github.com/ahmetcinarr/selvigsm/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// VerifyAdmin checks credentials like Login but additionally
	// requires the admin flag; used by the session-based admin login.
	VerifyAdmin(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type authServiceImpl struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenIssuer
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, bcryptCost int) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, string, error) {
	fields := map[string]string{}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = "invalid email address"
	}
	if len(req.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	if len(fields) > 0 {
		return nil, "", apperr.New(apperr.Validation, "invalid registration input").WithFields(fields)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}
	if exists {
		return nil, "", apperr.New(apperr.Conflict, "email address is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authServiceImpl) VerifyAdmin(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin {
		return nil, apperr.New(apperr.Forbidden, "admin access required")
	}

	return user, nil
}

// verify resolves credentials to a user. Unknown email and wrong
// password produce the same error so callers cannot tell them apart.
func (s *authServiceImpl) verify(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthenticated, "invalid email or password")
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid email or password")
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	return user, nil
}

func (s *authServiceImpl) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}
