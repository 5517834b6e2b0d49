package accountsrv

import (
	"context"
	"time"

	"github.com/Ejeanjules/capstone-project/board/account"
	"github.com/Ejeanjules/capstone-project/pkg/iam/auth"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

// Service implements account business logic
type Service struct {
	repo   account.Repository
	tokens *auth.TokenService
}

// NewService creates a new account service
func NewService(repo account.Repository, tokens *auth.TokenService) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
	}
}

// Register creates a user and issues their first token
func (s *Service) Register(ctx context.Context, req account.RegisterRequest) (*account.AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = account.RoleApplicant
	}

	now := time.Now()
	user := &account.User{
		ID:        kernel.GenerateUserID(),
		Username:  kernel.NewUsername(req.Username),
		Email:     kernel.NewEmail(req.Email),
		FirstName: kernel.FirstName(req.FirstName),
		LastName:  kernel.LastName(req.LastName),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if taken, err := s.repo.ExistsByUsername(ctx, user.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, account.ErrUsernameTaken()
	}

	if taken, err := s.repo.ExistsByEmail(ctx, user.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, account.ErrEmailTaken()
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logx.Infof("registered user %s (%s)", user.Username, user.Role)
	return s.issueToken(user)
}

// Login authenticates by username and password
func (s *Service) Login(ctx context.Context, req account.LoginRequest) (*account.AuthResponse, error) {
	user, err := s.repo.GetByUsername(ctx, kernel.NewUsername(req.Username))
	if err != nil {
		// Do not reveal whether the username exists.
		return nil, account.ErrInvalidCredentials()
	}

	if !user.CheckPassword(req.Password) {
		return nil, account.ErrInvalidCredentials()
	}

	return s.issueToken(user)
}

// CurrentUser returns the authenticated user's profile
func (s *Service) CurrentUser(ctx context.Context, userID kernel.UserID) (*account.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) issueToken(user *account.User) (*account.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Username,
		auth.ScopesForRole(string(user.Role)),
	)
	if err != nil {
		return nil, err
	}

	return &account.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}
