package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/data/db"
	"github.com/yungbote/bloglist-backend/internal/data/repos"
	types "github.com/yungbote/bloglist-backend/internal/domain"
	"github.com/yungbote/bloglist-backend/internal/platform/apierr"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

const (
	minPasswordLength = 3
	minUsernameLength = 3
)

type RegisterInput struct {
	Username string
	Name     string
	Password string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
}

type userService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	bcryptCost int
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, bcryptCost int) UserService {
	serviceLog := log.With("service", "UserService")
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

func (us *userService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)

	if len(in.Password) < minPasswordLength {
		return nil, apierr.BadRequest("invalid_password", "Password missing or too short (minimum length 3 characters)!")
	}
	if len(username) < minUsernameLength {
		return nil, apierr.BadRequest("invalid_username", "Username missing or too short (minimum length 3 characters)!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), us.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	}
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return usernameTaken(username)
		}
		if _, err := us.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			if db.IsUniqueViolation(err) {
				return usernameTaken(username)
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		us.log.Warn("Register user failed", "username", username, "error", err)
		return nil, err
	}
	us.log.Info("User registered", "user_id", user.ID.String())
	return user, nil
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	users, err := us.userRepo.ListWithBlogs(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func usernameTaken(username string) error {
	return apierr.Conflict(
		"username_taken",
		fmt.Sprintf("User validation failed: username: Error, expected `username` to be unique. Value: `%s`", username),
	)
}
