package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-orders/config"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type UserService struct {
	DB *gorm.DB
	// HashCost is the bcrypt cost used for new passwords.
	HashCost int
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, HashCost: bcrypt.DefaultCost}
}

// Register creates a regular user account. Uniqueness of username and email is
// left to the database constraints.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.create(ctx, username, email, password, models.RoleUser)
}

// CreateAdmin creates an administrator account from operator credentials.
func (s *UserService) CreateAdmin(ctx context.Context, creds config.AdminCredentials) (*models.User, error) {
	return s.create(ctx, creds.Username, creds.Email, creds.Password, models.RoleAdmin)
}

func (s *UserService) create(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateUser
		}
		utils.ErrorLogger.Errorf("create user %s: %v", email, err)
		return nil, storageErr("create user", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).
		Infof("New user registered: %s", user.Email)
	return &user, nil
}

// Authenticate checks an email/password pair against the stored hash.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		utils.ErrorLogger.Errorf("lookup user by email: %v", err)
		return nil, storageErr("authenticate", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByID loads a user for an established session.
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	return &user, nil
}

// HasAdmin reports whether any administrator account exists.
func (s *UserService) HasAdmin(ctx context.Context) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, storageErr("count admins", err)
	}
	return count > 0, nil
}

// EnsureAdmin creates the first administrator from creds when none exists yet.
// It reports whether an account was created. Without complete credentials and
// without an existing admin it only logs a warning.
func (s *UserService) EnsureAdmin(ctx context.Context, creds config.AdminCredentials) (bool, error) {
	exists, err := s.HasAdmin(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if !creds.Complete() {
		utils.InfoLogger.Warn("no administrator account exists; set ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD or run `restaurant create-admin`")
		return false, nil
	}

	user, err := s.CreateAdmin(ctx, creds)
	if err != nil {
		return false, err
	}
	utils.InfoLogger.Infof("Administrator created: %s", user.Email)
	return true, nil
}

func (s *UserService) cost() int {
	if s.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}
