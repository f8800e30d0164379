package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/utils"
	"github.com/newsblog/newsblog/validation"
)

// ErrInvalidCredentials is returned on any login failure. The message never
// distinguishes an unknown email from a wrong password.
var ErrInvalidCredentials = &AuthorizationError{Reason: "invalid email or password"}

// AuthService implements the registration and login use cases.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register validates the sign-up form and creates the user. A colliding email
// fails validation before any row is written; the unique index on users.email
// closes the remaining race, and a constraint violation at write time maps to
// the same field error.
func (s *AuthService) Register(form validation.RegistrationForm) (*models.User, error) {
	errs := form.Validate(func(email string) bool {
		_, err := s.FindByEmail(email)
		return err == nil
	})
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, persistence("hash password", err)
	}

	user := models.User{
		Name:         form.Name,
		Email:        form.Email,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ValidationError{Fields: validation.Errors{"email": "this email is already registered"}}
		}
		return nil, persistence("create user", err)
	}
	return &user, nil
}

// Login verifies credentials against the stored bcrypt hash.
func (s *AuthService) Login(form validation.LoginForm) (*models.User, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.FindByEmail(form.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistence("find user by email", err)
	}
	if !utils.CheckPassword(user.PasswordHash, form.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FindByEmail looks a user up by exact email. Lookup is case sensitive even
// on stores whose default collation is not.
func (s *AuthService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", ID: id}
		}
		return nil, persistence("load user", err)
	}
	return &user, nil
}

// DeleteUser removes the account together with everything it owns: its
// articles, all comments on those articles, and comments the user left
// elsewhere. The whole cascade commits or rolls back as a unit. There is no
// route for this operation; it exists for administrative tooling.
func (s *AuthService) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		var articleIDs []uint
		if err := tx.Model(&models.Article{}).Where("user_id = ?", id).Pluck("id", &articleIDs).Error; err != nil {
			return err
		}
		if len(articleIDs) > 0 {
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", articleIDs).Delete(&models.Article{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "user", ID: id}
		}
		return persistence("delete user", err)
	}
	return nil
}
