package repository

import (
	"viewtube/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername fetches a user by username.
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// Update applies the given column updates and returns the fresh row.
func (r *UserRepository) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// ExistsByUsername reports whether the username is taken.
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("user_name = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether the email is taken.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// SetRefreshTokenHash stores the hash of the current refresh token; an
// empty hash revokes it.
func (r *UserRepository) SetRefreshTokenHash(id int64, hash string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token_hash", hash).Error
}

// GetByRefreshTokenHash finds the user holding the given refresh token
// hash. Used by the token refresh flow, where no access token is present.
func (r *UserRepository) GetByRefreshTokenHash(hash string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("refresh_token_hash = ? AND refresh_token_hash <> ''", hash).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchByName finds users whose username or full name contains the
// query, case-insensitively.
func (r *UserRepository) SearchByName(q string, limit int) ([]model.User, error) {
	var users []model.User
	pattern := "%" + q + "%"
	err := r.db.Where("user_name ILIKE ? OR full_name ILIKE ?", pattern, pattern).
		Limit(limit).Find(&users).Error
	return users, err
}

// GetByIDs fetches users in bulk.
func (r *UserRepository) GetByIDs(ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}
