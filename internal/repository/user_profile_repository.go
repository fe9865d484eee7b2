package repository

import (
	"gorm.io/gorm"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/model"
)

type UserProfileRepository interface {
	// Upsert writes the profile keyed on its id (shared with the auth
	// identity). Re-running it for an existing identity is the intended
	// recovery path after a partial provisioning failure.
	Upsert(profile *model.UserProfile) error
	FindByID(id string) (*model.UserProfile, error)
	FindAllIDs() ([]string, error)
}

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) Upsert(profile *model.UserProfile) error {
	if err := r.db.Clauses(onConflict("id")).Create(profile).Error; err != nil {
		return &apperror.StoreWriteError{Op: "upsert profile", Err: err}
	}
	return nil
}

func (r *userProfileRepository) FindByID(id string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.First(&profile, "id = ?", id).Error
	return &profile, err
}

func (r *userProfileRepository) FindAllIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&model.UserProfile{}).Pluck("id", &ids).Error
	return ids, err
}
