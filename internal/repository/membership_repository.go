package repository

import (
	"github.com/mizuki-dev/project-task-api/internal/models"
	"gorm.io/gorm"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) applyFilter(query *gorm.DB, filter MembershipFilter) *gorm.DB {
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	return query
}

// Create creates a membership record
func (r *GormMembershipRepository) Create(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// FindByID finds a membership record by ID
func (r *GormMembershipRepository) FindByID(id uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List retrieves membership records matching the filter
func (r *GormMembershipRepository) List(filter MembershipFilter) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	query := r.applyFilter(r.db.Model(&models.ProjectMember{}), filter)
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Count counts membership records matching the filter
func (r *GormMembershipRepository) Count(filter MembershipFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.Model(&models.ProjectMember{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateFields applies a partial update to a membership record
func (r *GormMembershipRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.ProjectMember{}).
		Where("id = ?", id).
		UpdateColumns(fields).Error
}

// Replace overwrites a membership record
func (r *GormMembershipRepository) Replace(member *models.ProjectMember) error {
	return r.db.Save(member).Error
}

// Delete removes a membership record
func (r *GormMembershipRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ProjectMember{}, id).Error
}
