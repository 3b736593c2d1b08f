package services

import (
	"errors"
	"fmt"

	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"gorm.io/gorm"
)

var ErrMembershipNotFound = errors.New("membership not found")

// MembershipService is a thin passthrough over membership records. The
// endpoints it backs carry no business rule beyond authentication; role
// checks happen where memberships are consumed, in the task validator.
type MembershipService struct {
	membershipRepo repository.MembershipRepository
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(membershipRepo repository.MembershipRepository) *MembershipService {
	return &MembershipService{membershipRepo: membershipRepo}
}

// CreateMembership creates a membership record
func (s *MembershipService) CreateMembership(member *models.ProjectMember) error {
	if member.Role != models.RoleAdmin && member.Role != models.RoleMember {
		member.Role = models.RoleMember
	}
	if err := s.membershipRepo.Create(member); err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// GetMembership returns a membership record by ID
func (s *MembershipService) GetMembership(id uint64) (*models.ProjectMember, error) {
	member, err := s.membershipRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return member, nil
}

// ListMemberships returns membership records matching the filter
func (s *MembershipService) ListMemberships(filter repository.MembershipFilter) ([]models.ProjectMember, error) {
	members, err := s.membershipRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return members, nil
}

// CountMemberships counts membership records matching the filter
func (s *MembershipService) CountMemberships(filter repository.MembershipFilter) (int64, error) {
	count, err := s.membershipRepo.Count(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return count, nil
}

// UpdateMembership applies a partial update to a membership record
func (s *MembershipService) UpdateMembership(id uint64, fields map[string]interface{}) error {
	if _, err := s.GetMembership(id); err != nil {
		return err
	}
	if err := s.membershipRepo.UpdateFields(id, fields); err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	return nil
}

// ReplaceMembership overwrites a membership record
func (s *MembershipService) ReplaceMembership(id uint64, member *models.ProjectMember) error {
	if _, err := s.GetMembership(id); err != nil {
		return err
	}
	member.ID = id
	if err := s.membershipRepo.Replace(member); err != nil {
		return fmt.Errorf("failed to replace membership: %w", err)
	}
	return nil
}

// DeleteMembership removes a membership record
func (s *MembershipService) DeleteMembership(id uint64) error {
	if _, err := s.GetMembership(id); err != nil {
		return err
	}
	if err := s.membershipRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}
