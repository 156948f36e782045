package repository

import (
	"zapzap/backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(group *model.Group) error
	FindAll() ([]model.Group, error)
	// FindMine returns the groups the user is a member of.
	FindMine(userID string) ([]model.Group, error)
	FindByID(id string) (*model.Group, error)
	Update(group *model.Group) error
	Delete(id string) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(group *model.Group) error {
	return r.db.Create(group).Error
}

func (r *groupRepository) FindAll() ([]model.Group, error) {
	var groups []model.Group
	if err := r.db.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Membership lives in a semicolon-joined column, so filtering happens here
// rather than in SQL. Group counts are small enough that this matches the
// old read-everything store without hurting.
func (r *groupRepository) FindMine(userID string) ([]model.Group, error) {
	groups, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	mine := make([]model.Group, 0, len(groups))
	for _, g := range groups {
		if g.IsMember(userID) {
			mine = append(mine, g)
		}
	}
	return mine, nil
}

func (r *groupRepository) FindByID(id string) (*model.Group, error) {
	var group model.Group
	if err := r.db.First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) Update(group *model.Group) error {
	return r.db.Save(group).Error
}

func (r *groupRepository) Delete(id string) error {
	return r.db.Delete(&model.Group{}, "id = ?", id).Error
}
