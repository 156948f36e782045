package service

import (
	"errors"
	"zapzap/backend/internal/model"
	"zapzap/backend/internal/pkg/apperr"
	"zapzap/backend/internal/repository"

	"gorm.io/gorm"
)

type groupService struct {
	groups repository.GroupRepository
}

func NewGroupService(groups repository.GroupRepository) GroupService {
	return &groupService{groups: groups}
}

func (s *groupService) Create(creatorID, name string, adminsID, members []string, lastAdminRule string) (*model.Group, error) {
	if name == "" {
		return nil, apperr.Invalid("group name is required")
	}

	switch lastAdminRule {
	case "", model.LastAdminPromote, model.LastAdminDelete:
	default:
		return nil, apperr.Invalid("lastAdminRule must be promote or delete")
	}

	// The creator always ends up an admin and a member, whatever the
	// request listed.
	memberList := model.IDList(members)
	if !memberList.Contains(creatorID) {
		memberList = append(memberList, creatorID)
	}
	adminList := model.IDList(adminsID)
	if !adminList.Contains(creatorID) {
		adminList = append(adminList, creatorID)
	}
	for _, admin := range adminList {
		if !memberList.Contains(admin) {
			memberList = append(memberList, admin)
		}
	}

	group := &model.Group{
		Name:            name,
		AdminsID:        adminList,
		Members:         memberList,
		PendingRequests: model.IDList{},
		LastAdminRule:   lastAdminRule,
	}
	if err := s.groups.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListAll() ([]model.Group, error) {
	return s.groups.FindAll()
}

func (s *groupService) ListMine(userID string) ([]model.Group, error) {
	return s.groups.FindMine(userID)
}

func (s *groupService) Join(groupID, userID string) (*model.Group, error) {
	group, err := s.find(groupID)
	if err != nil {
		return nil, err
	}

	if group.IsMember(userID) || group.PendingRequests.Contains(userID) {
		return nil, apperr.Forbidden("user is already a member or has a pending request")
	}

	group.PendingRequests = append(group.PendingRequests, userID)
	if err := s.groups.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) Approve(groupID, adminID, userID string) (*model.Group, error) {
	group, err := s.find(groupID)
	if err != nil {
		return nil, err
	}

	if !group.IsAdmin(adminID) {
		return nil, apperr.Forbidden("only admins can approve members")
	}
	if !group.PendingRequests.Contains(userID) {
		return nil, apperr.Forbidden("user has no pending request")
	}

	group.Members = append(group.Members, userID)
	group.PendingRequests = group.PendingRequests.Without(userID)
	if err := s.groups.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Reject removes a pending request. Rejecting a user without one is a
// no-op, not an error.
func (s *groupService) Reject(groupID, adminID, userID string) (*model.Group, error) {
	group, err := s.find(groupID)
	if err != nil {
		return nil, err
	}

	if !group.IsAdmin(adminID) {
		return nil, apperr.Forbidden("only admins can reject members")
	}

	group.PendingRequests = group.PendingRequests.Without(userID)
	if err := s.groups.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) Ban(groupID, adminID, userID string) (*model.Group, error) {
	group, err := s.find(groupID)
	if err != nil {
		return nil, err
	}

	if !group.IsAdmin(adminID) {
		return nil, apperr.Forbidden("only admins can ban members")
	}
	if !group.IsMember(userID) {
		return nil, apperr.Forbidden("user is not a member of this group")
	}
	if adminID == userID {
		return nil, apperr.Forbidden("an admin cannot ban themselves")
	}

	group.Members = group.Members.Without(userID)
	group.AdminsID = group.AdminsID.Without(userID)
	if err := s.groups.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Leave removes the user from the group. When the last admin leaves, the
// group's lastAdminRule decides what happens: "delete" (or nobody left)
// removes the group, "promote" hands sole adminship to the first
// remaining member in current order.
func (s *groupService) Leave(groupID, userID string) error {
	group, err := s.find(groupID)
	if err != nil {
		return err
	}

	if !group.IsMember(userID) {
		return apperr.Forbidden("user is not a member of this group")
	}

	group.Members = group.Members.Without(userID)

	if group.IsAdmin(userID) {
		group.AdminsID = group.AdminsID.Without(userID)

		if len(group.AdminsID) == 0 {
			if group.LastAdminRule == model.LastAdminDelete || len(group.Members) == 0 {
				return s.groups.Delete(groupID)
			}
			group.AdminsID = model.IDList{group.Members[0]}
		}
	}

	return s.groups.Update(group)
}

func (s *groupService) Delete(groupID, requesterID string) error {
	group, err := s.find(groupID)
	if err != nil {
		return err
	}

	if !group.IsAdmin(requesterID) {
		return apperr.Forbidden("only admins can delete the group")
	}

	return s.groups.Delete(groupID)
}

func (s *groupService) find(groupID string) (*model.Group, error) {
	group, err := s.groups.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("group not found")
		}
		return nil, err
	}
	return group, nil
}
