package service

import (
	"errors"
	"fmt"
	"zapzap/backend/internal/model"
	"zapzap/backend/internal/pkg/apperr"
	"zapzap/backend/internal/pkg/auth"
	"zapzap/backend/internal/repository"

	"gorm.io/gorm"
)

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(name, password string) (*model.User, error) {
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if password == "" {
		return nil, apperr.Invalid("password is required")
	}

	exists, err := s.users.NameExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(fmt.Sprintf("user with name %s already exists", name))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Password: hash}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(name, password string) (*model.User, error) {
	user, err := s.users.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, apperr.Unauthenticated("invalid credentials")
	}

	return user, nil
}

func (s *userService) GetUserByID(id string) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUsersByIDs(ids []string) ([]model.User, error) {
	return s.users.FindByIDs(ids)
}

func (s *userService) ListUsers() ([]model.User, error) {
	return s.users.FindAll()
}

func (s *userService) SetBanned(actorID, targetID string, banned bool) error {
	if actorID == targetID {
		return apperr.Forbidden("you cannot ban or unban yourself")
	}

	user, err := s.GetUserByID(targetID)
	if err != nil {
		return err
	}

	user.Banned = banned
	return s.users.Update(user)
}
