package service

import (
	"context"
	"fmt"

	"projectlog/internal/logger"
	"projectlog/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	projects *ProjectService
}

func NewUserService(db *gorm.DB, projects *ProjectService) *UserService {
	return &UserService{db: db, projects: projects}
}

func (s *UserService) List(ctx context.Context) ([]model.UserDTO, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Preload("Role").Order("username").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	dtos := make([]model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(&u))
	}
	return dtos, nil
}

func (s *UserService) Roles(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := s.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (s *UserService) Create(ctx context.Context, req model.UserCreateRequest) (*model.UserDTO, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("username %q taken: %w", req.Username, ErrConflict)
	}

	role, err := s.loadRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{Username: req.Username, PasswordHash: string(hashed), RoleID: role.ID, Role: *role}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Info("user.created", "id", u.ID, "username", u.Username, "role", role.Name)
	dto := toUserDTO(&u)
	return &dto, nil
}

func (s *UserService) Update(ctx context.Context, userID int, req model.UserUpdateRequest) error {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("load user: %w", err)
	}

	if u.Username != req.Username {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.User{}).
			Where("username = ? AND id <> ?", req.Username, userID).Count(&count).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("username %q taken: %w", req.Username, ErrConflict)
		}
		u.Username = req.Username
	}

	// Blank password keeps the current hash.
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hashed)
	}

	role, err := s.loadRole(ctx, req.RoleID)
	if err != nil {
		return err
	}
	u.RoleID = role.ID

	if err := s.db.WithContext(ctx).Save(&u).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes the user and, through project cascade, everything they
// own. The calling admin cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, id model.Identity, userID int) error {
	if id.UserID == userID {
		return fmt.Errorf("cannot delete own account: %w", ErrInvalid)
	}
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("load user: %w", err)
	}

	var owned []model.Project
	if err := s.db.WithContext(ctx).Where("owner_id = ?", userID).Find(&owned).Error; err != nil {
		return fmt.Errorf("list owned projects: %w", err)
	}
	for _, p := range owned {
		if err := s.projects.Delete(ctx, id, p.ID); err != nil {
			return fmt.Errorf("cascade project %d: %w", p.ID, err)
		}
	}

	if err := s.db.WithContext(ctx).Delete(&u).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	logger.Info("user.deleted", "id", userID, "by", id.UserID)
	return nil
}

func (s *UserService) loadRole(ctx context.Context, roleID int) (*model.Role, error) {
	var role model.Role
	if err := s.db.WithContext(ctx).First(&role, roleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("role %d: %w", roleID, ErrInvalid)
		}
		return nil, fmt.Errorf("load role: %w", err)
	}
	return &role, nil
}

func toUserDTO(u *model.User) model.UserDTO {
	return model.UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		RoleID:    u.RoleID,
		RoleName:  u.Role.Name,
		CreatedAt: u.CreatedAt,
	}
}
