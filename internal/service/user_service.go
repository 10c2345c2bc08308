package service

import (
	"context"
	"strings"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/cache"
	"github.com/storepanel/internal/logger"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

// UserService 后台用户管理服务（仅超级管理员可用）
type UserService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	authSvc   *AuthService
	authz     *authz.Service
	activity  *ActivityService
}

// NewUserService 创建用户管理服务
func NewUserService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	authSvc *AuthService,
	authzSvc *authz.Service,
	activity *ActivityService,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
		authSvc:   authSvc,
		authz:     authzSvc,
		activity:  activity,
	}
}

// UserInput 用户创建/更新输入
type UserInput struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Role        string    `json:"role"`
	StoreID     *uint     `json:"store_id"`
	IsActive    *bool     `json:"is_active"`
	Permissions *[]string `json:"permissions"` // 按用户回收的资源路径，nil 表示不变更
}

// List 用户列表
func (s *UserService) List(scope authz.Scope, filter repository.UserListFilter) ([]models.User, int64, error) {
	if !scope.IsSuper() {
		return nil, 0, ErrForbidden
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return s.userRepo.List(filter)
}

// Get 用户详情
func (s *UserService) Get(scope authz.Scope, id uint) (*models.User, error) {
	if !scope.IsSuper() {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Create 创建用户并授予对应角色
func (s *UserService) Create(scope authz.Scope, input UserInput, actor Actor) (*models.User, error) {
	if !scope.IsSuper() {
		return nil, ErrForbidden
	}
	role := models.Role(strings.TrimSpace(input.Role))
	if err := s.validateInput(input, role, nil, true); err != nil {
		return nil, err
	}
	storeID, err := s.resolveStoreBinding(role, input.StoreID)
	if err != nil {
		return nil, err
	}

	hashed, err := s.authSvc.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hashed,
		Role:         role,
		StoreID:      storeID,
		IsActive:     true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Permissions != nil {
		user.Permissions = normalizeRevokedObjects(*input.Permissions)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	if err := s.authz.SetUserRole(user.ID, role.String()); err != nil {
		return nil, err
	}

	userID := user.ID
	s.activity.Record(actor, storeID, "user.created", "created user "+user.Email, "user", &userID, models.JSON{
		"role": role.String(),
	})
	return user, nil
}

// Update 更新用户（角色与店铺绑定可变更）
func (s *UserService) Update(scope authz.Scope, id uint, input UserInput, actor Actor) (*models.User, error) {
	if !scope.IsSuper() {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	role := user.Role
	if strings.TrimSpace(input.Role) != "" {
		role = models.Role(strings.TrimSpace(input.Role))
	}
	if err := s.validateInput(input, role, &id, false); err != nil {
		return nil, err
	}
	storeID, err := s.resolveStoreBinding(role, input.StoreID)
	if err != nil {
		return nil, err
	}

	roleChanged := role != user.Role
	user.Name = strings.TrimSpace(input.Name)
	user.Email = normalizeEmail(input.Email)
	user.Role = role
	user.StoreID = storeID
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Permissions != nil {
		user.Permissions = normalizeRevokedObjects(*input.Permissions)
	}
	if strings.TrimSpace(input.Password) != "" {
		hashed, err := s.authSvc.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if roleChanged {
		if err := s.authz.SetUserRole(user.ID, role.String()); err != nil {
			return nil, err
		}
	}

	// 权限相关字段变更后旧令牌携带的缓存状态失效
	if err := cache.DelUserAuthState(context.Background(), user.ID); err != nil {
		logger.Warnw("drop cached auth state", "user_id", user.ID, "error", err)
	}

	s.activity.Record(actor, storeID, "user.updated", "updated user "+user.Email, "user", &id, nil)
	return user, nil
}

// Delete 删除用户（不可删除自身）
func (s *UserService) Delete(scope authz.Scope, id uint, actor Actor) error {
	if !scope.IsSuper() {
		return ErrForbidden
	}
	if scope.UserID == id {
		return NewValidationError(map[string]string{
			"user": "cannot delete the current user",
		})
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	if err := cache.DelUserAuthState(context.Background(), id); err != nil {
		logger.Warnw("drop cached auth state", "user_id", id, "error", err)
	}

	s.activity.Record(actor, user.StoreID, "user.deleted", "deleted user "+user.Email, "user", &id, nil)
	return nil
}

func (s *UserService) validateInput(input UserInput, role models.Role, excludeID *uint, requirePassword bool) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	email := normalizeEmail(input.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "invalid email format"
	} else {
		count, err := s.userRepo.CountByEmail(email, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailExists
		}
	}
	if !role.Valid() {
		fields["role"] = "invalid role"
	}
	if requirePassword && strings.TrimSpace(input.Password) == "" {
		fields["password"] = "password is required"
	}
	if strings.TrimSpace(input.Password) != "" {
		if err := s.authSvc.ValidatePassword(input.Password); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

// normalizeRevokedObjects 清洗用户级回收列表，丢弃空项
func normalizeRevokedObjects(objects []string) models.StringArray {
	cleaned := make(models.StringArray, 0, len(objects))
	for _, object := range objects {
		object = strings.TrimSpace(object)
		if object == "" {
			continue
		}
		cleaned = append(cleaned, authz.NormalizeObject(object))
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// resolveStoreBinding 店铺管理员必须绑定存在的店铺，超级管理员不绑定
func (s *UserService) resolveStoreBinding(role models.Role, storeID *uint) (*uint, error) {
	if role.IsSuper() {
		return nil, nil
	}
	if storeID == nil || *storeID == 0 {
		return nil, NewValidationError(map[string]string{
			"store_id": "store_id is required for store admins",
		})
	}
	store, err := s.storeRepo.GetByID(*storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, NewValidationError(map[string]string{
			"store_id": "store not found",
		})
	}
	return storeID, nil
}
