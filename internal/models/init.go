package models

import (
	"github.com/storepanel/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultSuperAdmin 初始化默认超级管理员账号
func InitDefaultSuperAdmin(name, email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", RoleSuperAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	if name == "" {
		name = "Super Admin"
	}
	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleSuperAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_super_admin_created_with_default_password", "email", email)
		logger.Warnw("default_super_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_super_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}
