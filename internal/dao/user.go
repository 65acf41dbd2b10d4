package dao

import (
	"context"

	"spotex/internal/model/entity"
)

type UserDao interface {
	// 创建用户
	UserCreateNew(ctx context.Context, user *entity.User) error
	// 根据邮箱获取用户
	UserGetByEmail(ctx context.Context, email string) (entity.User, error)
	// 根据id获取用户
	UserGetById(ctx context.Context, userId int64) (entity.User, error)
}
