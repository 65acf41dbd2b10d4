package query

import (
	"context"

	"spotex/internal/dao"
	"spotex/internal/model/entity"
	"spotex/pkg/idgen"

	"gorm.io/gorm"
)

var _ dao.UserDao = (*userDao)(nil)

type userDao struct {
	db *gorm.DB
}

func NewUserDao(db *gorm.DB) *userDao {
	return &userDao{db: db}
}

func (d *userDao) UserCreateNew(ctx context.Context, user *entity.User) error {
	if user.Id == 0 {
		user.Id = idgen.NextId()
	}
	return d.db.WithContext(ctx).Create(user).Error
}

func (d *userDao) UserGetByEmail(ctx context.Context, email string) (user entity.User, err error) {
	err = d.db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ?", email).
		First(&user).Error
	return
}

func (d *userDao) UserGetById(ctx context.Context, userId int64) (user entity.User, err error) {
	err = d.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userId).
		First(&user).Error
	return
}
