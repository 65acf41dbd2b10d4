package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"spotex/conf"
	"spotex/internal/dao/query"
	"spotex/internal/model"
	"spotex/internal/model/entity"
	"spotex/pkg/jwt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户注册登录只是核心外面的薄适配层，核心只认userId

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserPassword = errors.New("invalid email or password")
)

var _ UserService = (*userService)(nil)

type UserService interface {
	UserRegister(ctx context.Context, req model.UserRegisterReq) (model.UserLoginRes, error)
	UserLogin(ctx context.Context, req model.UserLoginReq) (model.UserLoginRes, error)
	// 登出把token加入黑名单
	UserLogout(ctx context.Context, tokenStr string) error
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *userService {
	return &userService{db: db}
}

func (s *userService) UserRegister(ctx context.Context, req model.UserRegisterReq) (res model.UserLoginRes, err error) {
	ud := query.NewUserDao(s.db)

	if _, err = ud.UserGetByEmail(ctx, req.Email); err == nil {
		return res, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return res, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return res, err
	}

	user := entity.User{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: string(hashed),
		Balance:  decimal.Zero, // 入金走独立的充值流程
	}
	if err = ud.UserCreateNew(ctx, &user); err != nil {
		return res, err
	}

	return s.issueToken(user.Id)
}

func (s *userService) UserLogin(ctx context.Context, req model.UserLoginReq) (res model.UserLoginRes, err error) {
	user, err := query.NewUserDao(s.db).UserGetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, ErrUserPassword
		}
		return res, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return res, ErrUserPassword
	}

	return s.issueToken(user.Id)
}

func (s *userService) UserLogout(ctx context.Context, tokenStr string) error {
	return jwt.JoinBlackList(ctx, tokenStr)
}

func (s *userService) issueToken(userId int64) (res model.UserLoginRes, err error) {
	ttl := conf.AppConfig.Jwt.JwtTtl
	if ttl <= 0 {
		ttl = 3600 * 24
	}
	exp := time.Now().Add(time.Duration(ttl) * time.Second)

	token, err := jwt.GenToken(jwt.BuildClaims(exp, userId), conf.AppConfig.Jwt.Secret)
	if err != nil {
		return res, err
	}

	res.UserId = strconv.FormatInt(userId, 10)
	res.AccessToken = token
	res.ExpiresIn = ttl
	return res, nil
}
