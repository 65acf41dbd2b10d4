package user

import (
	"spotex/internal/consts"
	"spotex/internal/model"
	"spotex/internal/service"
	"spotex/pkg/errors"
	"spotex/pkg/errors/ecode"
	"spotex/pkg/response"
	"spotex/pkg/validator"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// @Summary		用户注册接口
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.UserLoginRes}
// @Router			/api/v1/auth/register [post]
func (h *UserHandler) UserRegister() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserRegisterReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", validator.TranslateErr(err)), nil)
			return
		}

		res, err := h.service.UserRegister(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.UserRegisterErr, err.Error()), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		用户登录接口
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.UserLoginRes}
// @Router			/api/v1/auth/login [post]
func (h *UserHandler) UserLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserLoginReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", validator.TranslateErr(err)), nil)
			return
		}

		res, err := h.service.UserLogin(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.WithCode(ecode.UserLoginErr, "%s", err.Error()), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		用户登出，token进黑名单
// @Produce		json
// @Param			Authorization	header	string	false	"Bearer 用户令牌"
// @Router			/api/v1/user/logout [get]
func (h *UserHandler) UserLogout() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := ctx.GetString(consts.JWTTokenCtx)
		if err := h.service.UserLogout(ctx, tokenStr); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "logout failed"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}
