package profile

import (
	"spotex/internal/consts"
	"spotex/internal/service"
	"spotex/pkg/errors"
	"spotex/pkg/errors/ecode"
	"spotex/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

// @Summary		用户资产概况
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.PortfolioRes}
// @Router			/api/v1/profile [get]
func (h *ProfileHandler) PortfolioGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := h.service.PortfolioGet(ctx, userId)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.NotFoundErr, "portfolio query failed"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
