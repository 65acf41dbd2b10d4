package order

import (
	"strconv"

	"spotex/internal/consts"
	"spotex/internal/dao"
	"spotex/internal/model"
	"spotex/internal/service"
	"spotex/pkg/errors"
	"spotex/pkg/errors/ecode"
	"spotex/pkg/response"
	"spotex/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// @Summary		下限价单
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.OrderRes}
// @Router			/api/v1/order [post]
func (h *OrderHandler) OrderPlace() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.OrderPlaceReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", validator.TranslateErr(err)), nil)
			return
		}

		userId := ctx.GetInt64(consts.UserID)
		res, err := h.service.OrderPlaceNew(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, decodeOrderErr(err), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		撤单
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Router			/api/v1/order/{id}/cancel [post]
func (h *OrderHandler) OrderCancel() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderId, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
		if err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "invalid order id"), nil)
			return
		}

		userId := ctx.GetInt64(consts.UserID)
		if err := h.service.OrderCancel(ctx, userId, orderId); err != nil {
			response.JSON(ctx, decodeOrderErr(err), nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"message": "Order cancelled"})
	}
}

// @Summary		订单簿
// @Produce		json
// @Param			symbol	query	string	true	"标的名称"
// @Success		200		{object}	response.ApiResponse{data=model.OrderbookRes}
// @Router			/api/v1/order/book [get]
func (h *OrderHandler) OrderbookGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		symbol := ctx.Query("symbol")
		if symbol == "" {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "symbol is required"), nil)
			return
		}

		res, err := h.service.OrderbookGet(ctx, symbol)
		if err != nil {
			response.JSON(ctx, decodeOrderErr(err), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		用户历史订单
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.OrderHistoryRes}
// @Router			/api/v1/order/history [get]
func (h *OrderHandler) OrderHistoryGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		page := cast.ToInt(ctx.DefaultQuery("page", "1"))
		limit := cast.ToInt(ctx.DefaultQuery("limit", "20"))

		res, err := h.service.OrderHistoryGet(ctx, userId, page, limit)
		if err != nil {
			response.JSON(ctx, decodeOrderErr(err), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		最近成交
// @Produce		json
// @Param			symbol	query	string	true	"标的名称"
// @Success		200		{object}	response.ApiResponse{data=[]model.TradeRes}
// @Router			/api/v1/order/trades [get]
func (h *OrderHandler) TradesGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		symbol := ctx.Query("symbol")
		if symbol == "" {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "symbol is required"), nil)
			return
		}
		limit := cast.ToInt(ctx.DefaultQuery("limit", "50"))

		res, err := h.service.TradeHistoryGet(ctx, symbol, limit)
		if err != nil {
			response.JSON(ctx, decodeOrderErr(err), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// decodeOrderErr 把业务错误翻译成错误码
func decodeOrderErr(err error) error {
	switch {
	case errors.Is(err, dao.ErrInsufficientBalance):
		return errors.WithCode(ecode.InsufficientBalanceErr, "%s", ecode.Message(ecode.InsufficientBalanceErr))
	case errors.Is(err, dao.ErrInsufficientAsset):
		return errors.WithCode(ecode.InsufficientAssetErr, "%s", ecode.Message(ecode.InsufficientAssetErr))
	case errors.Is(err, service.ErrNotOrderOwner):
		return errors.WithCode(ecode.OrderForbiddenErr, "%s", ecode.Message(ecode.OrderForbiddenErr))
	case errors.Is(err, service.ErrOrderNotOpen):
		return errors.WithCode(ecode.OrderNotOpenErr, "%s", ecode.Message(ecode.OrderNotOpenErr))
	case errors.Is(err, service.ErrInvalidOrderParam):
		return errors.WithCode(ecode.ValidateErr, "%s", err.Error())
	case errors.Is(err, service.ErrSymbolNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return errors.WithCode(ecode.NotFoundErr, "%s", err.Error())
	default:
		return errors.Wrap(err, ecode.Unknown, "order operation failed")
	}
}
