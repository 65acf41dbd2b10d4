package router

import (
	"spotex/internal/handler/order"
	"spotex/internal/handler/orderbook"
	"spotex/internal/handler/ping"
	"spotex/internal/handler/profile"
	"spotex/internal/handler/user"
	"spotex/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	orderHandler   *order.OrderHandler
	profileHandler *profile.ProfileHandler
	userHandler    *user.UserHandler
	bookGateway    *orderbook.Gateway
}

func NewApiRouter(oh *order.OrderHandler, ph *profile.ProfileHandler, uh *user.UserHandler, bg *orderbook.Gateway) *ApiRouter {
	return &ApiRouter{orderHandler: oh, profileHandler: ph, userHandler: uh, bookGateway: bg}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.Use(middleware.RequestId(), middleware.NoCache(), middleware.Options(), middleware.Secure(), middleware.Logger)

	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	auth := base.Group("/auth")
	{
		auth.POST("/register", api.userHandler.UserRegister())
		auth.POST("/login", api.userHandler.UserLogin())
	}

	o := base.Group("/order")
	{
		// 订单簿是公开数据，不需要登录
		o.GET("/book", api.orderHandler.OrderbookGet())
		o.GET("/book/ws", api.bookGateway.ServeWS) // 通过websocket订阅簿变更
		o.GET("/trades", api.orderHandler.TradesGet())

		authed := o.Group("", middleware.AuthToken())
		{
			authed.POST("", api.orderHandler.OrderPlace())
			authed.POST("/:id/cancel", api.orderHandler.OrderCancel())
			authed.GET("/history", api.orderHandler.OrderHistoryGet())
		}
	}

	u := base.Group("/user", middleware.AuthToken())
	{
		u.GET("/logout", api.userHandler.UserLogout())
	}

	p := base.Group("/profile", middleware.AuthToken())
	{
		p.GET("", api.profileHandler.PortfolioGet())
	}
}
