package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-orders/config"
	"github.com/yeremiapane/restaurant-orders/controllers"
	"github.com/yeremiapane/restaurant-orders/menu"
	"github.com/yeremiapane/restaurant-orders/metrics"
	"github.com/yeremiapane/restaurant-orders/middlewares"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/session"
	"github.com/yeremiapane/restaurant-orders/web"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Menu   *menu.Registry
	Users  *services.UserService
	Orders *services.OrderService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(web.Templates())

	// Apply security middlewares
	r.Use(middlewares.LoggerMiddleware())
	r.Use(metrics.Middleware())
	r.Use(middlewares.SecurityHeaders(deps.Config.SessionSecure))

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(deps.Users, deps.Menu)
	orderCtrl := controllers.NewOrderController(deps.Orders, deps.Menu)
	healthCtrl := controllers.NewHealthController(deps.DB)

	// ----------------------------------------------------------------
	//                      OPERATIONAL ROUTES
	// ----------------------------------------------------------------
	r.GET("/healthz", healthCtrl.Healthz)
	r.GET("/metrics", metrics.Handler())

	sessionOpts := session.DefaultOptions(deps.Config.SessionSecret)
	sessionOpts.Secure = deps.Config.SessionSecure

	app := r.Group("/")
	app.Use(session.Middleware(sessionOpts))
	app.Use(middlewares.AuthMiddleware(deps.Users))

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	app.GET("/", userCtrl.Home)
	app.GET("/signup", userCtrl.SignupPage)
	app.GET("/login", userCtrl.LoginPage)

	// Rate limiter untuk login/signup
	limiter := middlewares.NewRateLimiter(deps.Config.LoginRatePerMinute)
	app.POST("/signup", limiter.RateLimit(), userCtrl.Signup)
	app.POST("/login", limiter.RateLimit(), userCtrl.Login)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := app.Group("/")
	auth.Use(middlewares.RequireLogin())

	auth.GET("/logout", userCtrl.Logout)

	auth.GET("/order", orderCtrl.OrderPage)
	auth.POST("/order", orderCtrl.CreateOrder)
	auth.GET("/orders", orderCtrl.GetOrders)
	auth.GET("/search_order", orderCtrl.SearchOrder)
	auth.GET("/update_order/:order_id", orderCtrl.UpdateOrderPage)
	auth.POST("/update_order/:order_id", orderCtrl.UpdateOrder)

	// Routes untuk Admin
	auth.POST("/delete_order/:order_id", middlewares.RequireAdmin(), orderCtrl.DeleteOrder)

	return r
}
