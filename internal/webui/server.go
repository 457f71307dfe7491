// Package webui renders the admin console: server-side HTML pages that list,
// filter and edit back-office data through the REST API.
package webui

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/middleware"
)

// Page sizes of the console tables.
const (
	ProductsPageSize         = 10
	CategoriesPageSize       = 8
	UsersPageSize            = 5
	OrdersPageSize           = 5
	CategoryProductsPageSize = 5
	UserOrdersPageSize       = 5
)

const (
	loginPath    = "/login"
	homePath     = "/products/viewProducts"
	notFoundText = "404 - Page Not Found"
)

type Options struct {
	AdminUsername string
	AdminPassword string
	SessionSecret string
	SecureCookie  bool
	// Limiter may be nil; login attempts are then not counted.
	Limiter *cache.LoginLimiter
}

type Server struct {
	api      Backend
	sessions sessions.Store
	opts     Options
}

func New(api Backend, opts Options) *Server {
	return &Server{
		api:      api,
		sessions: newSessionStore(opts.SessionSecret, opts.SecureCookie),
		opts:     opts,
	}
}

// Register installs the templates and every console route on r.
func (s *Server) Register(r *gin.Engine) error {
	tmpl, err := parseTemplates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, loginPath) })
	r.GET(loginPath, s.loginPage)
	r.POST(loginPath, middleware.LoginRateLimit(s.opts.Limiter, s.loginBlocked), s.login)
	r.GET("/logout", s.logout)
	r.POST("/logout", s.logout)

	admin := r.Group("/", middleware.RequireLogin(s.loggedIn, loginPath))
	{
		admin.POST("/ui/sidebar", s.toggleSidebar)

		products := admin.Group("/products")
		products.GET("/viewProducts", s.viewProducts)
		products.GET("/addProduct", s.addProductPage)
		products.POST("/addProduct", s.addProduct)
		products.GET("/editProduct/:productId", s.editProductPage)
		products.GET("/editProduct/:productId/:slug", s.editProductPage)
		products.POST("/editProduct/:productId", s.editProduct)
		products.POST("/deleteProduct/:productId", s.deleteProduct)
		products.GET("/export.xlsx", s.exportProducts)

		categories := admin.Group("/categories")
		categories.GET("/viewCategories", s.viewCategories)
		categories.GET("/addCategory", s.addCategoryPage)
		categories.POST("/addCategory", s.addCategory)
		categories.GET("/editCategory/:categoryId", s.editCategoryPage)
		categories.POST("/editCategory/:categoryId", s.editCategory)
		categories.POST("/deleteCategory/:categoryId", s.deleteCategory)

		users := admin.Group("/users")
		users.GET("/viewUsers", s.viewUsers)
		users.GET("/addUser", s.addUserPage)
		users.POST("/addUser", s.addUser)
		users.GET("/editUser/:userId", s.editUserPage)
		users.POST("/editUser/:userId", s.editUser)
		users.POST("/deleteUser/:userId", s.deleteUser)

		carts := admin.Group("/carts")
		carts.GET("/newOrders", s.viewOrders)
		carts.GET("/order/:orderId", s.orderDetail)
		carts.GET("/order/:orderId/qr.png", s.orderQR)
		carts.POST("/order/:orderId/confirm", s.confirmOrder)
		carts.POST("/order/:orderId/complete", s.completeOrder)
		carts.POST("/order/:orderId/delete", s.deleteOrder)
	}

	r.NoRoute(s.notFound)
	return nil
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "404.html", gin.H{"Title": notFoundText})
}
