package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/handlers/admin"
	"shop_backoffice/internal/handlers/product"
	"shop_backoffice/internal/handlers/user"
	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/utils"
)

// Options carries the router-level settings of the API.
type Options struct {
	CORSOrigins      []string
	ServiceJWTSecret string
}

// RegisterRoutes mounts the /{Controller}/{Action} API.
func RegisterRoutes(r *gin.Engine, deps handlers.Deps, opts Options) {
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}
	r.Use(middleware.ServiceTokenRequired(opts.ServiceJWTSecret))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.AuditCriticalActions(deps.Auditor, action, resource)
	}

	catalog := product.New(deps)
	category := r.Group("/Category")
	{
		category.GET("/GetCategories", catalog.GetCategories)
		category.GET("/GetCategoryById/:id", catalog.GetCategoryByID)
		category.GET("/SearchCategory", catalog.SearchCategory)
		category.POST("/PostCategory", audit(utils.ActionCategoryCreate, utils.ResourceCategory), catalog.PostCategory)
		category.PUT("/PutCategory", audit(utils.ActionCategoryUpdate, utils.ResourceCategory), catalog.PutCategory)
		category.DELETE("/DeleteCategory/:id", audit(utils.ActionCategoryDelete, utils.ResourceCategory), catalog.DeleteCategory)
	}

	products := r.Group("/ProductInfo")
	{
		products.GET("/GetProductInfos", catalog.GetProductInfos)
		products.GET("/GetProductDetailsById/:id", catalog.GetProductDetailsByID)
		products.GET("/GetProductsByCategoryId/:categoryId", catalog.GetProductsByCategoryID)
		products.GET("/SearchProductInfo", catalog.SearchProductInfo)
		products.POST("/PostProductInfo", audit(utils.ActionProductCreate, utils.ResourceProduct), catalog.PostProductInfo)
		products.PUT("/PutProductInfo", audit(utils.ActionProductUpdate, utils.ResourceProduct), catalog.PutProductInfo)
		products.DELETE("/DeleteProductInfo/:id", audit(utils.ActionProductDelete, utils.ResourceProduct), catalog.DeleteProductInfo)
		products.POST("/UploadImage", audit(utils.ActionImageUpload, utils.ResourceProduct), catalog.UploadImage)
	}

	accounts := user.New(deps)
	users := r.Group("/UserInfo")
	{
		users.GET("/GetUserInfos", accounts.GetUserInfos)
		users.GET("/GetUserInfoById/:id", accounts.GetUserInfoByID)
		users.GET("/SearchUserInfo", accounts.SearchUserInfo)
		users.POST("/PostUserInfo", audit(utils.ActionUserCreate, utils.ResourceUser), accounts.PostUserInfo)
		users.PUT("/PutUserInfo", audit(utils.ActionUserUpdate, utils.ResourceUser), accounts.PutUserInfo)
		users.DELETE("/DeleteUserInfo/:id", audit(utils.ActionUserDelete, utils.ResourceUser), accounts.DeleteUserInfo)
	}

	carts := r.Group("/CartInfo")
	{
		carts.GET("/GetCartInfos", accounts.GetCartInfos)
		carts.GET("/GetAllTransactions", accounts.GetAllTransactions)
		carts.GET("/GetCartInfoById/:id", accounts.GetCartInfoByID)
		carts.GET("/GetCartSummary", accounts.GetCartSummary)
		carts.POST("/PostCartInfo", audit(utils.ActionOrderCreate, utils.ResourceOrder), accounts.PostCartInfo)
		carts.PUT("/UpdateStatusCartInfo", audit(utils.ActionOrderStatus, utils.ResourceOrder), accounts.UpdateStatusCartInfo)
		carts.DELETE("/DeleteCartInfo/:id", audit(utils.ActionOrderDelete, utils.ResourceOrder), accounts.DeleteCartInfo)
	}

	r.GET("/Audit/GetAuditLogs", admin.GetAuditLogs(deps.Store))
}
