package apiclient

// Endpoint names. Paths follow the API's /{Controller}/{Action} convention.
const (
	GetCategories    = "GetCategories"
	GetCategoryByID  = "GetCategoryById"
	SearchCategory   = "SearchCategory"
	PostCategory     = "PostCategory"
	PutCategory      = "PutCategory"
	DeleteCategory   = "DeleteCategory"
	GetProductInfo   = "GetProductInfos"
	GetProductByID   = "GetProductDetailsById"
	GetProductsByCat = "GetProductsByCategoryId"
	SearchProduct    = "SearchProductInfo"
	PostProduct      = "PostProductInfo"
	PutProduct       = "PutProductInfo"
	DeleteProduct    = "DeleteProductInfo"
	UploadImage      = "UploadImage"
	GetUserInfo      = "GetUserInfos"
	GetUserByID      = "GetUserInfoById"
	SearchUser       = "SearchUserInfo"
	PostUser         = "PostUserInfo"
	PutUser          = "PutUserInfo"
	DeleteUser       = "DeleteUserInfo"
	GetCartInfo      = "GetCartInfos"
	GetTransactions  = "GetAllTransactions"
	GetCartByID      = "GetCartInfoById"
	GetCartSummary   = "GetCartSummary"
	PostCart         = "PostCartInfo"
	UpdateCartStatus = "UpdateStatusCartInfo"
	DeleteCart       = "DeleteCartInfo"
)

var paths = map[string]string{
	GetCategories:   "/Category/GetCategories",
	GetCategoryByID: "/Category/GetCategoryById",
	SearchCategory:  "/Category/SearchCategory",
	PostCategory:    "/Category/PostCategory",
	PutCategory:     "/Category/PutCategory",
	DeleteCategory:  "/Category/DeleteCategory",

	GetProductInfo:   "/ProductInfo/GetProductInfos",
	GetProductByID:   "/ProductInfo/GetProductDetailsById",
	GetProductsByCat: "/ProductInfo/GetProductsByCategoryId",
	SearchProduct:    "/ProductInfo/SearchProductInfo",
	PostProduct:      "/ProductInfo/PostProductInfo",
	PutProduct:       "/ProductInfo/PutProductInfo",
	DeleteProduct:    "/ProductInfo/DeleteProductInfo",
	UploadImage:      "/ProductInfo/UploadImage",

	GetUserInfo: "/UserInfo/GetUserInfos",
	GetUserByID: "/UserInfo/GetUserInfoById",
	SearchUser:  "/UserInfo/SearchUserInfo",
	PostUser:    "/UserInfo/PostUserInfo",
	PutUser:     "/UserInfo/PutUserInfo",
	DeleteUser:  "/UserInfo/DeleteUserInfo",

	GetCartInfo:      "/CartInfo/GetCartInfos",
	GetTransactions:  "/CartInfo/GetAllTransactions",
	GetCartByID:      "/CartInfo/GetCartInfoById",
	GetCartSummary:   "/CartInfo/GetCartSummary",
	PostCart:         "/CartInfo/PostCartInfo",
	UpdateCartStatus: "/CartInfo/UpdateStatusCartInfo",
	DeleteCart:       "/CartInfo/DeleteCartInfo",
}

// Endpoints maps each endpoint name to its absolute URL under baseURL.
func Endpoints(baseURL string) map[string]string {
	out := make(map[string]string, len(paths))
	for name, path := range paths {
		out[name] = baseURL + path
	}
	return out
}
