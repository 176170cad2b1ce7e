package api

import "SellerLens/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	KeywordHandler    *handler.KeywordHandler
	CategoryHandler   *handler.CategoryHandler
	UploadHandler     *handler.UploadHandler
	SubscriberHandler *handler.SubscriberHandler
	ActivityHandler   *handler.ActivityHandler
	OptimizerHandler  *handler.OptimizerHandler
	UserHandler       *handler.UserHandler
}
