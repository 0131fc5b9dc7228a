package routes

import (
	"github.com/brandlink/brandlink-be/util"
	"github.com/gin-gonic/gin"
)

func AddHealthCheckRoutes(group *gin.RouterGroup) {
	health := group.Group("/health")
	health.GET("", util.HandlerWrapper(AliveCheck, &util.HandlerOpts{}))
}

func AliveCheck(c *gin.Context) (interface{}, *util.HTTPError) {
	return nil, nil
}
