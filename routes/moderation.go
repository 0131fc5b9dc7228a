package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/brandlink/brandlink-be/app"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/middleware"
	"github.com/brandlink/brandlink-be/util"
	"github.com/gin-gonic/gin"
)

type moderationRoutes struct {
	db appDb.Database
}

// AddModerationRoutes binds the trending toggle. It mutates the flag and
// nothing else; engagement state is out of its reach by construction.
func AddModerationRoutes(group *gin.RouterGroup, db appDb.Database, authClient *auth.Client) {
	routes := moderationRoutes{db}
	moderation := group.Group("/moderation",
		middleware.Auth(db, authClient, &middleware.AuthConfig{}),
		middleware.RequireAdmin())
	moderation.POST("/posts/:id/trending", util.HandlerWrapper(routes.setTrending, &util.HandlerOpts{}))
}

type setTrendingReq struct {
	Trending *bool `json:"trending" binding:"required"`
}

func (mr *moderationRoutes) setTrending(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req setTrendingReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	post, err := app.SetTrending(c, mr.db, postId, *req.Trending)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return post, nil
}
