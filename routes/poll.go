package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/brandlink/brandlink-be/app"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/middleware"
	"github.com/brandlink/brandlink-be/util"
	"github.com/gin-gonic/gin"
)

type pollRoutes struct {
	db appDb.Database
}

func AddPollRoutes(group *gin.RouterGroup, db appDb.Database, authClient *auth.Client) {
	routes := pollRoutes{db}
	polls := group.Group("/posts/:id/poll")
	polls.GET("",
		middleware.Auth(db, authClient, &middleware.AuthConfig{SessionNotRequired: true, ProfileNotRequired: true}),
		util.HandlerWrapper(routes.getResults, &util.HandlerOpts{}))
	polls.POST("/votes",
		middleware.Auth(db, authClient, &middleware.AuthConfig{}),
		util.HandlerWrapper(routes.castVote, &util.HandlerOpts{}))
}

type castVoteReq struct {
	Option string `json:"option"`
}

func (plr *pollRoutes) castVote(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req castVoteReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	result, err := app.CastVote(c, plr.db, middleware.MustGetUser(c).Id, postId, req.Option)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return result, nil
}

func (plr *pollRoutes) getResults(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	results, err := app.GetPollResults(c, plr.db, postId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return results, nil
}
