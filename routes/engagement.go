package routes

import (
	"errors"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/brandlink/brandlink-be/app"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/middleware"
	"github.com/brandlink/brandlink-be/util"
	"github.com/gin-gonic/gin"
)

type engagementRoutes struct {
	db appDb.Database
}

// AddEngagementRoutes binds likes, comments, and replies. Every route
// requires a signed-in profile: the Unauthenticated rejection happens in the
// auth middleware before any store mutation is attempted.
func AddEngagementRoutes(group *gin.RouterGroup, db appDb.Database, authClient *auth.Client) {
	routes := engagementRoutes{db}
	posts := group.Group("/posts", middleware.Auth(db, authClient, &middleware.AuthConfig{}))
	posts.POST("/:id/likes", util.HandlerWrapper(routes.toggleLike, &util.HandlerOpts{}))
	posts.POST("/:id/comments", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
	posts.POST("/:id/comments/:commentId/replies", util.HandlerWrapper(routes.addReply, &util.HandlerOpts{}))
}

func (er *engagementRoutes) toggleLike(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	status, err := app.ToggleLike(c, er.db, middleware.MustGetUser(c).Id, postId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return status, nil
}

type addCommentReq struct {
	Text string `json:"text"`
}

func (er *engagementRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req addCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	comment, err := app.AddComment(c, er.db, middleware.MustGetUser(c).Id, postId, req.Text)
	if err != nil {
		return nil, buildEngagementHTTPErr(err)
	}
	return comment, nil
}

func (er *engagementRoutes) addReply(c *gin.Context) (interface{}, *util.HTTPError) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	commentId, httpErr := util.ParseId(c.Param("commentId"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req addCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	reply, err := app.AddReply(c, er.db, middleware.MustGetUser(c).Id, postId, commentId, req.Text)
	if err != nil {
		return nil, buildEngagementHTTPErr(err)
	}
	return reply, nil
}

func buildEngagementHTTPErr(err error) *util.HTTPError {
	if errors.Is(err, app.ErrEmptyText) {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "text must not be empty"}
	}
	return util.BuildDbHTTPErr(err)
}
