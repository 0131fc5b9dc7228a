package routes

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/brandlink/brandlink-be/app"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/middleware"
	"github.com/brandlink/brandlink-be/util"
	"github.com/gin-gonic/gin"
)

const feedPageSize = 20

type feedRoutes struct {
	db appDb.Database
}

func AddFeedRoutes(group *gin.RouterGroup, db appDb.Database, authClient *auth.Client) {
	routes := feedRoutes{db: db}
	feeds := group.Group("/feeds",
		middleware.Auth(db, authClient, &middleware.AuthConfig{SessionNotRequired: true, ProfileNotRequired: true}))
	feeds.POST("", util.HandlerWrapper(routes.getFeed, &util.HandlerOpts{}))
}

func (fr *feedRoutes) getFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	var req app.TaggedUnionCursor
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	posts, cursor, err := req.Posts(c, fr.db, middleware.GetUserMaybe(c), &app.PostCursorOpts{Limit: feedPageSize})
	if err != nil {
		switch err {
		case app.ErrUnknownCategory, app.ErrMissingAuthor:
			return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
		}
		return nil, util.BuildDbHTTPErr(err)
	}

	return gin.H{
		"posts":  posts,
		"cursor": cursor,
	}, nil
}
