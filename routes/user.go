package routes

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/brandlink/brandlink-be/controllers"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/middleware"
	"github.com/brandlink/brandlink-be/model"
	"github.com/brandlink/brandlink-be/util"
	"github.com/gin-gonic/gin"
)

const suggestedProfileCount = 5

type userRoutes struct {
	db          appDb.Database
	suggestions *controllers.SuggestionController
}

func AddUserRoutes(group *gin.RouterGroup, db appDb.Database, suggestions *controllers.SuggestionController, authClient *auth.Client) {
	routes := userRoutes{db, suggestions}
	users := group.Group("/users")
	users.PUT("",
		middleware.Auth(db, authClient, &middleware.AuthConfig{ProfileNotRequired: true}),
		util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
	users.GET("/suggested",
		middleware.Auth(db, authClient, &middleware.AuthConfig{SessionNotRequired: true, ProfileNotRequired: true}),
		util.HandlerWrapper(routes.getSuggestedProfiles, &util.HandlerOpts{}))
}

type createUserReq struct {
	DisplayName string `json:"displayName"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	displayName := strings.TrimSpace(util.XSSSanitize(req.DisplayName))
	if displayName == "" {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "display name must not be empty"}
	}

	uid := middleware.MustGetToken(c).UID
	if httpErr := ur.suggestions.CreateProfile(c, &model.User{
		Id:          uid,
		DisplayName: displayName,
		Avatar:      util.Avatar(uid),
	}); httpErr != nil {
		return nil, httpErr
	}
	return nil, nil
}

func (ur *userRoutes) getSuggestedProfiles(c *gin.Context) (interface{}, *util.HTTPError) {
	return ur.suggestions.SuggestProfiles(middleware.GetUserIdMaybe(c), suggestedProfileCount), nil
}
