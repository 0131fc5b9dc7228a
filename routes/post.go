package routes

import (
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/brandlink/brandlink-be/app"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/middleware"
	"github.com/brandlink/brandlink-be/model"
	"github.com/brandlink/brandlink-be/services"
	"github.com/brandlink/brandlink-be/util"
	"github.com/gin-gonic/gin"
)

type postRoutes struct {
	db          appDb.Database
	mediaBucket *services.StorageBucket
}

func AddPostRoutes(group *gin.RouterGroup, db appDb.Database, authClient *auth.Client, mediaBucket *services.StorageBucket) {
	routes := postRoutes{db, mediaBucket}
	posts := group.Group("/posts")
	posts.GET("/:id",
		middleware.Auth(db, authClient, &middleware.AuthConfig{SessionNotRequired: true, ProfileNotRequired: true}),
		util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.PUT("",
		middleware.Auth(db, authClient, &middleware.AuthConfig{}),
		util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
}

type createPollReq struct {
	Question string    `json:"question"`
	Options  []string  `json:"options"`
	EndDate  time.Time `json:"endDate"`
}

type createPostReq struct {
	Category model.Category    `json:"category"`
	Kind     model.Kind        `json:"kind"`
	Text     string            `json:"text"`
	Media    *model.Media      `json:"media"`
	Event    *model.Event      `json:"event"`
	Occasion *model.Occasion   `json:"occasion"`
	Job      *model.JobOpening `json:"jobOpening"`
	Document *model.Document   `json:"document"`
	Poll     *createPollReq    `json:"poll"`
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createPostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := validateCreatePost(&req); httpErr != nil {
		return nil, httpErr
	}
	if httpErr := pr.validateBlobNames(c, &req); httpErr != nil {
		return nil, httpErr
	}

	createPost := &appDb.CreatePost{
		CreatorId: middleware.MustGetUser(c).Id,
		Category:  req.Category,
		Kind:      req.Kind,
		Text:      strings.TrimSpace(util.XSSSanitize(req.Text)),
		Media:     req.Media,
		Event:     req.Event,
		Occasion:  req.Occasion,
		Job:       req.Job,
		Document:  req.Document,
	}
	if req.Poll != nil {
		createPost.Poll = &appDb.CreatePoll{
			Question: strings.TrimSpace(req.Poll.Question),
			Options:  req.Poll.Options,
			EndDate:  req.Poll.EndDate,
		}
	}

	post, err := app.CreatePost(c, pr.db, createPost)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return post, nil
}

func validateCreatePost(req *createPostReq) *util.HTTPError {
	if !req.Category.IsValid() {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "unknown category"}
	}
	switch req.Kind {
	case model.KindText:
		if strings.TrimSpace(req.Text) == "" {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "text must not be empty"}
		}
	case model.KindMedia:
		if req.Media == nil || len(req.Media.Photos)+len(req.Media.Videos) == 0 {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "media posts need at least one photo or video"}
		}
	case model.KindEvent:
		if req.Event == nil || strings.TrimSpace(req.Event.Title) == "" {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "event posts need a titled event"}
		}
	case model.KindOccasion:
		if req.Occasion == nil || strings.TrimSpace(req.Occasion.Title) == "" {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "occasion posts need a titled occasion"}
		}
	case model.KindJob:
		if req.Job == nil || strings.TrimSpace(req.Job.Title) == "" {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "job posts need a titled opening"}
		}
	case model.KindDocument:
		if req.Document == nil || req.Document.BlobName == "" {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "document posts need an uploaded document"}
		}
	case model.KindPoll:
		return validateCreatePoll(req.Poll)
	default:
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "unknown post kind"}
	}
	return nil
}

func validateCreatePoll(poll *createPollReq) *util.HTTPError {
	if poll == nil {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "poll posts need a poll"}
	}
	if strings.TrimSpace(poll.Question) == "" {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "poll question must not be empty"}
	}
	if len(poll.Options) < model.MinPollOptions || len(poll.Options) > model.MaxPollOptions {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "polls need between 2 and 4 options"}
	}
	seen := make(map[string]bool, len(poll.Options))
	for _, option := range poll.Options {
		if strings.TrimSpace(option) == "" {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "poll options must not be empty"}
		}
		if seen[option] {
			return &util.HTTPError{Status: http.StatusBadRequest, Message: "poll options must be distinct"}
		}
		seen[option] = true
	}
	if poll.EndDate.IsZero() {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "polls need an end date"}
	}
	return nil
}

func (pr *postRoutes) validateBlobNames(c *gin.Context, req *createPostReq) *util.HTTPError {
	if pr.mediaBucket == nil {
		return nil
	}
	var blobNames []string
	if req.Media != nil {
		blobNames = append(blobNames, req.Media.Photos...)
		blobNames = append(blobNames, req.Media.Videos...)
	}
	if req.Document != nil {
		blobNames = append(blobNames, req.Document.BlobName)
	}
	if len(blobNames) == 0 {
		return nil
	}
	allExist, err := pr.mediaBucket.AllExist(c, blobNames)
	if err != nil {
		return &util.HTTPError{Status: http.StatusInternalServerError, Message: "media storage error"}
	}
	if !allExist {
		return &util.HTTPError{Status: http.StatusBadRequest, Message: "at least one attachment has not been uploaded"}
	}
	return nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id, &appDb.PostQueryOpts{
		LikeHistoryOf: middleware.GetUserIdMaybe(c),
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return post, nil
}
