package util

import (
	"errors"
	"fmt"
	"net/http"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

type HandlerOpts struct{}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper adapts the route handlers to gin. A nil HTTPError renders a
// success envelope around the returned data.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"message": err.Message,
	})
}

// BuildDbHTTPErr maps store errors onto responses. Anything unmapped is a
// plain database error so internals never leak.
func BuildDbHTTPErr(err error) *HTTPError {
	switch {
	case errors.Is(err, appDb.ErrNotFound):
		return &HTTPError{Status: http.StatusNotFound, Message: "not found"}
	case errors.Is(err, appDb.ErrNoPoll):
		return &HTTPError{Status: http.StatusBadRequest, Message: "post does not have a poll"}
	case errors.Is(err, appDb.ErrInvalidOption):
		return &HTTPError{Status: http.StatusBadRequest, Message: "option is not part of the poll"}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "database error",
	}
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

func ParseId(raw string) (int64, *HTTPError) {
	id, err := parseInt64(raw)
	if err != nil {
		return 0, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "id malformed",
		}
	}
	return id, nil
}
