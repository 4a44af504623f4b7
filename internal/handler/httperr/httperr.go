package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error body of every non-2xx answer.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func newResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError keeps err on the gin context so the logging middleware reports it.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := newResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithMessage is for rejections that carry no underlying error, such as a missing token.
func AbortWithMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, newResponse(status, msg, nil))
}
