package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"encode-service/pkg/errno"
)

// Response is the uniform HTTP envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Failed maps err to its errno code; unknown errors become 500.
func Failed(c *gin.Context, err error) {
	var biz *errno.BizError
	if errors.As(err, &biz) {
		c.JSON(httpStatus(biz.Code), Response{Code: biz.Code, Message: biz.Error()})
		return
	}

	var code *errno.Errno
	if errors.As(err, &code) {
		c.JSON(httpStatus(code.Code), Response{Code: code.Code, Message: code.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Code:    errno.ErrInternalServer.Code,
		Message: err.Error(),
	})
}

// httpStatus folds business codes into 400 and passes HTTP-shaped codes
// through. Absent-resource codes keep their 404 semantics.
func httpStatus(code int) int {
	switch {
	case code == errno.ErrEncodeJobNotFound.Code:
		return http.StatusNotFound
	case code >= 20000:
		return http.StatusBadRequest
	case code >= 400 && code < 600:
		return code
	default:
		return http.StatusOK
	}
}
