package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/error/code"
)

// Response is the envelope of every API answer
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Skipped is returned in place of a record when a create was not written because
// required fields were missing.
type Skipped struct {
	Written bool     `json:"written"`
	Missing []string `json:"missing"`
}

// Success answers 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// NotWritten answers success while reporting that nothing was stored
func NotWritten(c *gin.Context, missing []string) {
	Success(c, Skipped{Written: false, Missing: missing})
}

// Fail answers with the status and message of errorCode
func Fail(c *gin.Context, errorCode int, data interface{}) {
	httpStatus := code.GetStatus(errorCode)
	message := code.GetMessage(errorCode)

	c.JSON(httpStatus, Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// FailWithMessage answers with the status of errorCode and a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	httpStatus := code.GetStatus(errorCode)

	c.JSON(httpStatus, Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// ParamError answers 400 with a message
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError answers 500
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// NotFound answers 404
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrRecordNotFound)
	}
	FailWithMessage(c, code.ErrRecordNotFound, message, nil)
}

// Unauthorized answers 401 and stops the handler chain
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrTokenInvalid, nil)
	c.Abort()
}
