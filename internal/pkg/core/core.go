// Package core holds the response helpers shared by every HTTP handler.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/pkg/errorx"
	"github.com/kiosk404/roster/pkg/logger"
)

// ErrResponse defines the return messages when an error occurred.
// Reference will be omitted if it does not exist.
type ErrResponse struct {
	// Code defines the business error code.
	Code int `json:"code"`

	// Message contains the detail of this message.
	// This message is suitable to be exposed to external
	Message string `json:"message"`

	// Details carries structured context, e.g. per-field validation errors.
	Details interface{} `json:"details,omitempty"`

	// Reference returns the reference document which maybe useful to solve this error.
	Reference string `json:"reference,omitempty"`
}

// WriteResponse writes an error or the response data into the http response body.
// It uses errorx.ParseCoder to turn any error into an HTTP status and
// business code. On error, data, when not nil, is sent as Details.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		coder := errorx.ParseCoder(err)
		if coder.HTTPStatus() >= http.StatusInternalServerError {
			logger.Error("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		} else {
			logger.Debug("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Details:   data,
			Reference: coder.Reference(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
