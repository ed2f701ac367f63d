package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/internal/pkg/core"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
	"github.com/kiosk404/roster/pkg/errorx"
)

// Rosterd handler error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix (rosterd handler)
//   - XX: resource group (00=common, 01=agent, 02=watch)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (100xxx).
	ErrBind       = 100001
	ErrValidation = 100002
	ErrInvalidID  = 100003

	// Agent errors (1001xx).
	ErrAgentNotFound    = 100101
	ErrAgentCreate      = 100102
	ErrAgentList        = 100103
	ErrAgentUpdate      = 100104
	ErrAgentDelete      = 100105
	ErrAgentReplace     = 100106
	ErrAgentDuplicateID = 100107

	// Watch errors (1002xx).
	ErrWatchUnsupported = 100201
)

func init() {
	// Common.
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Request validation failed"))
	errorx.MustRegister(newCoder(ErrInvalidID, http.StatusBadRequest, "Agent id must be an integer"))

	// Agent.
	errorx.MustRegister(newCoder(ErrAgentNotFound, http.StatusNotFound, "Agent not found"))
	errorx.MustRegister(newCoder(ErrAgentCreate, http.StatusInternalServerError, "Failed to create agent"))
	errorx.MustRegister(newCoder(ErrAgentList, http.StatusInternalServerError, "Failed to list agents"))
	errorx.MustRegister(newCoder(ErrAgentUpdate, http.StatusInternalServerError, "Failed to update agent"))
	errorx.MustRegister(newCoder(ErrAgentDelete, http.StatusInternalServerError, "Failed to delete agent"))
	errorx.MustRegister(newCoder(ErrAgentReplace, http.StatusInternalServerError, "Failed to replace agents"))
	errorx.MustRegister(newCoder(ErrAgentDuplicateID, http.StatusConflict, "Duplicate agent id"))

	// Watch.
	errorx.MustRegister(newCoder(ErrWatchUnsupported, http.StatusInternalServerError, "Streaming not supported"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }

// writeServiceError maps a service error onto its code, falling back to
// fallback for anything unexpected. Field errors are sent as details.
func writeServiceError(c *gin.Context, err error, fallback int, format string, args ...interface{}) {
	code := fallback
	switch {
	case errors.Is(err, errno.ErrInvalidAgent):
		code = ErrValidation
	case errors.Is(err, errno.ErrAgentNotFound):
		code = ErrAgentNotFound
	case errors.Is(err, errno.ErrDuplicateID):
		code = ErrAgentDuplicateID
	}

	var details interface{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		details = verrs
	}
	core.WriteResponse(c, errorx.WrapC(err, code, format, args...), details)
}
