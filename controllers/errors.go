package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"milestone-api/logger"
	"milestone-api/services"
	"milestone-api/utils"
)

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalidArgument:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as the standard error body. Transient and unknown
// failures are logged with the request id and replaced by a generic message.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		reqLog := logger.FromContext(c.Request.Context(), log).WithComponent(log.Component())
		reqLog.Error("request failed",
			logger.FieldMethod, c.Request.Method,
			logger.FieldPath, c.FullPath(),
			logger.FieldUserID, c.GetString("user_id"),
			"kind", kind.String(),
			logger.FieldError, err,
		)
		utils.SendErrorMessage(c, status, "Internal server error", "Please try again later")
		return
	}

	message := err.Error()
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	utils.SendError(c, status, message)
}
