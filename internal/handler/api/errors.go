package api

import (
	"net/http"

	"sitehub/internal/handler/httperr"
	"sitehub/internal/handler/middleware"
	"sitehub/internal/infra"
	"sitehub/internal/pkg/errs"
	"sitehub/internal/usecase/commands"
	"sitehub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingIdentity = errs.New("request has no authenticated user")

// statusOf maps use case and repository errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrValidation), infra.IsKind(err, infra.KindValidation):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrNotFound), infra.IsKind(err, infra.KindNotFound):
		return http.StatusNotFound
	case errs.Is(err, commands.ErrNotificationNotOwned),
		errs.Is(err, commands.ErrTeamAccess),
		errs.Is(err, queries.ErrNotificationAccess),
		errs.Is(err, queries.ErrStatisticsForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func abortWithUsecaseError(c *gin.Context, err error, msg string) {
	status := statusOf(err)
	switch status {
	case http.StatusNotFound:
		msg = "Not found"
	case http.StatusForbidden:
		msg = "Forbidden"
	case http.StatusInternalServerError:
		msg = "Internal server error"
	}
	var detail any
	if status == http.StatusBadRequest {
		detail = err.Error()
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return "", false
	}
	return userID, true
}
