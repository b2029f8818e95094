// Package v1 implements the handlers of the v1 API.
//
// All resources live in a workspace, /v1/workspaces/{workspaceId}/...
// Operations that need to know the calling user read its ID from the
// X-User-ID header, which the authentication layer in front of the API sets.
package v1

import (
	"net/http"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/httperror"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/httputil"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	Budgets *service.BudgetService
	Limits  *service.SpendingLimitService
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	workspace := r.Group("/workspaces/:workspaceId")

	co.RegisterBudgetRoutes(workspace.Group("/budgets"))
	co.RegisterAllocationRoutes(workspace.Group("/allocations"))
	co.RegisterAlertRoutes(workspace.Group("/alerts"))
	co.RegisterSpendingLimitRoutes(workspace.Group("/spending-limits"))
}

// baseURL is the URL the API is served at, set by the URL middleware.
func baseURL(c *gin.Context) string {
	return c.GetString(httputil.ContextURL)
}

// abort writes the error response for err.
func abort(c *gin.Context, err error) {
	status, body := httperror.Response(err)
	if status == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	c.AbortWithStatusJSON(status, body)
}

// failed reports if err has to be returned to the client and writes the
// error response if so.
//
// A save whose state change has been committed, but whose events could not
// all be published, is a success for the client. The failure is logged.
func failed(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	publishErrs, ok := publishErrors(err)
	if !ok {
		abort(c, err)
		return true
	}

	for _, e := range publishErrs {
		log.Warn().
			Str("request-id", requestid.Get(c)).
			Str("event", e.Event.Name()).
			Int("unpublished", len(e.Unpublished)).
			Err(e.Err).
			Msg("state committed, events not published")
	}

	return false
}

// publishErrors returns the publish errors in err. ok is false if err
// contains any other error.
func publishErrors(err error) (errs []*events.PublishError, ok bool) {
	if publishErr, isPublish := err.(*events.PublishError); isPublish {
		return []*events.PublishError{publishErr}, true
	}

	joined, isJoined := err.(interface{ Unwrap() []error })
	if !isJoined {
		return nil, false
	}

	for _, e := range joined.Unwrap() {
		inner, ok := publishErrors(e)
		if !ok {
			return nil, false
		}
		errs = append(errs, inner...)
	}

	return errs, true
}

// bindURI binds the workspace and, if the route has one, the resource ID.
func bindURI(c *gin.Context) (workspaceID, id uuid.UUID, ok bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		abort(c, httputil.ErrInvalidUUID)
		return uuid.Nil, uuid.Nil, false
	}

	if !uri.WorkspaceID.IsSet() {
		abort(c, httputil.ErrInvalidUUID)
		return uuid.Nil, uuid.Nil, false
	}

	return uri.WorkspaceID.UUID, uri.ID.UUID, true
}

// caller binds the ID of the calling user.
func caller(c *gin.Context) (uuid.UUID, bool) {
	id, err := httputil.UserID(c)
	if err != nil {
		abort(c, err)
		return uuid.Nil, false
	}

	return id, true
}

// bindQuery binds the query string into target.
func bindQuery(c *gin.Context, target any) bool {
	if err := httputil.BindQuery(c, target); err != nil {
		abort(c, err)
		return false
	}
	return true
}

// bindBody binds the JSON body into target.
func bindBody(c *gin.Context, target any) bool {
	if err := httputil.BindData(c, target); err != nil {
		abort(c, err)
		return false
	}
	return true
}
