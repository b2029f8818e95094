package v1

import (
	"context"
	"net/http"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/httputil"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterAlertRoutes registers the routes for alerts with
// the RouterGroup that is passed.
func (co Controller) RegisterAlertRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAlertList)
	r.GET("", co.GetAlerts)
	r.GET("/unread", co.GetUnreadAlerts)
	r.POST("/:id/read", co.MarkAlertRead)
	r.POST("/:id/notified", co.MarkAlertNotified)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Alerts
// @Success		204
// @Param			workspaceId	path	string	true	"ID of the workspace"
// @Router			/v1/workspaces/{workspaceId}/alerts [options]
func OptionsAlertList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List alerts
// @Description	Returns the alerts of the workspace, newest first
// @Tags			Alerts
// @Produce		json
// @Success		200			{object}	AlertListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			budget		query		string	false	"Filter by budget ID"
// @Param			allocation	query		string	false	"Filter by allocation ID"
// @Param			level		query		string	false	"Filter by level"
// @Param			isRead		query		bool	false	"Filter by read state"
// @Param			offset		query		uint	false	"The offset of the first alert returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of alerts to return. Defaults to 50."
// @Router			/v1/workspaces/{workspaceId}/alerts [get]
func (co Controller) GetAlerts(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	var query AlertQueryFilter
	if !bindQuery(c, &query) {
		return
	}

	filter, err := query.filter(workspaceID)
	if err != nil {
		abort(c, err)
		return
	}

	alerts, err := co.Budgets.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, AlertListResponse{
		Data:       newAlerts(alerts),
		Pagination: query.pagination(len(alerts)),
	})
}

// @Summary		List unread alerts
// @Description	Returns all unread alerts of the workspace
// @Tags			Alerts
// @Produce		json
// @Success		200			{object}	AlertListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Router			/v1/workspaces/{workspaceId}/alerts/unread [get]
func (co Controller) GetUnreadAlerts(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	alerts, err := co.Budgets.UnreadAlerts(c.Request.Context(), workspaceID)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, AlertListResponse{Data: newAlerts(alerts)})
}

// @Summary		Mark alert as read
// @Description	Marks an alert as read. Marking a read alert again has no effect.
// @Tags			Alerts
// @Produce		json
// @Success		200			{object}	AlertResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the alert"
// @Router			/v1/workspaces/{workspaceId}/alerts/{id}/read [post]
func (co Controller) MarkAlertRead(c *gin.Context) {
	co.updateAlert(c, co.Budgets.MarkAlertRead)
}

// @Summary		Mark alert as notified
// @Description	Records that the user has been notified about an alert
// @Tags			Alerts
// @Produce		json
// @Success		200			{object}	AlertResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the alert"
// @Router			/v1/workspaces/{workspaceId}/alerts/{id}/notified [post]
func (co Controller) MarkAlertNotified(c *gin.Context) {
	co.updateAlert(c, co.Budgets.MarkAlertNotified)
}

func (co Controller) updateAlert(c *gin.Context, apply func(ctx context.Context, workspaceID, alertID uuid.UUID) (*budget.Alert, error)) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	a, err := apply(c.Request.Context(), workspaceID, id)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, AlertResponse{Data: newAlert(a)})
}

func newAlerts(alerts []*budget.Alert) []Alert {
	data := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		data = append(data, newAlert(a))
	}
	return data
}
