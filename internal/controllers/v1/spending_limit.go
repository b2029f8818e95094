package v1

import (
	"context"
	"net/http"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/httputil"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterSpendingLimitRoutes registers the routes for spending limits with
// the RouterGroup that is passed.
func (co Controller) RegisterSpendingLimitRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSpendingLimitList)
		r.GET("", co.GetSpendingLimits)
		r.POST("", co.CreateSpendingLimit)
		r.GET("/applicable", co.GetApplicableSpendingLimits)
		r.POST("/validate", co.ValidateExpense)
	}

	// Spending limit with ID
	{
		r.OPTIONS("/:id", OptionsSpendingLimitDetail)
		r.GET("/:id", co.GetSpendingLimit)
		r.PATCH("/:id", co.UpdateSpendingLimit)
		r.DELETE("/:id", co.DeleteSpendingLimit)
		r.POST("/:id/activate", co.ActivateSpendingLimit)
		r.POST("/:id/deactivate", co.DeactivateSpendingLimit)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Limits
// @Success		204
// @Param			workspaceId	path	string	true	"ID of the workspace"
// @Router			/v1/workspaces/{workspaceId}/spending-limits [options]
func OptionsSpendingLimitList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Limits
// @Success		204
// @Param			workspaceId	path	string	true	"ID of the workspace"
// @Param			id			path	string	true	"ID of the spending limit"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/{id} [options]
func OptionsSpendingLimitDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create spending limit
// @Description	Creates an active spending limit. Only one active limit may exist per scope, currency and period.
// @Tags			Spending Limits
// @Accept			json
// @Produce		json
// @Success		201			{object}	SpendingLimitResponse
// @Failure		400			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string				true	"ID of the workspace"
// @Param			limit		body		SpendingLimitCreate	true	"Spending limit"
// @Router			/v1/workspaces/{workspaceId}/spending-limits [post]
func (co Controller) CreateSpendingLimit(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	var data SpendingLimitCreate
	if !bindBody(c, &data) {
		return
	}

	in, err := data.input(workspaceID)
	if err != nil {
		abort(c, err)
		return
	}

	l, err := co.Limits.CreateSpendingLimit(c.Request.Context(), in)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusCreated, SpendingLimitResponse{Data: newSpendingLimit(l)})
}

// @Summary		List spending limits
// @Description	Returns the spending limits of the workspace
// @Tags			Spending Limits
// @Produce		json
// @Success		200			{object}	SpendingLimitListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			user		query		string	false	"Filter by user ID"
// @Param			category	query		string	false	"Filter by category ID"
// @Param			isActive	query		bool	false	"Filter by active state"
// @Param			periodType	query		string	false	"Filter by period type"
// @Param			currency	query		string	false	"Filter by currency"
// @Param			offset		query		uint	false	"The offset of the first limit returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of limits to return. Defaults to 50."
// @Router			/v1/workspaces/{workspaceId}/spending-limits [get]
func (co Controller) GetSpendingLimits(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	var query SpendingLimitQueryFilter
	if !bindQuery(c, &query) {
		return
	}

	filter, err := query.filter(workspaceID)
	if err != nil {
		abort(c, err)
		return
	}

	limits, err := co.Limits.FilterSpendingLimits(c.Request.Context(), filter)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, SpendingLimitListResponse{
		Data:       newSpendingLimits(limits),
		Pagination: query.pagination(len(limits)),
	})
}

// @Summary		List applicable spending limits
// @Description	Returns the active limits that apply to an expense of the user in the category
// @Tags			Spending Limits
// @Produce		json
// @Success		200			{object}	SpendingLimitListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			user		query		string	false	"ID of the user making the expense"
// @Param			category	query		string	false	"ID of the category of the expense"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/applicable [get]
func (co Controller) GetApplicableSpendingLimits(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	var query QueryScope
	if !bindQuery(c, &query) {
		return
	}

	limits, err := co.Limits.ApplicableLimits(c.Request.Context(), workspaceID, query.UserID.Ptr(), query.CategoryID.Ptr())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, SpendingLimitListResponse{Data: newSpendingLimits(limits)})
}

// @Summary		Validate expense
// @Description	Checks a candidate expense against the applicable limits in its currency
// @Tags			Spending Limits
// @Accept			json
// @Produce		json
// @Success		200			{object}	ExpenseValidationResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string			true	"ID of the workspace"
// @Param			expense		body		ExpenseValidate	true	"Expense"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/validate [post]
func (co Controller) ValidateExpense(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	var data ExpenseValidate
	if !bindBody(c, &data) {
		return
	}

	result, err := co.Limits.ValidateExpense(c.Request.Context(), service.ExpenseCheck{
		WorkspaceID: workspaceID,
		UserID:      data.UserID,
		CategoryID:  data.CategoryID,
		Amount:      data.Amount,
		Currency:    data.Currency,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newExpenseValidationResponse(data.Amount, result))
}

// @Summary		Get spending limit
// @Description	Returns a specific spending limit
// @Tags			Spending Limits
// @Produce		json
// @Success		200			{object}	SpendingLimitResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the spending limit"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/{id} [get]
func (co Controller) GetSpendingLimit(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	l, err := co.Limits.GetSpendingLimit(c.Request.Context(), workspaceID, id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, SpendingLimitResponse{Data: newSpendingLimit(l)})
}

// @Summary		Update spending limit
// @Description	Updates the amount of a spending limit
// @Tags			Spending Limits
// @Accept			json
// @Produce		json
// @Success		200			{object}	SpendingLimitResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string				true	"ID of the workspace"
// @Param			id			path		string				true	"ID of the spending limit"
// @Param			limit		body		SpendingLimitUpdate	true	"Spending limit"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/{id} [patch]
func (co Controller) UpdateSpendingLimit(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	var data SpendingLimitUpdate
	if !bindBody(c, &data) {
		return
	}

	l, err := co.Limits.UpdateSpendingLimit(c.Request.Context(), workspaceID, id, data.LimitAmount)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, SpendingLimitResponse{Data: newSpendingLimit(l)})
}

// @Summary		Delete spending limit
// @Description	Deletes a spending limit
// @Tags			Spending Limits
// @Success		204
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the spending limit"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/{id} [delete]
func (co Controller) DeleteSpendingLimit(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	if failed(c, co.Limits.DeleteSpendingLimit(c.Request.Context(), workspaceID, id)) {
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Activate spending limit
// @Description	Activates an inactive spending limit
// @Tags			Spending Limits
// @Produce		json
// @Success		200			{object}	SpendingLimitResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the spending limit"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/{id}/activate [post]
func (co Controller) ActivateSpendingLimit(c *gin.Context) {
	co.toggleLimit(c, co.Limits.ActivateLimit)
}

// @Summary		Deactivate spending limit
// @Description	Deactivates an active spending limit
// @Tags			Spending Limits
// @Produce		json
// @Success		200			{object}	SpendingLimitResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the spending limit"
// @Router			/v1/workspaces/{workspaceId}/spending-limits/{id}/deactivate [post]
func (co Controller) DeactivateSpendingLimit(c *gin.Context) {
	co.toggleLimit(c, co.Limits.DeactivateLimit)
}

func (co Controller) toggleLimit(c *gin.Context, apply func(ctx context.Context, workspaceID, limitID uuid.UUID) (*budget.SpendingLimit, error)) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	l, err := apply(c.Request.Context(), workspaceID, id)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, SpendingLimitResponse{Data: newSpendingLimit(l)})
}
