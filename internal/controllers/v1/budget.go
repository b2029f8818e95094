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

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
		r.GET("/active", co.GetActiveBudgets)
		r.POST("/archive-expired", co.ArchiveExpiredBudgets)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
		r.POST("/:id/activate", co.ActivateBudget)
		r.POST("/:id/archive", co.ArchiveBudget)
		r.GET("/:id/allocations", co.GetAllocations)
		r.POST("/:id/allocations", co.CreateAllocation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			workspaceId	path	string	true	"ID of the workspace"
// @Router			/v1/workspaces/{workspaceId}/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			workspaceId	path	string	true	"ID of the workspace"
// @Param			id			path	string	true	"ID of the budget"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create budget
// @Description	Creates a new budget in DRAFT status. Names are unique within a workspace.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201			{object}	BudgetResponse
// @Failure		400			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string			true	"ID of the workspace"
// @Param			X-User-ID	header		string			true	"ID of the calling user"
// @Param			budget		body		BudgetCreate	true	"Budget"
// @Router			/v1/workspaces/{workspaceId}/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	user, ok := caller(c)
	if !ok {
		return
	}

	var data BudgetCreate
	if !bindBody(c, &data) {
		return
	}

	in, err := data.input(workspaceID, user)
	if err != nil {
		abort(c, err)
		return
	}

	b, err := co.Budgets.CreateBudget(c.Request.Context(), in)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: newBudget(c, b)})
}

// @Summary		List budgets
// @Description	Returns the budgets of the workspace, newest first
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			status		query		string	false	"Filter by status"
// @Param			createdBy	query		string	false	"Filter by creator"
// @Param			currency	query		string	false	"Filter by currency"
// @Param			activeAt	query		string	false	"Only ACTIVE budgets whose period contains this day"
// @Param			offset		query		uint	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of budgets to return. Defaults to 50."
// @Router			/v1/workspaces/{workspaceId}/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	var query BudgetQueryFilter
	if !bindQuery(c, &query) {
		return
	}

	filter, err := query.filter(workspaceID)
	if err != nil {
		abort(c, err)
		return
	}

	budgets, err := co.Budgets.ListBudgets(c.Request.Context(), filter)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data:       newBudgets(c, budgets),
		Pagination: query.pagination(len(budgets)),
	})
}

// @Summary		List active budgets
// @Description	Returns the ACTIVE budgets of the workspace whose period contains the current time
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Router			/v1/workspaces/{workspaceId}/budgets/active [get]
func (co Controller) GetActiveBudgets(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	budgets, err := co.Budgets.ActiveBudgets(c.Request.Context(), workspaceID)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: newBudgets(c, budgets)})
}

type ArchiveExpiredResponse struct {
	Archived int `json:"archived" example:"2"` // Number of budgets archived
}

// @Summary		Archive expired budgets
// @Description	Archives all ACTIVE budgets of the workspace whose period has ended
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	ArchiveExpiredResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Router			/v1/workspaces/{workspaceId}/budgets/archive-expired [post]
func (co Controller) ArchiveExpiredBudgets(c *gin.Context) {
	workspaceID, _, ok := bindURI(c)
	if !ok {
		return
	}

	archived, err := co.Budgets.ProcessExpiredBudgets(c.Request.Context(), workspaceID)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, ArchiveExpiredResponse{Archived: archived})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the budget"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	b, err := co.Budgets.GetBudget(c.Request.Context(), workspaceID, id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, b)})
}

// @Summary		Update budget
// @Description	Updates name, description or total of a budget. Only the creator can update it.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200			{object}	BudgetResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string			true	"ID of the workspace"
// @Param			id			path		string			true	"ID of the budget"
// @Param			X-User-ID	header		string			true	"ID of the calling user"
// @Param			budget		body		BudgetUpdate	true	"Budget"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	user, ok := caller(c)
	if !ok {
		return
	}

	var data BudgetUpdate
	if !bindBody(c, &data) {
		return
	}

	b, err := co.Budgets.UpdateBudget(c.Request.Context(), workspaceID, id, user, service.UpdateBudgetInput{
		Name:        data.Name,
		Description: data.Description,
		TotalAmount: data.TotalAmount,
	})
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, b)})
}

// @Summary		Delete budget
// @Description	Deletes a budget with its allocations and alerts. Only the creator can delete it.
// @Tags			Budgets
// @Success		204
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the budget"
// @Param			X-User-ID	header		string	true	"ID of the calling user"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	user, ok := caller(c)
	if !ok {
		return
	}

	if failed(c, co.Budgets.DeleteBudget(c.Request.Context(), workspaceID, id, user)) {
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Activate budget
// @Description	Moves a DRAFT budget to ACTIVE
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the budget"
// @Param			X-User-ID	header		string	true	"ID of the calling user"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id}/activate [post]
func (co Controller) ActivateBudget(c *gin.Context) {
	co.transition(c, co.Budgets.ActivateBudget)
}

// @Summary		Archive budget
// @Description	Moves an ACTIVE or EXCEEDED budget to ARCHIVED
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the budget"
// @Param			X-User-ID	header		string	true	"ID of the calling user"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id}/archive [post]
func (co Controller) ArchiveBudget(c *gin.Context) {
	co.transition(c, co.Budgets.ArchiveBudget)
}

type budgetTransition func(ctx context.Context, workspaceID, budgetID, caller uuid.UUID) (*budget.Budget, error)

func (co Controller) transition(c *gin.Context, apply budgetTransition) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	user, ok := caller(c)
	if !ok {
		return
	}

	b, err := apply(c.Request.Context(), workspaceID, id, user)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, b)})
}

func newBudgets(c *gin.Context, budgets []*budget.Budget) []Budget {
	data := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		data = append(data, newBudget(c, b))
	}
	return data
}
