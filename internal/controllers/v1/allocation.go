package v1

import (
	"net/http"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/httputil"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/gin-gonic/gin"
)

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed. Allocations are listed and created
// through their budget.
func (co Controller) RegisterAllocationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", OptionsAllocationDetail)
	r.GET("/:id", co.GetAllocation)
	r.PATCH("/:id", co.UpdateAllocation)
	r.DELETE("/:id", co.DeleteAllocation)
	r.OPTIONS("/:id/spent", OptionsAllocationSpent)
	r.POST("/:id/spent", co.RecordAllocationSpend)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Param			workspaceId	path	string	true	"ID of the workspace"
// @Param			id			path	string	true	"ID of the allocation"
// @Router			/v1/workspaces/{workspaceId}/allocations/{id} [options]
func OptionsAllocationDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Param			workspaceId	path	string	true	"ID of the workspace"
// @Param			id			path	string	true	"ID of the allocation"
// @Router			/v1/workspaces/{workspaceId}/allocations/{id}/spent [options]
func OptionsAllocationSpent(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		List allocations
// @Description	Returns the allocations of a budget, oldest first
// @Tags			Allocations
// @Produce		json
// @Success		200			{object}	AllocationListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the budget"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id}/allocations [get]
func (co Controller) GetAllocations(c *gin.Context) {
	workspaceID, budgetID, ok := bindURI(c)
	if !ok {
		return
	}

	allocations, err := co.Budgets.ListAllocations(c.Request.Context(), workspaceID, budgetID)
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Allocation, 0, len(allocations))
	for _, a := range allocations {
		data = append(data, newAllocation(a))
	}

	c.JSON(http.StatusOK, AllocationListResponse{Data: data})
}

// @Summary		Create allocation
// @Description	Allocates part of a budget. The allocations of a budget must not exceed its total.
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		201			{object}	AllocationResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string				true	"ID of the workspace"
// @Param			id			path		string				true	"ID of the budget"
// @Param			X-User-ID	header		string				true	"ID of the calling user"
// @Param			allocation	body		AllocationCreate	true	"Allocation"
// @Router			/v1/workspaces/{workspaceId}/budgets/{id}/allocations [post]
func (co Controller) CreateAllocation(c *gin.Context) {
	workspaceID, budgetID, ok := bindURI(c)
	if !ok {
		return
	}

	user, ok := caller(c)
	if !ok {
		return
	}

	var data AllocationCreate
	if !bindBody(c, &data) {
		return
	}

	a, err := co.Budgets.AddAllocation(c.Request.Context(), service.AddAllocationInput{
		WorkspaceID: workspaceID,
		BudgetID:    budgetID,
		Caller:      user,
		CategoryID:  data.CategoryID,
		Amount:      data.Amount,
		Description: data.Description,
	})
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusCreated, AllocationResponse{Data: newAllocation(a)})
}

// @Summary		Get allocation
// @Description	Returns a specific allocation
// @Tags			Allocations
// @Produce		json
// @Success		200			{object}	AllocationResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the allocation"
// @Router			/v1/workspaces/{workspaceId}/allocations/{id} [get]
func (co Controller) GetAllocation(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	a, err := co.Budgets.GetAllocation(c.Request.Context(), workspaceID, id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, AllocationResponse{Data: newAllocation(a)})
}

// @Summary		Update allocation
// @Description	Updates the allocated amount or description of an allocation
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		200			{object}	AllocationResponse
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string				true	"ID of the workspace"
// @Param			id			path		string				true	"ID of the allocation"
// @Param			X-User-ID	header		string				true	"ID of the calling user"
// @Param			allocation	body		AllocationUpdate	true	"Allocation"
// @Router			/v1/workspaces/{workspaceId}/allocations/{id} [patch]
func (co Controller) UpdateAllocation(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	user, ok := caller(c)
	if !ok {
		return
	}

	var data AllocationUpdate
	if !bindBody(c, &data) {
		return
	}

	a, err := co.Budgets.UpdateAllocation(c.Request.Context(), workspaceID, id, user, service.UpdateAllocationInput{
		Amount:      data.Amount,
		Description: data.Description,
	})
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, AllocationResponse{Data: newAllocation(a)})
}

// @Summary		Delete allocation
// @Description	Deletes an allocation and its alerts
// @Tags			Allocations
// @Success		204
// @Failure		400			{object}	httperror.Error
// @Failure		403			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string	true	"ID of the workspace"
// @Param			id			path		string	true	"ID of the allocation"
// @Param			X-User-ID	header		string	true	"ID of the calling user"
// @Router			/v1/workspaces/{workspaceId}/allocations/{id} [delete]
func (co Controller) DeleteAllocation(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	user, ok := caller(c)
	if !ok {
		return
	}

	if failed(c, co.Budgets.DeleteAllocation(c.Request.Context(), workspaceID, id, user)) {
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Record spend
// @Description	Sets the absolute amount spent on an allocation and raises alerts when a threshold is reached
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		200			{object}	SpendResponse
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		409			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			workspaceId	path		string			true	"ID of the workspace"
// @Param			id			path		string			true	"ID of the allocation"
// @Param			spend		body		AllocationSpend	true	"Spent amount"
// @Router			/v1/workspaces/{workspaceId}/allocations/{id}/spent [post]
func (co Controller) RecordAllocationSpend(c *gin.Context) {
	workspaceID, id, ok := bindURI(c)
	if !ok {
		return
	}

	var data AllocationSpend
	if !bindBody(c, &data) {
		return
	}

	result, err := co.Budgets.RecordAllocationSpend(c.Request.Context(), workspaceID, id, data.SpentAmount)
	if failed(c, err) {
		return
	}

	c.JSON(http.StatusOK, newSpendResponse(c, result))
}
