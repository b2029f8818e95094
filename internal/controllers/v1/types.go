package v1

import (
	"fmt"
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/httperror"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/types"
	param "github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/uuid"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type URIWorkspace struct {
	WorkspaceID param.Param `uri:"workspaceId" format:"UUID"` // ID of the workspace
}

type URIID struct {
	URIWorkspace
	ID param.Param `uri:"id" format:"UUID"` // ID of the resource
}

// Pagination is set for list responses.
type Pagination struct {
	Count  int `json:"count" example:"25"`  // The amount of records returned in this response
	Offset int `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
}

// QueryPage selects a page of a list.
type QueryPage struct {
	Offset int `form:"offset" binding:"min=0"`         // The offset of the first resource returned. Defaults to 0
	Limit  int `form:"limit" binding:"min=0,max=1000"` // Maximum number of resources to return. Defaults to 50
}

func (q QueryPage) page() service.Page {
	limit := q.Limit
	if limit == 0 {
		limit = 50
	}

	return service.Page{Offset: q.Offset, Limit: limit}
}

func (q QueryPage) pagination(count int) *Pagination {
	p := q.page()
	return &Pagination{Count: count, Offset: p.Offset, Limit: p.Limit}
}

// money formats an amount for responses.
func money(d decimal.Decimal) string {
	return d.StringFixed(budget.AmountScale)
}

/*
 * Budgets
 */

// BudgetCreate is the body for creating a budget.
type BudgetCreate struct {
	Name           string          `json:"name" binding:"required,max=255" example:"Groceries 2026"`
	Description    string          `json:"description" binding:"max=5000" example:"Food and household"`
	TotalAmount    decimal.Decimal `json:"totalAmount" swaggertype:"string" example:"1000.00"`
	Currency       string          `json:"currency" binding:"required,iso4217" example:"USD"`
	PeriodType     string          `json:"periodType" binding:"required,period_type" example:"MONTHLY"`
	StartDate      types.Date      `json:"startDate" swaggertype:"string" example:"2026-01-01"`
	EndDate        *types.Date     `json:"endDate" swaggertype:"string" example:"2026-01-31"` // Required for CUSTOM periods
	IsRecurring    bool            `json:"isRecurring" example:"false"`
	RolloverUnused bool            `json:"rolloverUnused" example:"false"`
}

func (b BudgetCreate) input(workspaceID, caller uuid.UUID) (service.CreateBudgetInput, error) {
	periodType, err := budget.ParsePeriodType(b.PeriodType)
	if err != nil {
		return service.CreateBudgetInput{}, err
	}

	var end *time.Time
	if b.EndDate != nil {
		end = b.EndDate.Ptr()
	}

	return service.CreateBudgetInput{
		WorkspaceID:    workspaceID,
		CreatedBy:      caller,
		Name:           b.Name,
		Description:    b.Description,
		TotalAmount:    b.TotalAmount,
		Currency:       b.Currency,
		PeriodType:     periodType,
		StartDate:      b.StartDate.Time(),
		EndDate:        end,
		IsRecurring:    b.IsRecurring,
		RolloverUnused: b.RolloverUnused,
	}, nil
}

// BudgetUpdate is the body for updating a budget. Omitted fields are not changed.
type BudgetUpdate struct {
	Name        *string          `json:"name" binding:"omitempty,max=255" example:"Groceries"`
	Description *string          `json:"description" binding:"omitempty,max=5000" example:""` // An empty string removes the description
	TotalAmount *decimal.Decimal `json:"totalAmount" swaggertype:"string" example:"1200.00"`
}

type BudgetLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/workspaces/0b8c6c8e-21fb-4ec3-8f1c-4c0f3a4d7a10/budgets/55eecbd8-7c46-4b06-ada9-f287802fb05e"`
	Allocations string `json:"allocations" example:"https://example.com/api/v1/workspaces/0b8c6c8e-21fb-4ec3-8f1c-4c0f3a4d7a10/budgets/55eecbd8-7c46-4b06-ada9-f287802fb05e/allocations"`
}

type Budget struct {
	ID             uuid.UUID  `json:"id" example:"55eecbd8-7c46-4b06-ada9-f287802fb05e"`
	WorkspaceID    uuid.UUID  `json:"workspaceId" example:"0b8c6c8e-21fb-4ec3-8f1c-4c0f3a4d7a10"`
	Name           string     `json:"name" example:"Groceries 2026"`
	Description    *string    `json:"description" example:"Food and household"`
	TotalAmount    string     `json:"totalAmount" example:"1000.00"`
	Currency       string     `json:"currency" example:"USD"`
	PeriodType     string     `json:"periodType" example:"MONTHLY"`
	StartDate      types.Date `json:"startDate" swaggertype:"string" example:"2026-01-01"`
	EndDate        types.Date `json:"endDate" swaggertype:"string" example:"2026-02-01"` // Exclusive
	Status         string     `json:"status" example:"ACTIVE"`
	CreatedBy      uuid.UUID  `json:"createdBy" example:"e6c3e9a1-9b6e-4a55-8b5f-0d6a0a7e2f11"`
	IsRecurring    bool       `json:"isRecurring" example:"false"`
	RolloverUnused bool       `json:"rolloverUnused" example:"false"`
	Version        int64      `json:"version" example:"3"`
	CreatedAt      time.Time  `json:"createdAt" example:"2026-01-01T09:12:45Z"`
	UpdatedAt      time.Time  `json:"updatedAt" example:"2026-01-03T17:40:02Z"`

	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, b *budget.Budget) Budget {
	self := fmt.Sprintf("%s/v1/workspaces/%s/budgets/%s", baseURL(c), b.WorkspaceID(), b.ID())

	return Budget{
		ID:             b.ID(),
		WorkspaceID:    b.WorkspaceID(),
		Name:           b.Name(),
		Description:    b.Description(),
		TotalAmount:    money(b.TotalAmount()),
		Currency:       b.Currency(),
		PeriodType:     string(b.Period().Type()),
		StartDate:      types.DateOf(b.Period().Start()),
		EndDate:        types.DateOf(b.Period().End()),
		Status:         string(b.Status()),
		CreatedBy:      b.CreatedBy(),
		IsRecurring:    b.IsRecurring(),
		RolloverUnused: b.ShouldRolloverUnused(),
		Version:        b.Version(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
		Links: BudgetLinks{
			Self:        self,
			Allocations: self + "/allocations",
		},
	}
}

type BudgetResponse struct {
	Data Budget `json:"data"`
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type BudgetQueryFilter struct {
	Status    string      `form:"status" binding:"omitempty,oneof=DRAFT ACTIVE EXCEEDED ARCHIVED draft active exceeded archived"` // Filter by status
	CreatedBy param.Param `form:"createdBy"`                                                                                      // Filter by the creator
	Currency  string      `form:"currency" binding:"omitempty,iso4217"`                                                           // Filter by currency
	ActiveAt  types.Date  `form:"activeAt"`                                                                                       // Only ACTIVE budgets whose period contains this day
	QueryPage
}

func (f BudgetQueryFilter) filter(workspaceID uuid.UUID) (service.BudgetFilter, error) {
	filter := service.BudgetFilter{
		WorkspaceID: workspaceID,
		CreatedBy:   f.CreatedBy.Ptr(),
		Currency:    f.Currency,
		ActiveAt:    f.ActiveAt.Ptr(),
		Page:        f.page(),
	}

	if f.Status != "" {
		status, err := budget.ParseStatus(f.Status)
		if err != nil {
			return service.BudgetFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

/*
 * Allocations
 */

type AllocationCreate struct {
	CategoryID  *uuid.UUID      `json:"categoryId" example:"1f0e4c9b-3e02-4a57-9d55-7a2b7e6d9a01"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
	Description string          `json:"description" binding:"max=500" example:"Weekly shopping"`
}

type AllocationUpdate struct {
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"300.00"`
	Description *string          `json:"description" binding:"omitempty,max=500" example:"Weekly shopping"`
}

// AllocationSpend sets the absolute amount spent on an allocation.
type AllocationSpend struct {
	SpentAmount decimal.Decimal `json:"spentAmount" swaggertype:"string" example:"180.00"`
}

type Allocation struct {
	ID              uuid.UUID  `json:"id" example:"a9b1e0a2-7e0c-4d4b-9a2d-3f1f0c9e8b77"`
	BudgetID        uuid.UUID  `json:"budgetId" example:"55eecbd8-7c46-4b06-ada9-f287802fb05e"`
	CategoryID      *uuid.UUID `json:"categoryId" example:"1f0e4c9b-3e02-4a57-9d55-7a2b7e6d9a01"`
	AllocatedAmount string     `json:"allocatedAmount" example:"250.00"`
	SpentAmount     string     `json:"spentAmount" example:"180.00"`
	Remaining       string     `json:"remaining" example:"70.00"`
	SpentPercentage string     `json:"spentPercentage" example:"72.00"`
	IsOverBudget    bool       `json:"isOverBudget" example:"false"`
	Description     *string    `json:"description" example:"Weekly shopping"`
	Version         int64      `json:"version" example:"2"`
	CreatedAt       time.Time  `json:"createdAt" example:"2026-01-02T08:00:00Z"`
	UpdatedAt       time.Time  `json:"updatedAt" example:"2026-01-09T19:21:40Z"`
}

func newAllocation(a *budget.Allocation) Allocation {
	return Allocation{
		ID:              a.ID(),
		BudgetID:        a.BudgetID(),
		CategoryID:      a.CategoryID(),
		AllocatedAmount: money(a.AllocatedAmount()),
		SpentAmount:     money(a.SpentAmount()),
		Remaining:       money(a.Remaining()),
		SpentPercentage: money(a.SpentPercentage()),
		IsOverBudget:    a.IsOverBudget(),
		Description:     a.Description(),
		Version:         a.Version(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

type AllocationResponse struct {
	Data Allocation `json:"data"`
}

type AllocationListResponse struct {
	Data []Allocation `json:"data"`
}

// AlertOutcome reports what happened to an alert raised by a spend update.
type AlertOutcome struct {
	Outcome string  `json:"outcome" example:"created"` // created, skipped_duplicate or failed
	Alert   *Alert  `json:"alert"`
	Error   *string `json:"error" example:"database is locked"` // Set if the outcome is failed
}

type SpendResponse struct {
	Data   Allocation     `json:"data"`
	Budget Budget         `json:"budget"`
	Alerts []AlertOutcome `json:"alerts"`

	// Set when the spend was stored but the budget could not be marked as
	// exceeded. Recording the same spend again retries.
	BudgetError *string `json:"budgetError,omitempty" example:"the record has been modified concurrently, reload and retry"`
}

func newSpendResponse(c *gin.Context, r service.SpendResult) SpendResponse {
	response := SpendResponse{
		Data:   newAllocation(r.Allocation),
		Budget: newBudget(c, r.Budget),
		Alerts: make([]AlertOutcome, 0, len(r.Alerts)),
	}

	for _, o := range r.Alerts {
		outcome := AlertOutcome{Outcome: o.Kind.String()}
		if o.Alert != nil {
			alert := newAlert(o.Alert)
			outcome.Alert = &alert
		}

		// Failure reasons are logged, clients only learn that it failed
		if o.Reason != nil {
			reason := "the alert could not be stored"
			outcome.Error = &reason
		}

		response.Alerts = append(response.Alerts, outcome)
	}

	if _, ok := publishErrors(r.BudgetError); r.BudgetError != nil && !ok {
		_, body := httperror.Response(r.BudgetError)
		response.BudgetError = &body.Message
	}

	return response
}

/*
 * Alerts
 */

type Alert struct {
	ID              uuid.UUID  `json:"id" example:"c0a1d7f3-2a8b-4f0c-8c5e-1b9f2e3d4a55"`
	BudgetID        uuid.UUID  `json:"budgetId" example:"55eecbd8-7c46-4b06-ada9-f287802fb05e"`
	AllocationID    *uuid.UUID `json:"allocationId" example:"a9b1e0a2-7e0c-4d4b-9a2d-3f1f0c9e8b77"`
	Level           string     `json:"level" example:"WARNING"`
	Threshold       string     `json:"threshold" example:"80.00"` // Spent percentage at the time of the alert
	CurrentSpent    string     `json:"currentSpent" example:"200.00"`
	AllocatedAmount string     `json:"allocatedAmount" example:"250.00"`
	Message         string     `json:"message" example:"Warning: 80.0% of budget spent (200.00/250.00). 50.00 remaining."`
	IsRead          bool       `json:"isRead" example:"false"`
	NotifiedAt      *time.Time `json:"notifiedAt" example:"2026-01-09T19:25:00Z"`
	CreatedAt       time.Time  `json:"createdAt" example:"2026-01-09T19:21:40Z"`
}

func newAlert(a *budget.Alert) Alert {
	return Alert{
		ID:              a.ID(),
		BudgetID:        a.BudgetID(),
		AllocationID:    a.AllocationID(),
		Level:           string(a.Level()),
		Threshold:       money(a.Threshold()),
		CurrentSpent:    money(a.CurrentSpent()),
		AllocatedAmount: money(a.AllocatedAmount()),
		Message:         a.Message(),
		IsRead:          a.IsRead(),
		NotifiedAt:      a.NotifiedAt(),
		CreatedAt:       a.CreatedAt(),
	}
}

type AlertResponse struct {
	Data Alert `json:"data"`
}

type AlertListResponse struct {
	Data       []Alert     `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type AlertQueryFilter struct {
	BudgetID     param.Param `form:"budget"`                                // Filter by budget
	AllocationID param.Param `form:"allocation"`                            // Filter by allocation
	Level        string      `form:"level" binding:"omitempty,alert_level"` // Filter by level
	IsRead       *bool       `form:"isRead"`                                // Filter by read state
	QueryPage
}

func (f AlertQueryFilter) filter(workspaceID uuid.UUID) (service.AlertFilter, error) {
	filter := service.AlertFilter{
		WorkspaceID:  workspaceID,
		BudgetID:     f.BudgetID.Ptr(),
		AllocationID: f.AllocationID.Ptr(),
		IsRead:       f.IsRead,
		Page:         f.page(),
	}

	if f.Level != "" {
		level, err := budget.ParseAlertLevel(f.Level)
		if err != nil {
			return service.AlertFilter{}, err
		}
		filter.Level = &level
	}

	return filter, nil
}

/*
 * Spending limits
 */

type SpendingLimitCreate struct {
	UserID      *uuid.UUID      `json:"userId" example:"e6c3e9a1-9b6e-4a55-8b5f-0d6a0a7e2f11"`     // Limit the spend of this user only
	CategoryID  *uuid.UUID      `json:"categoryId" example:"1f0e4c9b-3e02-4a57-9d55-7a2b7e6d9a01"` // Limit the spend in this category only
	LimitAmount decimal.Decimal `json:"limitAmount" swaggertype:"string" example:"500.00"`
	Currency    string          `json:"currency" binding:"required,iso4217" example:"USD"`
	PeriodType  string          `json:"periodType" binding:"required,period_type" example:"MONTHLY"`
}

func (l SpendingLimitCreate) input(workspaceID uuid.UUID) (service.CreateSpendingLimitInput, error) {
	periodType, err := budget.ParsePeriodType(l.PeriodType)
	if err != nil {
		return service.CreateSpendingLimitInput{}, err
	}

	return service.CreateSpendingLimitInput{
		WorkspaceID: workspaceID,
		UserID:      l.UserID,
		CategoryID:  l.CategoryID,
		LimitAmount: l.LimitAmount,
		Currency:    l.Currency,
		PeriodType:  periodType,
	}, nil
}

type SpendingLimitUpdate struct {
	LimitAmount *decimal.Decimal `json:"limitAmount" swaggertype:"string" example:"750.00"`
}

type SpendingLimit struct {
	ID          uuid.UUID  `json:"id" example:"d4e5f6a7-b8c9-4d0e-8f1a-2b3c4d5e6f70"`
	WorkspaceID uuid.UUID  `json:"workspaceId" example:"0b8c6c8e-21fb-4ec3-8f1c-4c0f3a4d7a10"`
	UserID      *uuid.UUID `json:"userId" example:"e6c3e9a1-9b6e-4a55-8b5f-0d6a0a7e2f11"`
	CategoryID  *uuid.UUID `json:"categoryId" example:"1f0e4c9b-3e02-4a57-9d55-7a2b7e6d9a01"`
	Scope       string     `json:"scope" example:"USER_CATEGORY"`
	LimitAmount string     `json:"limitAmount" example:"500.00"`
	Currency    string     `json:"currency" example:"USD"`
	PeriodType  string     `json:"periodType" example:"MONTHLY"`
	IsActive    bool       `json:"isActive" example:"true"`
	Version     int64      `json:"version" example:"1"`
	CreatedAt   time.Time  `json:"createdAt" example:"2026-01-01T09:12:45Z"`
	UpdatedAt   time.Time  `json:"updatedAt" example:"2026-01-01T09:12:45Z"`
}

func newSpendingLimit(l *budget.SpendingLimit) SpendingLimit {
	return SpendingLimit{
		ID:          l.ID(),
		WorkspaceID: l.WorkspaceID(),
		UserID:      l.UserID(),
		CategoryID:  l.CategoryID(),
		Scope:       string(l.Scope()),
		LimitAmount: money(l.LimitAmount()),
		Currency:    l.Currency(),
		PeriodType:  string(l.PeriodType()),
		IsActive:    l.IsActive(),
		Version:     l.Version(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func newSpendingLimits(limits []*budget.SpendingLimit) []SpendingLimit {
	data := make([]SpendingLimit, 0, len(limits))
	for _, l := range limits {
		data = append(data, newSpendingLimit(l))
	}
	return data
}

type SpendingLimitResponse struct {
	Data SpendingLimit `json:"data"`
}

type SpendingLimitListResponse struct {
	Data       []SpendingLimit `json:"data"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

type SpendingLimitQueryFilter struct {
	UserID     param.Param `form:"user"`                                       // Filter by user
	CategoryID param.Param `form:"category"`                                   // Filter by category
	IsActive   *bool       `form:"isActive"`                                   // Filter by active state
	PeriodType string      `form:"periodType" binding:"omitempty,period_type"` // Filter by period type
	Currency   string      `form:"currency" binding:"omitempty,iso4217"`       // Filter by currency
	QueryPage
}

func (f SpendingLimitQueryFilter) filter(workspaceID uuid.UUID) (service.SpendingLimitFilter, error) {
	filter := service.SpendingLimitFilter{
		WorkspaceID: workspaceID,
		UserID:      f.UserID.Ptr(),
		CategoryID:  f.CategoryID.Ptr(),
		IsActive:    f.IsActive,
		Currency:    f.Currency,
		Page:        f.page(),
	}

	if f.PeriodType != "" {
		periodType, err := budget.ParsePeriodType(f.PeriodType)
		if err != nil {
			return service.SpendingLimitFilter{}, err
		}
		filter.PeriodType = &periodType
	}

	return filter, nil
}

// QueryScope selects the limits that apply to a user and category.
type QueryScope struct {
	UserID     param.Param `form:"user"`     // The user making the expense
	CategoryID param.Param `form:"category"` // The category of the expense
}

// ExpenseValidate describes a candidate expense.
type ExpenseValidate struct {
	UserID     *uuid.UUID      `json:"userId" example:"e6c3e9a1-9b6e-4a55-8b5f-0d6a0a7e2f11"`
	CategoryID *uuid.UUID      `json:"categoryId" example:"1f0e4c9b-3e02-4a57-9d55-7a2b7e6d9a01"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"600.00"`
	Currency   string          `json:"currency" binding:"required" example:"USD"`
}

type Violation struct {
	Limit       SpendingLimit `json:"limit"`
	SpentToDate string        `json:"spentToDate" example:"450.00"` // Spend in the current period before the expense
	Projected   string        `json:"projected" example:"510.00"`   // Spend in the current period including the expense
	Cumulative  bool          `json:"cumulative" example:"true"`    // Whether the spend of the period was taken into account
	Message     string        `json:"message" example:"Expense of 60.00 USD exceeds the MONTHLY limit of 500.00 USD"`
}

type ExpenseValidationResponse struct {
	Valid      bool        `json:"valid" example:"false"`
	Violations []Violation `json:"violations"`
}

func newExpenseValidationResponse(amount decimal.Decimal, v service.ExpenseValidation) ExpenseValidationResponse {
	response := ExpenseValidationResponse{
		Valid:      v.Valid,
		Violations: make([]Violation, 0, len(v.Violations)),
	}

	for _, violation := range v.Violations {
		l := violation.Limit
		response.Violations = append(response.Violations, Violation{
			Limit:       newSpendingLimit(l),
			SpentToDate: money(violation.SpentToDate),
			Projected:   money(violation.Projected),
			Cumulative:  violation.Cumulative,
			Message:     fmt.Sprintf("Expense of %s %s exceeds the %s limit of %s %s", money(amount), l.Currency(), l.PeriodType(), money(l.LimitAmount()), l.Currency()),
		})
	}

	return response
}
