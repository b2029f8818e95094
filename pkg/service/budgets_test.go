package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/repository"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestCreateBudget() {
	b := suite.createTestBudget("Groceries", "1000.00")

	suite.Assert().Equal(budget.StatusDraft, b.Status())
	suite.Assert().True(b.Period().End().Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	suite.Assert().Equal([]string{"budget.created"}, suite.publishedNames())

	_, err := suite.budgets.CreateBudget(context.Background(), service.CreateBudgetInput{
		WorkspaceID: suite.workspace,
		CreatedBy:   suite.owner,
		Name:        "  Groceries ",
		TotalAmount: amount("5"),
		Currency:    "USD",
		PeriodType:  budget.PeriodMonthly,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.Assert().ErrorIs(err, service.ErrBudgetNameTaken)
}

func (suite *TestSuiteStandard) TestCreateBudgetInvalid() {
	_, err := suite.budgets.CreateBudget(context.Background(), service.CreateBudgetInput{
		WorkspaceID: suite.workspace,
		CreatedBy:   suite.owner,
		Name:        "Invalid",
		TotalAmount: amount("0"),
		Currency:    "USD",
		PeriodType:  budget.PeriodMonthly,
	})
	suite.Assert().ErrorIs(err, budget.ErrValidation)
	suite.Assert().Empty(suite.publishedNames())
}

func (suite *TestSuiteStandard) TestGetBudgetOtherWorkspace() {
	b := suite.createTestBudget("Private", "100")

	_, err := suite.budgets.GetBudget(context.Background(), uuid.New(), b.ID())
	var notFound *service.NotFoundError
	suite.Require().True(errors.As(err, &notFound))
	suite.Assert().Equal("budget", notFound.Resource)
	suite.Assert().ErrorIs(err, service.ErrNotFound)
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	b := suite.createTestBudget("Travel", "500")
	suite.createTestBudget("Taken", "500")

	updated, err := suite.budgets.UpdateBudget(context.Background(), suite.workspace, b.ID(), suite.owner, service.UpdateBudgetInput{
		Name:        ptr("Vacation"),
		Description: ptr("Summer"),
		TotalAmount: ptr(amount("750")),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Vacation", updated.Name())
	suite.Assert().Equal("Summer", *updated.Description())
	suite.Assert().Equal("750", updated.TotalAmount().String())
	suite.Assert().Equal(int64(2), updated.Version())

	_, err = suite.budgets.UpdateBudget(context.Background(), suite.workspace, b.ID(), suite.owner, service.UpdateBudgetInput{
		Name: ptr("Taken"),
	})
	suite.Assert().ErrorIs(err, service.ErrBudgetNameTaken)
}

func (suite *TestSuiteStandard) TestUpdateBudgetNotOwner() {
	b := suite.createTestBudget("Owned", "500")
	caller := uuid.New()

	_, err := suite.budgets.UpdateBudget(context.Background(), suite.workspace, b.ID(), caller, service.UpdateBudgetInput{
		Name: ptr("Stolen"),
	})
	suite.Assert().ErrorIs(err, service.ErrForbidden)

	var ownership *service.OwnershipError
	suite.Require().True(errors.As(err, &ownership))
	suite.Assert().Equal(suite.owner, ownership.CreatedBy)
	suite.Assert().Equal(caller, ownership.Caller)
}

func (suite *TestSuiteStandard) TestUpdateBudgetInvalidTotal() {
	b := suite.createTestBudget("Invalid", "500")
	suite.createTestAllocation(b, "100")

	for _, total := range []string{"-5", "0"} {
		_, err := suite.budgets.UpdateBudget(context.Background(), suite.workspace, b.ID(), suite.owner, service.UpdateBudgetInput{
			TotalAmount: ptr(amount(total)),
		})
		suite.Assert().ErrorIs(err, budget.ErrAmountNotPositive, total)

		var exceeded *budget.AllocationExceededError
		suite.Assert().False(errors.As(err, &exceeded), "%s is rejected before the allocation cap is checked", total)
	}
}

func (suite *TestSuiteStandard) TestUpdateBudgetTotalBelowAllocated() {
	b := suite.createTestBudget("Shrink", "500")
	suite.createTestAllocation(b, "300")

	_, err := suite.budgets.UpdateBudget(context.Background(), suite.workspace, b.ID(), suite.owner, service.UpdateBudgetInput{
		TotalAmount: ptr(amount("200")),
	})
	suite.Assert().ErrorIs(err, budget.ErrAllocationExceedsBudget)

	var exceeded *budget.AllocationExceededError
	suite.Require().True(errors.As(err, &exceeded))
	suite.Assert().Equal("300", exceeded.Allocated.String())
}

func (suite *TestSuiteStandard) TestActivateTwice() {
	b := suite.createActiveBudget("Twice", "100")
	suite.Assert().Equal(budget.StatusActive, b.Status())

	_, err := suite.budgets.ActivateBudget(context.Background(), suite.workspace, b.ID(), suite.owner)
	suite.Assert().ErrorIs(err, budget.ErrConflict)
}

func (suite *TestSuiteStandard) TestArchiveBudget() {
	b := suite.createActiveBudget("Archive", "100")

	b, err := suite.budgets.ArchiveBudget(context.Background(), suite.workspace, b.ID(), suite.owner)
	suite.Require().Nil(err)
	suite.Assert().True(b.IsArchived())
	suite.Assert().Contains(suite.publishedNames(), "budget.archived")
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	b := suite.createTestBudget("Delete", "100")
	a := suite.createTestAllocation(b, "50")

	err := suite.budgets.DeleteBudget(context.Background(), suite.workspace, b.ID(), uuid.New())
	suite.Assert().ErrorIs(err, service.ErrForbidden)

	suite.Require().Nil(suite.budgets.DeleteBudget(context.Background(), suite.workspace, b.ID(), suite.owner))

	_, err = suite.budgets.GetAllocation(context.Background(), suite.workspace, a.ID())
	suite.Assert().ErrorIs(err, service.ErrNotFound)

	err = suite.budgets.DeleteBudget(context.Background(), suite.workspace, b.ID(), suite.owner)
	suite.Assert().ErrorIs(err, service.ErrNotFound)
}

func (suite *TestSuiteStandard) TestActiveBudgets() {
	active := suite.createActiveBudget("Active", "100")
	suite.createTestBudget("Draft", "100")

	budgets, err := suite.budgets.ActiveBudgets(context.Background(), suite.workspace)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().Equal(active.ID(), budgets[0].ID())

	suite.now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	budgets, err = suite.budgets.ActiveBudgets(context.Background(), suite.workspace)
	suite.Require().Nil(err)
	suite.Assert().Empty(budgets)
}

func (suite *TestSuiteStandard) TestProcessExpiredBudgets() {
	expired := suite.createActiveBudget("Expired", "100")
	draft := suite.createTestBudget("Draft", "100")

	count, err := suite.budgets.ProcessExpiredBudgets(context.Background(), suite.workspace)
	suite.Require().Nil(err)
	suite.Assert().Equal(0, count, "no budget has ended yet")

	suite.now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	count, err = suite.budgets.ProcessExpiredBudgets(context.Background(), suite.workspace)
	suite.Require().Nil(err)
	suite.Assert().Equal(1, count)

	stored, err := suite.budgets.GetBudget(context.Background(), suite.workspace, expired.ID())
	suite.Require().Nil(err)
	suite.Assert().True(stored.IsArchived())

	stored, err = suite.budgets.GetBudget(context.Background(), suite.workspace, draft.ID())
	suite.Require().Nil(err)
	suite.Assert().True(stored.IsDraft(), "only active budgets are archived")

	count, err = suite.budgets.ProcessExpiredBudgets(context.Background(), uuid.Nil)
	suite.Require().Nil(err)
	suite.Assert().Equal(0, count)
}

func (suite *TestSuiteStandard) TestAddAllocationCap() {
	b := suite.createTestBudget("Cap", "1000")
	suite.createTestAllocation(b, "600")
	suite.createTestAllocation(b, "400")

	_, err := suite.budgets.AddAllocation(context.Background(), service.AddAllocationInput{
		WorkspaceID: suite.workspace,
		BudgetID:    b.ID(),
		Caller:      suite.owner,
		Amount:      amount("0.01"),
	})
	suite.Assert().ErrorIs(err, budget.ErrAllocationExceedsBudget)

	_, err = suite.budgets.AddAllocation(context.Background(), service.AddAllocationInput{
		WorkspaceID: suite.workspace,
		BudgetID:    b.ID(),
		Caller:      uuid.New(),
		Amount:      amount("1"),
	})
	suite.Assert().ErrorIs(err, service.ErrForbidden)
}

func (suite *TestSuiteStandard) TestUpdateAllocationCapExcludesItself() {
	b := suite.createTestBudget("Resize", "1000")
	a := suite.createTestAllocation(b, "600")
	suite.createTestAllocation(b, "300")

	a, err := suite.budgets.UpdateAllocation(context.Background(), suite.workspace, a.ID(), suite.owner, service.UpdateAllocationInput{
		Amount:      ptr(amount("700")),
		Description: ptr("Rent"),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("700", a.AllocatedAmount().String())
	suite.Assert().Equal("Rent", *a.Description())

	_, err = suite.budgets.UpdateAllocation(context.Background(), suite.workspace, a.ID(), suite.owner, service.UpdateAllocationInput{
		Amount: ptr(amount("700.01")),
	})
	suite.Assert().ErrorIs(err, budget.ErrAllocationExceedsBudget)
}

func (suite *TestSuiteStandard) TestRecordAllocationSpend() {
	b := suite.createActiveBudget("Spend", "1000")
	a := suite.createTestAllocation(b, "200")

	result, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, a.ID(), amount("100"))
	suite.Require().Nil(err)
	suite.Require().Len(result.Alerts, 1)
	suite.Assert().Equal(budget.AlertCreated, result.Alerts[0].Kind)
	suite.Assert().Equal(budget.AlertInfo, result.Alerts[0].Alert.Level())

	result, err = suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, a.ID(), amount("250"))
	suite.Require().Nil(err)
	suite.Require().Len(result.Alerts, 1)
	suite.Assert().Equal(budget.AlertExceeded, result.Alerts[0].Alert.Level())
	suite.Assert().Contains(result.Alerts[0].Alert.Message(), "Over budget by 50")
	suite.Assert().Equal(budget.StatusActive, result.Budget.Status(), "the budget total is not exceeded")

	alerts, err := suite.budgets.UnreadAlerts(context.Background(), suite.workspace)
	suite.Require().Nil(err)
	suite.Assert().Len(alerts, 2)
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendBelowThreshold() {
	b := suite.createActiveBudget("Low", "1000")
	a := suite.createTestAllocation(b, "200")

	result, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, a.ID(), amount("20"))
	suite.Require().Nil(err)
	suite.Assert().Empty(result.Alerts)
	suite.Assert().Equal("20", result.Allocation.SpentAmount().String())

	_, err = suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, a.ID(), amount("-1"))
	suite.Assert().ErrorIs(err, budget.ErrValidation)
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendDuplicateAlert() {
	b := suite.createActiveBudget("Duplicate", "1000")
	a := suite.createTestAllocation(b, "100")

	_, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, a.ID(), amount("76"))
	suite.Require().Nil(err)

	result, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, a.ID(), amount("80"))
	suite.Require().Nil(err)
	suite.Require().Len(result.Alerts, 1)
	suite.Assert().Equal(budget.AlertSkippedDuplicate, result.Alerts[0].Kind)
	suite.Assert().Equal("80", result.Allocation.SpentAmount().String())
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendExceedsBudget() {
	b := suite.createActiveBudget("Exceeded", "300")
	first := suite.createTestAllocation(b, "150")
	second := suite.createTestAllocation(b, "150")

	_, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, first.ID(), amount("200"))
	suite.Require().Nil(err)

	result, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, second.ID(), amount("120"))
	suite.Require().Nil(err)
	suite.Assert().True(result.Budget.IsExceeded())
	suite.Assert().Contains(suite.publishedNames(), "budget.threshold_exceeded")

	stored, err := suite.budgets.GetBudget(context.Background(), suite.workspace, b.ID())
	suite.Require().Nil(err)
	suite.Assert().True(stored.IsExceeded())
}

// conflictingBudgets fails every budget save with a version conflict.
type conflictingBudgets struct {
	*repository.Budgets
}

func (conflictingBudgets) Save(context.Context, *budget.Budget) error {
	return service.ErrVersionConflict
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendBudgetSaveFails() {
	b := suite.createActiveBudget("Conflict", "300")
	first := suite.createTestAllocation(b, "150")
	second := suite.createTestAllocation(b, "150")

	_, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, first.ID(), amount("200"))
	suite.Require().Nil(err)

	budgets := service.NewBudgetService(conflictingBudgets{suite.repos.Budgets}, suite.repos.Allocations, suite.repos.Alerts, func() time.Time { return suite.now })
	result, err := budgets.RecordAllocationSpend(context.Background(), suite.workspace, second.ID(), amount("120"))
	suite.Require().Nil(err, "the spend is stored")
	suite.Assert().ErrorIs(result.BudgetError, service.ErrVersionConflict)
	suite.Assert().Equal(budget.StatusActive, result.Budget.Status(), "the budget is reloaded")

	stored, err := suite.budgets.GetAllocation(context.Background(), suite.workspace, second.ID())
	suite.Require().Nil(err)
	suite.Assert().Equal("120", stored.SpentAmount().String())

	// Recording the same spend again marks the budget
	result, err = suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, second.ID(), amount("120"))
	suite.Require().Nil(err)
	suite.Assert().Nil(result.BudgetError)
	suite.Assert().True(result.Budget.IsExceeded())
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendOtherWorkspace() {
	b := suite.createActiveBudget("Hidden", "300")
	a := suite.createTestAllocation(b, "100")

	_, err := suite.budgets.RecordAllocationSpend(context.Background(), uuid.New(), a.ID(), amount("10"))
	suite.Assert().ErrorIs(err, service.ErrNotFound)
}

func (suite *TestSuiteStandard) TestDeleteAllocation() {
	b := suite.createTestBudget("Allocations", "300")
	a := suite.createTestAllocation(b, "100")

	err := suite.budgets.DeleteAllocation(context.Background(), suite.workspace, a.ID(), uuid.New())
	suite.Assert().ErrorIs(err, service.ErrForbidden)

	suite.Require().Nil(suite.budgets.DeleteAllocation(context.Background(), suite.workspace, a.ID(), suite.owner))

	err = suite.budgets.DeleteAllocation(context.Background(), suite.workspace, a.ID(), suite.owner)
	suite.Assert().ErrorIs(err, service.ErrNotFound)
}

func (suite *TestSuiteStandard) TestListAllocations() {
	b := suite.createTestBudget("List", "300")
	suite.createTestAllocation(b, "100")
	suite.createTestAllocation(b, "50")

	allocations, err := suite.budgets.ListAllocations(context.Background(), suite.workspace, b.ID())
	suite.Require().Nil(err)
	suite.Assert().Len(allocations, 2)

	_, err = suite.budgets.ListAllocations(context.Background(), suite.workspace, uuid.New())
	suite.Assert().ErrorIs(err, service.ErrNotFound)
}

func (suite *TestSuiteStandard) TestMarkAlertReadAndNotified() {
	b := suite.createActiveBudget("Alerts", "300")
	a := suite.createTestAllocation(b, "100")

	result, err := suite.budgets.RecordAllocationSpend(context.Background(), suite.workspace, a.ID(), amount("95"))
	suite.Require().Nil(err)
	suite.Require().Len(result.Alerts, 1)
	id := result.Alerts[0].Alert.ID()

	alert, err := suite.budgets.MarkAlertNotified(context.Background(), suite.workspace, id)
	suite.Require().Nil(err)
	suite.Require().NotNil(alert.NotifiedAt())
	suite.Assert().True(suite.now.Equal(*alert.NotifiedAt()))

	_, err = suite.budgets.MarkAlertNotified(context.Background(), suite.workspace, id)
	suite.Assert().ErrorIs(err, budget.ErrConflict)

	alert, err = suite.budgets.MarkAlertRead(context.Background(), suite.workspace, id)
	suite.Require().Nil(err)
	suite.Assert().True(alert.IsRead())

	unread, err := suite.budgets.UnreadAlerts(context.Background(), suite.workspace)
	suite.Require().Nil(err)
	suite.Assert().Empty(unread)

	_, err = suite.budgets.MarkAlertRead(context.Background(), uuid.New(), id)
	suite.Assert().ErrorIs(err, service.ErrNotFound)
}

func (suite *TestSuiteStandard) TestCreateBudgetPublishFailure() {
	broker := errors.New("broker unreachable")
	repos := repository.New(suite.db, events.PublisherFunc(func(context.Context, events.Event) error {
		return broker
	}))
	budgets := service.NewBudgetService(repos.Budgets, repos.Allocations, repos.Alerts, func() time.Time { return suite.now })

	b, err := budgets.CreateBudget(context.Background(), service.CreateBudgetInput{
		WorkspaceID: suite.workspace,
		CreatedBy:   suite.owner,
		Name:        "Published later",
		TotalAmount: amount("100"),
		Currency:    "USD",
		PeriodType:  budget.PeriodMonthly,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	var publishErr *events.PublishError
	suite.Require().ErrorAs(err, &publishErr)
	suite.Assert().ErrorIs(err, broker)
	suite.Require().NotNil(b, "the committed budget is returned with the publish error")

	stored, err := suite.budgets.GetBudget(context.Background(), suite.workspace, b.ID())
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), stored.Version())
}
