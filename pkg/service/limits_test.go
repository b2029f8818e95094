package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledger is a SpendLedger returning a fixed amount and recording queries.
type ledger struct {
	spent   decimal.Decimal
	err     error
	queries []service.SpendQuery
}

func (l *ledger) SpentBetween(_ context.Context, q service.SpendQuery) (decimal.Decimal, error) {
	l.queries = append(l.queries, q)
	return l.spent, l.err
}

func (suite *TestSuiteStandard) createTestLimit(userID, categoryID *uuid.UUID, limit, currency string) *budget.SpendingLimit {
	l, err := suite.limits.CreateSpendingLimit(context.Background(), service.CreateSpendingLimitInput{
		WorkspaceID: suite.workspace,
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: amount(limit),
		Currency:    currency,
		PeriodType:  budget.PeriodMonthly,
	})
	suite.Require().Nil(err)
	return l
}

func (suite *TestSuiteStandard) TestCreateSpendingLimitScopeConflict() {
	suite.createTestLimit(nil, nil, "500", "USD")

	_, err := suite.limits.CreateSpendingLimit(context.Background(), service.CreateSpendingLimitInput{
		WorkspaceID: suite.workspace,
		LimitAmount: amount("100"),
		Currency:    "usd",
		PeriodType:  budget.PeriodMonthly,
	})
	suite.Assert().ErrorIs(err, service.ErrLimitScopeConflict)

	// A different currency is a different scope
	suite.createTestLimit(nil, nil, "500", "EUR")
}

func (suite *TestSuiteStandard) TestCreateSpendingLimitTooMany() {
	for i := 0; i < budget.MaxLimitsPerWorkspace; i++ {
		user := uuid.New()
		suite.createTestLimit(&user, nil, "10", "USD")
	}

	user := uuid.New()
	_, err := suite.limits.CreateSpendingLimit(context.Background(), service.CreateSpendingLimitInput{
		WorkspaceID: suite.workspace,
		UserID:      &user,
		LimitAmount: amount("10"),
		Currency:    "USD",
		PeriodType:  budget.PeriodMonthly,
	})
	suite.Assert().ErrorIs(err, service.ErrTooManyLimits)
}

func (suite *TestSuiteStandard) TestActivateLimitScopeConflict() {
	first := suite.createTestLimit(nil, nil, "500", "USD")

	_, err := suite.limits.DeactivateLimit(context.Background(), suite.workspace, first.ID())
	suite.Require().Nil(err)

	_, err = suite.limits.DeactivateLimit(context.Background(), suite.workspace, first.ID())
	suite.Assert().ErrorIs(err, budget.ErrConflict)

	suite.createTestLimit(nil, nil, "300", "USD")

	_, err = suite.limits.ActivateLimit(context.Background(), suite.workspace, first.ID())
	suite.Assert().ErrorIs(err, service.ErrLimitScopeConflict)

	stored, err := suite.limits.GetSpendingLimit(context.Background(), suite.workspace, first.ID())
	suite.Require().Nil(err)
	suite.Assert().False(stored.IsActive())
}

func (suite *TestSuiteStandard) TestUpdateAndDeleteSpendingLimit() {
	l := suite.createTestLimit(nil, nil, "500", "USD")

	l, err := suite.limits.UpdateSpendingLimit(context.Background(), suite.workspace, l.ID(), ptr(amount("650")))
	suite.Require().Nil(err)
	suite.Assert().Equal("650", l.LimitAmount().String())

	_, err = suite.limits.UpdateSpendingLimit(context.Background(), uuid.New(), l.ID(), ptr(amount("1")))
	suite.Assert().ErrorIs(err, service.ErrNotFound)

	suite.Require().Nil(suite.limits.DeleteSpendingLimit(context.Background(), suite.workspace, l.ID()))

	err = suite.limits.DeleteSpendingLimit(context.Background(), suite.workspace, l.ID())
	var notFound *service.NotFoundError
	suite.Require().True(errors.As(err, &notFound))
	suite.Assert().Equal("spending limit", notFound.Resource)

	limits, err := suite.limits.ListSpendingLimits(context.Background(), suite.workspace)
	suite.Require().Nil(err)
	suite.Assert().Empty(limits)
}

func (suite *TestSuiteStandard) TestApplicableLimits() {
	user := uuid.New()
	category := uuid.New()

	suite.createTestLimit(nil, nil, "500", "USD")
	suite.createTestLimit(&user, nil, "400", "USD")
	suite.createTestLimit(nil, &category, "300", "USD")
	suite.createTestLimit(&user, &category, "200", "USD")

	limits, err := suite.limits.ApplicableLimits(context.Background(), suite.workspace, &user, &category)
	suite.Require().Nil(err)
	suite.Assert().Len(limits, 4)

	other := uuid.New()
	limits, err = suite.limits.ApplicableLimits(context.Background(), suite.workspace, &other, &category)
	suite.Require().Nil(err)
	suite.Assert().Len(limits, 2)
}

func (suite *TestSuiteStandard) TestValidateExpenseWorkspaceWide() {
	limit := suite.createTestLimit(nil, nil, "500", "USD")
	user := uuid.New()

	result, err := suite.limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		UserID:      &user,
		Amount:      amount("600"),
		Currency:    "USD",
	})
	suite.Require().Nil(err)
	suite.Assert().False(result.Valid)
	suite.Require().Len(result.Violations, 1)
	suite.Assert().Equal(limit.ID(), result.Violations[0].Limit.ID())
	suite.Assert().False(result.Violations[0].Cumulative)

	// Limits in another currency are not evaluated
	result, err = suite.limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		UserID:      &user,
		Amount:      amount("600"),
		Currency:    "EUR",
	})
	suite.Require().Nil(err)
	suite.Assert().True(result.Valid)
	suite.Assert().Empty(result.Violations)

	result, err = suite.limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		Amount:      amount("500"),
		Currency:    "USD",
	})
	suite.Require().Nil(err)
	suite.Assert().True(result.Valid, "an expense equal to the limit is allowed")
}

func (suite *TestSuiteStandard) TestValidateExpenseInvalid() {
	_, err := suite.limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		Amount:      amount("10"),
		Currency:    "ABC",
	})
	suite.Assert().ErrorIs(err, budget.ErrInvalidCurrency)

	_, err = suite.limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		Amount:      amount("0"),
		Currency:    "USD",
	})
	suite.Assert().ErrorIs(err, budget.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestValidateExpenseCumulative() {
	spend := &ledger{spent: amount("450")}
	limits := service.NewSpendingLimitService(suite.repos.SpendingLimits,
		service.WithSpendLedger(spend),
		service.WithClock(func() time.Time { return suite.now }),
	)

	user := uuid.New()
	suite.createTestLimit(&user, nil, "500", "USD")

	result, err := limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		UserID:      &user,
		Amount:      amount("60"),
		Currency:    "USD",
	})
	suite.Require().Nil(err)
	suite.Assert().False(result.Valid)
	suite.Require().Len(result.Violations, 1)

	v := result.Violations[0]
	suite.Assert().True(v.Cumulative)
	suite.Assert().Equal("450", v.SpentToDate.String())
	suite.Assert().Equal("510", v.Projected.String())

	suite.Require().Len(spend.queries, 1)
	q := spend.queries[0]
	suite.Assert().Equal(&user, q.UserID)
	suite.Assert().Nil(q.CategoryID)
	suite.Assert().Equal("USD", q.Currency)
	suite.Assert().True(q.From.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	suite.Assert().True(q.To.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))

	result, err = limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		UserID:      &user,
		Amount:      amount("50"),
		Currency:    "USD",
	})
	suite.Require().Nil(err)
	suite.Assert().True(result.Valid)
}

func (suite *TestSuiteStandard) TestValidateExpenseLedgerError() {
	errLedger := errors.New("ledger offline")
	limits := service.NewSpendingLimitService(suite.repos.SpendingLimits,
		service.WithSpendLedger(&ledger{err: errLedger}),
	)

	suite.createTestLimit(nil, nil, "500", "USD")

	_, err := limits.ValidateExpense(context.Background(), service.ExpenseCheck{
		WorkspaceID: suite.workspace,
		Amount:      amount("1"),
		Currency:    "USD",
	})
	suite.Assert().ErrorIs(err, errLedger)
}
