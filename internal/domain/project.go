package domain

import "time"

// Project is a budgeted unit of work owned by a Client. Budget is nil when
// the store holds NULL.
type Project struct {
	ID          string
	ClientID    string
	Name        string
	Description string
	Budget      *Money
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BudgetOrZero returns the budget, treating NULL as zero.
func (p *Project) BudgetOrZero() Money {
	return MoneyFromPtrWithDefault(0, p.Budget)
}
