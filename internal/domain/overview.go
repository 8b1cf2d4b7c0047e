package domain

// ClientOverview is one row of the client_overview view: the client columns
// plus live aggregates over the client's projects.
type ClientOverview struct {
	Client
	ProjectCount int
	TotalBudget  Money
}
