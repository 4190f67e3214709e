package domain

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalUsers       int `json:"total_users"`
	ActiveUsers      int `json:"active_users"`
	PendingApprovals int `json:"pending_approvals"`
	ApprovedUsers    int `json:"approved_users"`
	RejectedUsers    int `json:"rejected_users"`
	TotalEvents      int `json:"total_events"`
	ActiveEvents     int `json:"active_events"`
	FeaturedEvents   int `json:"featured_events"`
	TotalCategories  int `json:"total_categories"`
	NewContacts      int `json:"new_contacts"`
	PendingReviews   int `json:"pending_reviews"`
}

// Report is a date-bounded activity report.
type Report struct {
	From          string         `json:"from,omitempty"`
	To            string         `json:"to,omitempty"`
	Registrations int            `json:"registrations"`
	Approvals     int            `json:"approvals"`
	Rejections    int            `json:"rejections"`
	EventsHeld    int            `json:"events_held"`
	ByCategory    map[string]int `json:"by_category,omitempty"`
}
