package dto

type DashboardStatsResponse struct {
	TotalFeedback    int                `json:"total_feedback"`
	PendingCount     int                `json:"pending_count"`
	InProgressCount  int                `json:"in_progress_count"`
	ResolvedCount    int                `json:"resolved_count"`
	TotalUsers       int                `json:"total_users"`
	RecentFeedback   []FeedbackResponse `json:"recent_feedback"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type UrgencyCount struct {
	Urgency string `json:"urgency"`
	Count   int    `json:"count"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type InsightsResponse struct {
	Categories  []CategoryCount    `json:"categories"`
	Urgencies   []UrgencyCount     `json:"urgencies"`
	Trend       []MonthlyCount     `json:"trend"`
	TopUpvoted  []FeedbackResponse `json:"top_upvoted"`
}
