package portal

// View names the client mounts for an active tab. Anything the registry
// does not know renders the empty view.
const (
	ViewEmpty = ""

	ViewCivilianHome  = "civilian-home"
	ViewFeedbackForm  = "feedback-form"
	ViewFeedbackList  = "feedback-list"
	ViewAdminOverview = "admin-overview"
	ViewFeedbackTable = "feedback-table"
	ViewInsights      = "ai-insights"
	ViewSettings      = "settings"
)

var viewByTab = map[string]string{
	"home":        ViewCivilianHome,
	"create":      ViewFeedbackForm,
	"myfeedbacks": ViewFeedbackList,

	"dashboard":         ViewAdminOverview,
	"all-feedback":      ViewFeedbackTable,
	"pending-feedback":  ViewFeedbackTable,
	"resolved-feedback": ViewFeedbackTable,
	"ai-insights":       ViewInsights,
	"settings":          ViewSettings,
}

// ViewForTab resolves the mounted view for a tab id. Unknown ids fall back
// to the empty view rather than erroring.
func ViewForTab(tabID string) string {
	return viewByTab[tabID]
}
