package httpx

// Page identifiers carried in template data as CurrentPage.
const (
	PageHome      = "home"
	PageDashboard = "dashboard"
	PageServer    = "server"
)

// templateDir is where the templates live relative to the module root.
const templateDir = "frontend/templates"

const (
	dashboardPath = "/dashboard"
	serverPathFmt = "/servers/%d"
)

//nolint:gochecknoglobals // static read-only lookup
var contentTemplates = map[string]string{
	PageHome:      "dashboard-content",
	PageDashboard: "dashboard-content",
	PageServer:    "server-content",
}

// ContentTemplateFor returns the content template for currentPage, falling
// back to the dashboard.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
