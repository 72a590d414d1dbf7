package models

// DashboardStats counts projects by decision.
type DashboardStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
}

// DashboardComment is a recent comment with the title of its project.
type DashboardComment struct {
	Comment
	ProjectTitle string `json:"project_title,omitempty"`
}

// DashboardActivity is the admin home summary.
type DashboardActivity struct {
	Stats    DashboardStats     `json:"stats"`
	Comments []DashboardComment `json:"comments"`
	Projects []Project          `json:"projects"`
}
