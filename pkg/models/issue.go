package models

type Issue struct {
	ID           int    `json:"id"`
	SeriesID     int    `json:"series_id"`
	IssueNumber  int    `json:"issue_number"`
	Title        string `json:"title,omitempty"`
	IsRead       bool   `json:"is_read"`
	IsDownloaded bool   `json:"is_downloaded"`
	DateAdded    string `json:"date_added"`
	DateRead     string `json:"date_read,omitempty"`
}

type IssueCreateRequest struct {
	IssueNumber int    `json:"issue_number"`
	Title       string `json:"title,omitempty"`
	IsRead      bool   `json:"is_read"`
}

type IssueUpdateRequest struct {
	IsRead bool `json:"is_read"`
}
