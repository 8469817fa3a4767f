package models

// SeriesType values accepted by the backend.
const (
	TypeFinalizada     = "finalizada"
	TypeEmAndamento    = "em_andamento"
	TypeLancamento     = "lancamento"
	TypeEdicaoEspecial = "edicao_especial"
	TypeSaga           = "saga"
)

// Status values computed by the backend from read/total counts.
const (
	StatusParaLer   = "para_ler"
	StatusLendo     = "lendo"
	StatusConcluida = "concluida"
)

type Series struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Author            string `json:"author,omitempty"`
	Publisher         string `json:"publisher,omitempty"`
	TotalIssues       int    `json:"total_issues"`
	DownloadedIssues  int    `json:"downloaded_issues"`
	ReadIssues        int    `json:"read_issues"`
	IsCompleted       bool   `json:"is_completed"`
	SeriesType        string `json:"series_type"`
	CoverURL          string `json:"cover_url,omitempty"`
	Notes             string `json:"notes,omitempty"`
	Status            string `json:"status"`
	DateAdded         string `json:"date_added"`
	DateUpdated       string `json:"date_updated,omitempty"`
	MainIssues        int    `json:"main_issues"`
	TieInIssues       int    `json:"tie_in_issues"`
	SagaEditions      string `json:"saga_editions,omitempty"`
	ReadingStartsAt   int    `json:"reading_starts_at_issue,omitempty"`
}

// SeriesRequest is the create/update payload. The backend treats PUT as a
// full replace, so every field is sent on edit.
type SeriesRequest struct {
	Title            string `json:"title"`
	Author           string `json:"author,omitempty"`
	Publisher        string `json:"publisher,omitempty"`
	TotalIssues      int    `json:"total_issues"`
	DownloadedIssues int    `json:"downloaded_issues"`
	ReadIssues       int    `json:"read_issues"`
	IsCompleted      bool   `json:"is_completed"`
	SeriesType       string `json:"series_type"`
	CoverURL         string `json:"cover_url,omitempty"`
	Notes            string `json:"notes,omitempty"`
	MainIssues       int    `json:"main_issues"`
	TieInIssues      int    `json:"tie_in_issues"`
	SagaEditions     string `json:"saga_editions,omitempty"`
	ReadingStartsAt  int    `json:"reading_starts_at_issue,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

type SeriesListResponse struct {
	Items      []Series       `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// UpdateRequest builds a full-replace payload carrying the series' current
// values, for callers that only change one field before PUT.
func (s Series) UpdateRequest() SeriesRequest {
	return SeriesRequest{
		Title:            s.Title,
		Author:           s.Author,
		Publisher:        s.Publisher,
		TotalIssues:      s.TotalIssues,
		DownloadedIssues: s.DownloadedIssues,
		ReadIssues:       s.ReadIssues,
		IsCompleted:      s.IsCompleted,
		SeriesType:       s.SeriesType,
		CoverURL:         s.CoverURL,
		Notes:            s.Notes,
		MainIssues:       s.MainIssues,
		TieInIssues:      s.TieInIssues,
		SagaEditions:     s.SagaEditions,
		ReadingStartsAt:  s.ReadingStartsAt,
	}
}
