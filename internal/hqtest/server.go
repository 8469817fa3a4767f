// Package hqtest provides an in-process stand-in for the HQ Manager backend,
// implementing the REST contract against in-memory maps. The real backend
// owns persistence and business rules; tests point an api.Client at this one.
package hqtest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rrezende/hq-manager-cli/pkg/models"
)

type Server struct {
	URL string

	mu         sync.Mutex
	series     map[int]*models.Series
	issues     map[int]*models.Issue
	nextSeries int
	nextIssue  int

	// FailCreateNumbers makes POST /series/:id/issues fail with 500 for the
	// given issue numbers, to exercise partial bulk failures.
	FailCreateNumbers map[int]bool
	// FailNextPatch makes the next issue PATCH fail with 500.
	FailNextPatch bool
	// CreateGate, when non-nil, makes every issue create signal CreateStarted
	// and then block until the gate is closed. Lets tests hold a bulk
	// operation mid-flight.
	CreateGate    chan struct{}
	CreateStarted chan struct{}

	httpSrv *httptest.Server
}

func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		series:            map[int]*models.Series{},
		issues:            map[int]*models.Issue{},
		nextSeries:        1,
		nextIssue:         1,
		FailCreateNumbers: map[int]bool{},
	}

	router := gin.New()
	// The original backend allows everything; the fake mirrors that.
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/series", s.listSeries)
	router.POST("/series", s.createSeries)
	router.GET("/series/:id", s.getSeries)
	router.PUT("/series/:id", s.updateSeries)
	router.DELETE("/series/:id", s.deleteSeries)
	router.GET("/series/:id/issues", s.listIssues)
	router.POST("/series/:id/issues", s.createIssue)
	router.PATCH("/series/:id/issues/:issueID", s.patchIssue)
	router.DELETE("/series/:id/issues/:issueID", s.deleteIssue)
	router.GET("/stats", s.stats)
	router.POST("/recalculate-all", s.recalculateAll)
	router.POST("/export-excel", s.exportExcel)

	s.httpSrv = httptest.NewServer(router)
	s.URL = s.httpSrv.URL
	return s
}

func (s *Server) Close() { s.httpSrv.Close() }

// Seed inserts a series with stored counters and returns its id.
func (s *Server) Seed(series models.Series) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSeries
	s.nextSeries++
	series.ID = id
	if series.SeriesType == "" {
		series.SeriesType = models.TypeEmAndamento
	}
	series.DateAdded = time.Now().Format("2006-01-02")
	s.series[id] = &series
	return id
}

// SeedIssue inserts an issue record directly.
func (s *Server) SeedIssue(seriesID, number int, isRead bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextIssue
	s.nextIssue++
	s.issues[id] = &models.Issue{
		ID:           id,
		SeriesID:     seriesID,
		IssueNumber:  number,
		IsRead:       isRead,
		IsDownloaded: true,
		DateAdded:    time.Now().Format("2006-01-02"),
	}
	return id
}

// IssueCount returns how many issue records a series has.
func (s *Server) IssueCount(seriesID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, issue := range s.issues {
		if issue.SeriesID == seriesID {
			n++
		}
	}
	return n
}

func calculateStatus(read, total int) string {
	switch {
	case read == 0:
		return models.StatusParaLer
	case read >= total && total > 0:
		return models.StatusConcluida
	default:
		return models.StatusLendo
	}
}

// response applies the hybrid counter rule: when issue records exist they are
// authoritative, otherwise the stored (imported) counters are served.
func (s *Server) response(series *models.Series) models.Series {
	out := *series

	downloaded, read := 0, 0
	for _, issue := range s.issues {
		if issue.SeriesID != series.ID {
			continue
		}
		downloaded++
		if issue.IsRead {
			read++
		}
	}
	if downloaded > 0 {
		out.DownloadedIssues = downloaded
		out.ReadIssues = read
	}
	out.Status = calculateStatus(out.ReadIssues, out.TotalIssues)
	return out
}

func (s *Server) listSeries(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(c.Query("search"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	var items []models.Series
	for _, series := range s.series {
		if search != "" {
			haystack := strings.ToLower(series.Title + " " + series.Author + " " + series.Publisher)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		items = append(items, s.response(series))
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})

	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, models.SeriesListResponse{
		Items: items[start:end],
		Pagination: models.PaginationMeta{
			Page:       page,
			TotalPages: totalPages,
			TotalItems: total,
		},
	})
}

func (s *Server) getSeries(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := strconv.Atoi(c.Param("id"))
	series, ok := s.series[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Série não encontrada"})
		return
	}
	c.JSON(http.StatusOK, s.response(series))
}

func (s *Server) createSeries(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var req models.SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	id := s.nextSeries
	s.nextSeries++
	series := requestToSeries(id, req)
	series.DateAdded = time.Now().Format("2006-01-02")
	s.series[id] = &series

	c.JSON(http.StatusOK, s.response(&series))
}

func (s *Server) updateSeries(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := strconv.Atoi(c.Param("id"))
	existing, ok := s.series[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Série não encontrada"})
		return
	}

	var req models.SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	series := requestToSeries(id, req)
	series.DateAdded = existing.DateAdded
	series.DateUpdated = time.Now().Format("2006-01-02")
	s.series[id] = &series

	c.JSON(http.StatusOK, s.response(&series))
}

func requestToSeries(id int, req models.SeriesRequest) models.Series {
	seriesType := req.SeriesType
	if seriesType == "" {
		seriesType = models.TypeEmAndamento
	}
	return models.Series{
		ID:               id,
		Title:            req.Title,
		Author:           req.Author,
		Publisher:        req.Publisher,
		TotalIssues:      req.TotalIssues,
		DownloadedIssues: req.DownloadedIssues,
		ReadIssues:       req.ReadIssues,
		IsCompleted:      req.IsCompleted,
		SeriesType:       seriesType,
		CoverURL:         req.CoverURL,
		Notes:            req.Notes,
		MainIssues:       req.MainIssues,
		TieInIssues:      req.TieInIssues,
		SagaEditions:     req.SagaEditions,
		ReadingStartsAt:  req.ReadingStartsAt,
	}
}

func (s *Server) deleteSeries(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := strconv.Atoi(c.Param("id"))
	if _, ok := s.series[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Série não encontrada"})
		return
	}
	delete(s.series, id)
	for issueID, issue := range s.issues {
		if issue.SeriesID == id {
			delete(s.issues, issueID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) listIssues(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := strconv.Atoi(c.Param("id"))
	issues := []models.Issue{}
	for _, issue := range s.issues {
		if issue.SeriesID == id {
			issues = append(issues, *issue)
		}
	}
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].IssueNumber < issues[j].IssueNumber
	})
	c.JSON(http.StatusOK, issues)
}

func (s *Server) createIssue(c *gin.Context) {
	s.mu.Lock()
	gate, started := s.CreateGate, s.CreateStarted
	s.mu.Unlock()
	if gate != nil {
		if started != nil {
			started <- struct{}{}
		}
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := strconv.Atoi(c.Param("id"))
	if _, ok := s.series[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Série não encontrada"})
		return
	}

	var req models.IssueCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	if s.FailCreateNumbers[req.IssueNumber] {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "erro interno"})
		return
	}
	for _, issue := range s.issues {
		if issue.SeriesID == id && issue.IssueNumber == req.IssueNumber {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Edição já existe"})
			return
		}
	}

	issueID := s.nextIssue
	s.nextIssue++
	issue := &models.Issue{
		ID:           issueID,
		SeriesID:     id,
		IssueNumber:  req.IssueNumber,
		Title:        req.Title,
		IsRead:       req.IsRead,
		IsDownloaded: true,
		DateAdded:    time.Now().Format("2006-01-02"),
	}
	if req.IsRead {
		issue.DateRead = issue.DateAdded
	}
	s.issues[issueID] = issue

	c.JSON(http.StatusOK, issue)
}

func (s *Server) patchIssue(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNextPatch {
		s.FailNextPatch = false
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "erro interno"})
		return
	}

	seriesID, _ := strconv.Atoi(c.Param("id"))
	issueID, _ := strconv.Atoi(c.Param("issueID"))
	issue, ok := s.issues[issueID]
	if !ok || issue.SeriesID != seriesID {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Edição não encontrada"})
		return
	}

	var req models.IssueUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	issue.IsRead = req.IsRead
	if req.IsRead {
		issue.DateRead = time.Now().Format("2006-01-02")
	} else {
		issue.DateRead = ""
	}
	c.JSON(http.StatusOK, issue)
}

func (s *Server) deleteIssue(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seriesID, _ := strconv.Atoi(c.Param("id"))
	issueID, _ := strconv.Atoi(c.Param("issueID"))
	issue, ok := s.issues[issueID]
	if !ok || issue.SeriesID != seriesID {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Edição não encontrada"})
		return
	}
	delete(s.issues, issueID)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) stats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats models.Stats
	for _, series := range s.series {
		resp := s.response(series)
		stats.Total++
		switch resp.Status {
		case models.StatusParaLer:
			stats.ParaLer++
		case models.StatusLendo:
			stats.Lendo++
		case models.StatusConcluida:
			stats.Concluida++
		}
	}
	c.JSON(http.StatusOK, stats)
}

// recalculateAll rewrites stored counters from issue records, for series that
// have any. Saga sub-counters are never touched.
func (s *Server) recalculateAll(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result models.RecalculateAllResult
	for _, series := range s.series {
		result.Total++

		downloaded, read := 0, 0
		for _, issue := range s.issues {
			if issue.SeriesID != series.ID {
				continue
			}
			downloaded++
			if issue.IsRead {
				read++
			}
		}
		if downloaded == 0 {
			continue
		}
		if series.DownloadedIssues != downloaded || series.ReadIssues != read {
			series.DownloadedIssues = downloaded
			series.ReadIssues = read
			result.Recalculated++
		}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) exportExcel(c *gin.Context) {
	// Enough of an xlsx to be saved by the client; content is not inspected.
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		[]byte("PK\x03\x04hqtest"))
}
