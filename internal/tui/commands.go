package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rrezende/hq-manager-cli/internal/collection"
	"github.com/rrezende/hq-manager-cli/internal/ops"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

type seriesLoadedMsg struct {
	resp *models.SeriesListResponse
	err  error
}

type statsLoadedMsg struct {
	stats *models.Stats
	err   error
}

type detailLoadedMsg struct {
	series *models.Series
	issues []models.Issue
	err    error
}

type searchDoneMsg struct{ seq int }

type toggleResultMsg struct {
	issueID  int
	prevRead bool
	issue    *models.Issue
	err      error
}

type opDoneMsg struct {
	label string
	rec   *ops.UndoRecord
	err   error
}

type undoDoneMsg struct {
	rec ops.UndoRecord
	err error
}

func (m Model) loadSeries() tea.Cmd {
	query := m.coll.Query
	page := m.coll.Page
	perPage := collection.PerPageFor(query)
	client := m.client
	return func() tea.Msg {
		resp, err := client.ListSeries(context.Background(), query, page, perPage)
		return seriesLoadedMsg{resp: resp, err: err}
	}
}

func (m Model) loadStats() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stats, err := client.Stats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m Model) loadDetail(seriesID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		series, err := client.GetSeries(context.Background(), seriesID)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		issues, err := client.ListIssues(context.Background(), seriesID)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{series: series, issues: issues}
	}
}

func (m Model) scheduleSearch(seq int) tea.Cmd {
	return tea.Tick(searchDebounce*time.Millisecond, func(time.Time) tea.Msg {
		return searchDoneMsg{seq: seq}
	})
}

func (m Model) toggleIssue(seriesID, issueID int, prevRead bool) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		issue, err := runner.ToggleRead(context.Background(), seriesID, issueID, !prevRead)
		return toggleResultMsg{issueID: issueID, prevRead: prevRead, issue: issue, err: err}
	}
}

func (m Model) addIssue(seriesID, number int) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		_, rec, err := runner.AddIssue(context.Background(), seriesID, number, false)
		if err != nil {
			return opDoneMsg{label: "adicionar edição", err: err}
		}
		return opDoneMsg{label: "Edição adicionada", rec: &rec}
	}
}

func (m Model) deleteIssue(seriesID, issueID int) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		err := runner.DeleteIssue(context.Background(), seriesID, issueID)
		return opDoneMsg{label: "Edição removida", err: err}
	}
}

func (m Model) deleteSeries(seriesID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteSeries(context.Background(), seriesID)
		return opDoneMsg{label: "Série removida", err: err}
	}
}

func (m Model) increaseTotal(series models.Series) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		_, rec, err := runner.IncreaseTotal(context.Background(), series)
		if err != nil {
			return opDoneMsg{label: "anunciar edição", err: err}
		}
		return opDoneMsg{label: "Nova edição anunciada", rec: &rec}
	}
}

func (m Model) syncMissing(seriesID int) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		result, err := runner.SyncMissing(context.Background(), seriesID)
		if err != nil {
			return opDoneMsg{label: "sincronizar", err: err}
		}
		label := "Sincronizado"
		if result.Failed > 0 {
			label = "Sincronizado com falhas"
		}
		return opDoneMsg{label: label}
	}
}

func (m Model) recalculate(seriesID int) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		result, err := runner.RecalculateFromTotals(context.Background(), seriesID)
		if err != nil {
			return opDoneMsg{label: "recalcular", err: err}
		}
		label := "Edições recalculadas"
		if result.Failed > 0 {
			label = "Recalculado com falhas"
		}
		return opDoneMsg{label: label}
	}
}

func (m Model) runUndo() tea.Cmd {
	runner := m.runner
	stack := m.undo
	return func() tea.Msg {
		rec, err := runner.Undo(context.Background(), stack)
		return undoDoneMsg{rec: rec, err: err}
	}
}
