package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rrezende/hq-manager-cli/internal/api"
	"github.com/rrezende/hq-manager-cli/internal/collection"
	"github.com/rrezende/hq-manager-cli/internal/detail"
	"github.com/rrezende/hq-manager-cli/internal/ops"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

func newTestModel() Model {
	return New(api.NewClient("http://127.0.0.1:1"), nil, collection.FilterAll)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSearchDebounceIgnoresStaleTick(t *testing.T) {
	m := newTestModel()
	m.search.SetValue("batman")
	m.searchSeq = 2

	mm, cmd := m.Update(searchDoneMsg{seq: 1})
	m = mm.(Model)
	if cmd != nil {
		t.Fatal("stale tick must not fire a query")
	}
	if m.coll.Query != "" {
		t.Fatalf("stale tick changed the query to %q", m.coll.Query)
	}

	mm, cmd = m.Update(searchDoneMsg{seq: 2})
	m = mm.(Model)
	if cmd == nil {
		t.Fatal("latest tick must fire the query")
	}
	if m.coll.Query != "batman" {
		t.Fatalf("query = %q, want %q", m.coll.Query, "batman")
	}
	if m.coll.Page != 1 {
		t.Fatalf("new search must reset to page 1, got %d", m.coll.Page)
	}
}

func TestSearchKeystrokeSchedulesDebounce(t *testing.T) {
	m := newTestModel()
	m.search.Focus()
	seqBefore := m.searchSeq

	mm, cmd := m.Update(keyRune('b'))
	m = mm.(Model)
	if m.searchSeq != seqBefore+1 {
		t.Fatalf("searchSeq = %d, want %d", m.searchSeq, seqBefore+1)
	}
	if cmd == nil {
		t.Fatal("keystroke should schedule a debounce tick")
	}
}

func TestToggleOptimisticThenRevertOnError(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, Title: "Hellboy", TotalIssues: 2}
	m.issues = []models.Issue{{ID: 7, SeriesID: 1, IssueNumber: 1, IsRead: true, IsDownloaded: true}}
	m.rebuildLadder()
	m.slotIdx = 0

	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	if cmd == nil {
		t.Fatal("toggle should dispatch a request")
	}
	if !m.busy {
		t.Fatal("model must be busy while the toggle is in flight")
	}
	if m.ladder.Slots[0].State != detail.SlotDownloaded {
		t.Fatalf("optimistic flip missing, slot state = %v", m.ladder.Slots[0].State)
	}

	mm, _ = m.Update(toggleResultMsg{issueID: 7, prevRead: true, err: errors.New("erro interno")})
	m = mm.(Model)
	if m.busy {
		t.Fatal("busy must clear after the result")
	}
	if m.ladder.Slots[0].State != detail.SlotRead {
		t.Fatalf("failed toggle must revert, slot state = %v", m.ladder.Slots[0].State)
	}
	if !m.statusErr {
		t.Fatal("failure should surface in the status line")
	}
}

func TestEnterOnMissingSlotAddsIssue(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, TotalIssues: 3}
	m.issues = nil
	m.rebuildLadder()
	m.slotIdx = 1

	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	if cmd == nil {
		t.Fatal("enter on a missing slot should dispatch a create")
	}
	if !m.busy {
		t.Fatal("model must be busy while the create is in flight")
	}
}

func TestBusyIgnoresMutationKeys(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, TotalIssues: 3}
	m.rebuildLadder()
	m.busy = true

	for _, key := range []tea.KeyMsg{keyRune('n'), keyRune('s'), keyRune('x'), keyRune('u'), {Type: tea.KeyEnter}} {
		mm, cmd := m.Update(key)
		m = mm.(Model)
		if cmd != nil {
			t.Fatalf("key %q dispatched a command while busy", key.String())
		}
		if m.modal != modalNone {
			t.Fatalf("key %q opened a modal while busy", key.String())
		}
	}
}

func TestBusyStillAllowsNavigation(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, TotalIssues: 3}
	m.rebuildLadder()
	m.busy = true
	m.slotIdx = 0

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = mm.(Model)
	if m.slotIdx != 1 {
		t.Fatalf("navigation should work while busy, slotIdx = %d", m.slotIdx)
	}
}

func TestFilterTabCycle(t *testing.T) {
	m := newTestModel()
	if m.coll.Filter != collection.FilterAll {
		t.Fatalf("initial filter = %q", m.coll.Filter)
	}

	want := []string{
		collection.FilterParaLer,
		collection.FilterLendo,
		collection.FilterConcluida,
		collection.FilterSaga,
		collection.FilterAll,
	}
	for _, w := range want {
		mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = mm.(Model)
		if m.coll.Filter != w {
			t.Fatalf("filter = %q, want %q", m.coll.Filter, w)
		}
	}
}

func TestModalCancel(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, TotalIssues: 3}
	m.modal = modalConfirmRecalculate

	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mm.(Model)
	if m.modal != modalNone {
		t.Fatal("esc should close the modal")
	}
	if cmd != nil || m.busy {
		t.Fatal("cancel must not run the operation")
	}
}

func TestModalConfirmDispatches(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, TotalIssues: 3}
	m.confirmTarget = 42
	m.modal = modalConfirmDeleteIssue

	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	if m.modal != modalNone {
		t.Fatal("confirm should close the modal")
	}
	if cmd == nil {
		t.Fatal("confirm should dispatch the delete")
	}
	if !m.busy {
		t.Fatal("model must be busy while the delete runs")
	}
}

func TestUndoKeyWithEmptyStack(t *testing.T) {
	m := newTestModel()

	mm, cmd := m.Update(keyRune('u'))
	m = mm.(Model)
	if cmd != nil {
		t.Fatal("empty stack must not dispatch an undo")
	}
	if m.busy {
		t.Fatal("empty undo must not mark the model busy")
	}
	if m.status == "" {
		t.Fatal("user should be told there is nothing to undo")
	}
}

func TestSeriesLoadedClampsCursor(t *testing.T) {
	m := newTestModel()
	m.cursor = 5

	mm, _ := m.Update(seriesLoadedMsg{resp: &models.SeriesListResponse{
		Items: []models.Series{{ID: 1, Title: "A", TotalIssues: 1}},
	}})
	m = mm.(Model)
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after shrink", m.cursor)
	}
}

func TestOpDonePushesUndoRecord(t *testing.T) {
	m := newTestModel()
	rec := ops.UndoRecord{Type: ops.UndoAddIssue, SeriesID: 1, IssueID: 2, IssueNumber: 3}

	mm, _ := m.Update(opDoneMsg{label: "ok", rec: &rec})
	m = mm.(Model)
	if m.undo.Len() != 1 {
		t.Fatalf("undo stack len = %d, want 1", m.undo.Len())
	}
}

func TestToggleResultAfterLeavingDetail(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, Title: "Hellboy", TotalIssues: 2}
	m.issues = []models.Issue{{ID: 7, SeriesID: 1, IssueNumber: 1, IsRead: false, IsDownloaded: true}}
	m.rebuildLadder()
	m.slotIdx = 0

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mm.(Model)
	if m.selected != nil {
		t.Fatal("esc should clear the selection")
	}

	// The in-flight toggle lands after the user already left the view.
	mm, cmd := m.Update(toggleResultMsg{
		issueID:  7,
		prevRead: false,
		issue:    &models.Issue{ID: 7, SeriesID: 1, IssueNumber: 1, IsRead: true, IsDownloaded: true},
	})
	m = mm.(Model)
	if m.busy {
		t.Fatal("busy must clear after the result")
	}
	if m.view != viewCollection || m.selected != nil {
		t.Fatal("late toggle result must not re-enter the detail view")
	}
	if cmd == nil {
		t.Fatal("collection should be refreshed with the toggle's outcome")
	}
}

func TestToggleErrorAfterLeavingDetail(t *testing.T) {
	m := newTestModel()
	m.view = viewDetail
	m.selected = &models.Series{ID: 1, TotalIssues: 1}
	m.issues = []models.Issue{{ID: 3, SeriesID: 1, IssueNumber: 1, IsRead: true, IsDownloaded: true}}
	m.rebuildLadder()

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mm.(Model)

	mm, _ = m.Update(toggleResultMsg{issueID: 3, prevRead: true, err: errors.New("erro interno")})
	m = mm.(Model)
	if m.busy {
		t.Fatal("busy must clear after a failed result")
	}
}

func TestStaleDetailLoadIgnoredAfterEscape(t *testing.T) {
	m := newTestModel()
	m.view = viewCollection

	mm, _ := m.Update(detailLoadedMsg{
		series: &models.Series{ID: 9, Title: "Fantasma", TotalIssues: 4},
		issues: []models.Issue{{ID: 1, SeriesID: 9, IssueNumber: 1}},
	})
	m = mm.(Model)
	if m.selected != nil || m.issues != nil {
		t.Fatal("detail state must not be re-attached outside the detail view")
	}
}
