package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rrezende/hq-manager-cli/internal/collection"
	"github.com/rrezende/hq-manager-cli/internal/detail"
	"github.com/rrezende/hq-manager-cli/internal/ops"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

var filterCycle = []string{
	collection.FilterAll,
	collection.FilterParaLer,
	collection.FilterLendo,
	collection.FilterConcluida,
	collection.FilterSaga,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case seriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.coll.Series = msg.resp.Items
		m.pagination = &msg.resp.Pagination
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}
		return m, nil

	case statsLoadedMsg:
		if msg.err == nil {
			m.stats = msg.stats
		}
		return m, nil

	case detailLoadedMsg:
		m.loading = false
		// The user may have escaped back to the collection while the load
		// was in flight; do not re-attach the stale detail state.
		if m.view != viewDetail {
			return m, nil
		}
		if msg.err != nil {
			m.setError(msg.err)
			m.view = viewCollection
			return m, nil
		}
		m.selected = msg.series
		m.issues = msg.issues
		m.rebuildLadder()
		if m.slotIdx >= len(m.ladder.Slots) {
			m.slotIdx = 0
		}
		return m, nil

	case searchDoneMsg:
		// Debounce: only the tick for the latest keystroke fires a query.
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.coll.Query = m.search.Value()
		m.coll.Page = 1
		m.cursor = 0
		m.loading = true
		return m, m.loadSeries()

	case toggleResultMsg:
		m.busy = false
		// Escaping the detail view mid-flight clears the selection; the
		// toggle still landed (or failed) server-side, so refresh the
		// collection instead of touching detail state.
		if m.view != viewDetail || m.selected == nil {
			return m, tea.Batch(m.loadSeries(), m.loadStats())
		}
		if msg.err != nil {
			// Revert the optimistic flip: the ladder is rebuilt from the
			// unchanged issue records.
			m.rebuildLadder()
			m.setError(msg.err)
			return m, nil
		}
		for i := range m.issues {
			if m.issues[i].ID == msg.issueID {
				m.issues[i] = *msg.issue
			}
		}
		m.rebuildLadder()
		m.status = "Atualizado"
		m.statusErr = false
		return m, tea.Batch(m.loadDetail(m.selected.ID), m.loadStats())

	case opDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			if m.view == viewDetail && m.selected != nil {
				return m, m.loadDetail(m.selected.ID)
			}
			return m, nil
		}
		if msg.rec != nil {
			m.undo.Push(*msg.rec)
		}
		m.status = "✓ " + msg.label
		m.statusErr = false
		cmds := []tea.Cmd{m.loadSeries(), m.loadStats()}
		if m.view == viewDetail && m.selected != nil {
			cmds = append(cmds, m.loadDetail(m.selected.ID))
		}
		return m, tea.Batch(cmds...)

	case undoDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		switch msg.rec.Type {
		case ops.UndoAddIssue:
			m.status = "✓ Edição desfeita"
		case ops.UndoIncreaseTotal:
			m.status = "✓ Total restaurado"
		}
		m.statusErr = false
		cmds := []tea.Cmd{m.loadSeries(), m.loadStats()}
		if m.view == viewDetail && m.selected != nil {
			cmds = append(cmds, m.loadDetail(m.selected.ID))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch m.view {
	case viewCollection:
		return m.handleCollectionKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		modal := m.modal
		m.modal = modalNone
		m.busy = true
		switch modal {
		case modalConfirmDeleteSeries:
			if s := m.selectedCard(); s != nil {
				return m, m.deleteSeries(s.ID)
			}
		case modalConfirmDeleteIssue:
			if m.selected != nil {
				return m, m.deleteIssue(m.selected.ID, m.confirmTarget)
			}
		case modalConfirmRecalculate:
			if m.selected != nil {
				return m, m.recalculate(m.selected.ID)
			}
		}
		m.busy = false
		return m, nil
	case "n", "esc":
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		m.searchSeq++
		return m, m.scheduleSearch(m.searchSeq)
	}
	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.searchSeq++
		return m, tea.Batch(cmd, m.scheduleSearch(m.searchSeq))
	}
	return m, cmd
}

func (m Model) handleCollectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if s := m.selectedCard(); s != nil {
			m.view = viewDetail
			m.slotIdx = 0
			m.loading = true
			return m, m.loadDetail(s.ID)
		}
		return m, nil
	case "tab":
		m.coll.SetFilter(nextFilter(m.coll.Filter))
		m.cursor = 0
		return m, nil
	case "/":
		m.search.Focus()
		return m, nil
	case "left", "h":
		if m.coll.Query != "" && m.coll.Page > 1 {
			m.coll.Page--
			m.loading = true
			return m, m.loadSeries()
		}
		return m, nil
	case "right", "l":
		if m.coll.Query != "" && m.pagination != nil && m.coll.Page < m.pagination.TotalPages {
			m.coll.Page++
			m.loading = true
			return m, m.loadSeries()
		}
		return m, nil
	case "d":
		if m.busy {
			return m, nil
		}
		if m.selectedCard() != nil {
			m.modal = modalConfirmDeleteSeries
		}
		return m, nil
	case "u":
		if m.busy {
			return m, nil
		}
		if m.undo.Len() == 0 {
			m.status = "Nada para desfazer"
			m.statusErr = false
			return m, nil
		}
		m.busy = true
		return m, m.runUndo()
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadSeries(), m.loadStats())
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.view = viewCollection
		m.selected = nil
		m.issues = nil
		m.loading = true
		return m, tea.Batch(m.loadSeries(), m.loadStats())
	case "left", "h":
		if m.slotIdx > 0 {
			m.slotIdx--
		}
		return m, nil
	case "right", "l":
		if m.slotIdx < len(m.ladder.Slots)-1 {
			m.slotIdx++
		}
		return m, nil
	case "enter", " ":
		if m.busy || m.selected == nil || m.slotIdx >= len(m.ladder.Slots) {
			return m, nil
		}
		slot := m.ladder.Slots[m.slotIdx]
		if slot.Issue != nil {
			// Optimistic flip, reverted on failure.
			prevRead := slot.Issue.IsRead
			if prevRead {
				m.ladder.Slots[m.slotIdx].State = detail.SlotDownloaded
			} else {
				m.ladder.Slots[m.slotIdx].State = detail.SlotRead
			}
			m.busy = true
			return m, m.toggleIssue(m.selected.ID, slot.Issue.ID, prevRead)
		}
		m.busy = true
		return m, m.addIssue(m.selected.ID, slot.Number)
	case "x":
		if m.busy || m.selected == nil || m.slotIdx >= len(m.ladder.Slots) {
			return m, nil
		}
		if slot := m.ladder.Slots[m.slotIdx]; slot.Issue != nil {
			m.confirmTarget = slot.Issue.ID
			m.modal = modalConfirmDeleteIssue
		}
		return m, nil
	case "n":
		if m.busy || m.selected == nil {
			return m, nil
		}
		m.busy = true
		return m, m.increaseTotal(*m.selected)
	case "s":
		if m.busy || m.selected == nil {
			return m, nil
		}
		m.busy = true
		return m, m.syncMissing(m.selected.ID)
	case "R":
		if m.busy || m.selected == nil {
			return m, nil
		}
		m.modal = modalConfirmRecalculate
		return m, nil
	case "u":
		if m.busy {
			return m, nil
		}
		if m.undo.Len() == 0 {
			m.status = "Nada para desfazer"
			m.statusErr = false
			return m, nil
		}
		m.busy = true
		return m, m.runUndo()
	}
	return m, nil
}

func nextFilter(current string) string {
	for i, f := range filterCycle {
		if f == current {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return collection.FilterAll
}

func (m *Model) rebuildLadder() {
	if m.selected != nil {
		m.ladder = detail.Build(*m.selected, m.issues)
	}
}

func (m *Model) setError(err error) {
	m.status = "✗ " + err.Error()
	m.statusErr = true
}

func (m Model) visible() []models.Series {
	return m.coll.Visible()
}

func (m Model) selectedCard() *models.Series {
	cards := m.visible()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return nil
	}
	return &cards[m.cursor]
}
