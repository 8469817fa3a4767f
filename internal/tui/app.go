package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rrezende/hq-manager-cli/internal/api"
	"github.com/rrezende/hq-manager-cli/internal/collection"
	"github.com/rrezende/hq-manager-cli/internal/detail"
	"github.com/rrezende/hq-manager-cli/internal/ops"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

type viewMode int

const (
	viewCollection viewMode = iota
	viewDetail
)

type modalMode int

const (
	modalNone modalMode = iota
	modalConfirmDeleteSeries
	modalConfirmDeleteIssue
	modalConfirmRecalculate
)

// searchDebounce is how long after the last keystroke the query fires.
const searchDebounce = 300

type Model struct {
	client *api.Client
	runner *ops.Runner

	view  viewMode
	modal modalMode

	width  int
	height int

	// Collection state.
	coll       *collection.View
	pagination *models.PaginationMeta
	stats      *models.Stats
	cursor     int
	search     textinput.Model
	// searchSeq invalidates stale debounce timers; only the tick carrying
	// the latest seq triggers a reload.
	searchSeq int

	// Detail state.
	selected *models.Series
	issues   []models.Issue
	ladder   detail.Ladder
	slotIdx  int

	// busy guards mutations: while a request is in flight, mutation keys
	// are ignored so bulk operations never overlap.
	busy    bool
	loading bool

	undo *ops.UndoStack

	status    string
	statusErr bool

	confirmTarget int // issue id for modalConfirmDeleteIssue
}

// New builds the model. initialFilter selects the filter tab the collection
// opens on; unknown values fall back to showing everything.
func New(client *api.Client, undo *ops.UndoStack, initialFilter string) Model {
	search := textinput.New()
	search.Placeholder = "Buscar por título ou autor..."
	search.CharLimit = 120
	search.Width = 40

	if undo == nil {
		undo = &ops.UndoStack{}
	}

	coll := collection.NewView()
	coll.SetFilter(initialFilter)

	return Model{
		client: client,
		runner: ops.NewRunner(client),
		coll:   coll,
		search: search,
		undo:   undo,
	}
}

// UndoStack exposes the stack so the caller can persist it after the
// program exits.
func (m Model) UndoStack() *ops.UndoStack { return m.undo }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSeries(), m.loadStats())
}

func Run(client *api.Client, undo *ops.UndoStack, initialFilter string) (*ops.UndoStack, error) {
	p := tea.NewProgram(New(client, undo, initialFilter), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return undo, fmt.Errorf("tui exited: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.UndoStack(), nil
	}
	return undo, nil
}
