package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rrezende/hq-manager-cli/internal/collection"
	"github.com/rrezende/hq-manager-cli/internal/detail"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

func (m Model) View() string {
	if m.modal != modalNone {
		return m.renderModal()
	}
	switch m.view {
	case viewDetail:
		return m.renderDetail()
	default:
		return m.renderCollection()
	}
}

func (m Model) renderCollection() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("📚 Minha Coleção de HQs"))
	b.WriteString("\n")
	if m.stats != nil {
		b.WriteString(styleMuted.Render(fmt.Sprintf(
			"Total %d · Para Ler %d · Lendo %d · Concluídas %d",
			m.stats.Total, m.stats.ParaLer, m.stats.Lendo, m.stats.Concluida)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("🔍 " + m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderFilterTabs())
	b.WriteString("\n\n")

	visible := m.visible()
	if m.loading {
		b.WriteString(styleMuted.Render("Carregando..."))
		b.WriteString("\n")
	} else if len(visible) == 0 {
		b.WriteString(styleMuted.Render("Nenhuma série encontrada."))
		b.WriteString("\n")
	}
	for i, s := range visible {
		b.WriteString(m.renderCard(s, i == m.cursor))
		b.WriteString("\n")
	}

	if m.coll.Query != "" && m.pagination != nil && m.pagination.TotalPages > 1 {
		b.WriteString(styleMuted.Render(fmt.Sprintf(
			"Página %d/%d (%d resultados)  ←/→ para navegar",
			m.pagination.Page, m.pagination.TotalPages, m.pagination.TotalItems)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString(styleMuted.Render("enter: abrir  tab: filtro  /: buscar  d: excluir  u: desfazer  q: sair"))
	return b.String()
}

func (m Model) renderFilterTabs() string {
	labels := map[string]string{
		collection.FilterAll:       "Todas",
		collection.FilterParaLer:   "Para Ler",
		collection.FilterLendo:     "Lendo",
		collection.FilterConcluida: "Concluídas",
		collection.FilterSaga:      "Sagas",
	}
	tabs := make([]string, 0, len(filterCycle))
	for _, f := range filterCycle {
		if f == m.coll.Filter {
			tabs = append(tabs, styleFilterTabActive.Render(labels[f]))
		} else {
			tabs = append(tabs, styleFilterTab.Render(labels[f]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderCard(s models.Series, selected bool) string {
	badge := collection.SeriesTypeBadge(s.SeriesType)
	status := collection.StatusLabel(collection.ComputedStatus(s))
	pct := collection.ProgressPercent(s)

	line1 := fmt.Sprintf("%s %s", badge.Emoji, s.Title)
	if s.Author != "" {
		line1 += styleMuted.Render("  " + s.Author)
	}
	line2 := fmt.Sprintf("%s %d%%  %d/%d lidas · %d baixadas  [%s]",
		progressBar(pct, 20), pct, s.ReadIssues, s.TotalIssues, s.DownloadedIssues, status)

	content := line1 + "\n" + line2
	if selected {
		return styleCardSelected.Render(content)
	}
	return styleCard.Render(content)
}

func (m Model) renderDetail() string {
	if m.selected == nil {
		return styleMuted.Render("Carregando...")
	}
	s := *m.selected
	badge := collection.SeriesTypeBadge(s.SeriesType)

	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s %s", badge.Emoji, s.Title)))
	b.WriteString("\n")
	meta := badge.Text
	if s.Author != "" {
		meta += " · " + s.Author
	}
	if s.Publisher != "" {
		meta += " · " + s.Publisher
	}
	b.WriteString(styleMuted.Render(meta))
	b.WriteString("\n\n")

	read, downloaded, missing := m.ladder.Counts()
	b.WriteString(fmt.Sprintf("%d lidas · %d baixadas · %d faltando (total %d)\n",
		read, downloaded, missing, s.TotalIssues))
	if s.SeriesType == models.TypeSaga {
		b.WriteString(styleMuted.Render(fmt.Sprintf(
			"Principais: %d · Tie-ins: %d", s.MainIssues, s.TieInIssues)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderLadder())
	b.WriteString("\n\n")

	if s.Notes != "" {
		b.WriteString(styleMuted.Render("Notas: " + s.Notes))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString(styleMuted.Render("←/→: navegar  enter: ler/baixar  x: excluir  n: anunciar  s: sincronizar  R: recalcular  u: desfazer  esc: voltar"))
	return b.String()
}

// renderLadder lays the issue slots out in rows of ten.
func (m Model) renderLadder() string {
	const perRow = 10
	var rows []string
	var row []string
	for i, slot := range m.ladder.Slots {
		row = append(row, m.renderSlot(slot, i == m.slotIdx))
		if len(row) == perRow {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	if len(rows) == 0 {
		return styleMuted.Render("Nenhuma edição publicada.")
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSlot(slot detail.Slot, selected bool) string {
	var style lipgloss.Style
	var marker string
	switch slot.State {
	case detail.SlotRead:
		style, marker = styleSlotRead, "✓"
	case detail.SlotDownloaded:
		style, marker = styleSlotDownloaded, "○"
	default:
		style, marker = styleSlotMissing, "·"
	}
	if slot.Reading {
		style, marker = styleSlotReading, "▶"
	}
	cell := fmt.Sprintf("%s%3d", marker, slot.Number)
	if selected {
		return style.Reverse(true).Render(cell)
	}
	return style.Render(cell)
}

func (m Model) renderStatus() string {
	if m.busy {
		return styleMuted.Render("⏳ Aguarde...") + "\n"
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError.Render(m.status) + "\n"
	}
	return m.status + "\n"
}

func (m Model) renderModal() string {
	var title, body string
	switch m.modal {
	case modalConfirmDeleteSeries:
		title = "Excluir série"
		if s := m.selectedCard(); s != nil {
			body = fmt.Sprintf("Excluir \"%s\" e todas as suas edições?", s.Title)
		}
	case modalConfirmDeleteIssue:
		title = "Excluir edição"
		body = "Excluir esta edição?"
	case modalConfirmRecalculate:
		title = "Recalcular edições"
		if s := m.selected; s != nil {
			body = fmt.Sprintf("Apagar e recriar as edições de \"%s\" a partir dos totais?", s.Title)
		}
	}
	content := styleTitle.Render(title) + "\n\n" + body + "\n\n" +
		styleMuted.Render("y/enter: confirmar   n/esc: cancelar")
	box := styleModal.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func progressBar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
