package collection

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rrezende/hq-manager-cli/pkg/models"
)

// Filter tags for the collection view. Filtering is computed from the
// read/total counters, never from the backend "status" string, so the list
// stays consistent with what the cards display.
const (
	FilterAll       = "all"
	FilterParaLer   = "para_ler"
	FilterLendo     = "lendo"
	FilterConcluida = "concluida"
	FilterSaga      = "saga"
)

// Page sizes for the two fetch strategies: searches use small server pages,
// while the unfiltered load pulls the whole collection in one request so the
// client-side filter predicates see every series.
const (
	SearchPerPage = 20
	FullPerPage   = 1000
)

// View holds the client-side state of the collection screen.
type View struct {
	Series []models.Series
	Filter string
	Query  string
	Page   int
}

func NewView() *View {
	return &View{Filter: FilterAll, Page: 1}
}

// Matches reports whether a series passes the given filter tag.
func Matches(s models.Series, filter string) bool {
	switch filter {
	case FilterParaLer:
		return s.ReadIssues == 0
	case FilterLendo:
		return s.ReadIssues > 0 && s.ReadIssues < s.TotalIssues
	case FilterConcluida:
		return s.TotalIssues > 0 && s.ReadIssues >= s.TotalIssues
	case FilterSaga:
		return s.SeriesType == models.TypeSaga
	default:
		return true
	}
}

// Visible returns the filtered, title-sorted subset for rendering.
func (v *View) Visible() []models.Series {
	out := make([]models.Series, 0, len(v.Series))
	for _, s := range v.Series {
		if Matches(s, v.Filter) {
			out = append(out, s)
		}
	}
	SortByTitle(out)
	return out
}

func (v *View) SetFilter(filter string) {
	switch filter {
	case FilterAll, FilterParaLer, FilterLendo, FilterConcluida, FilterSaga:
		v.Filter = filter
	default:
		v.Filter = FilterAll
	}
}

// newCollator builds the title collator. Loose ignores case and diacritics,
// so "ação" and "Acao" sort together.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.Loose)
}

// SortByTitle sorts in place, case- and diacritic-insensitively. The sort is
// stable so re-sorting an already-sorted list keeps the same order.
func SortByTitle(series []models.Series) {
	c := newCollator()
	sort.SliceStable(series, func(i, j int) bool {
		return c.CompareString(series[i].Title, series[j].Title) < 0
	})
}

// ProgressPercent returns the read progress clamped to [0,100]. A series with
// no published issues reports 0.
func ProgressPercent(s models.Series) int {
	if s.TotalIssues <= 0 {
		return 0
	}
	pct := int(math.Round(float64(s.ReadIssues) / float64(s.TotalIssues) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// ComputedStatus derives the reading status from the counters, mirroring the
// backend's calculate_status rule.
func ComputedStatus(s models.Series) string {
	switch {
	case s.ReadIssues == 0:
		return models.StatusParaLer
	case s.TotalIssues > 0 && s.ReadIssues >= s.TotalIssues:
		return models.StatusConcluida
	default:
		return models.StatusLendo
	}
}

func StatusLabel(status string) string {
	switch status {
	case models.StatusParaLer:
		return "Para Ler"
	case models.StatusLendo:
		return "Lendo"
	case models.StatusConcluida:
		return "Concluída"
	default:
		return status
	}
}

// TypeBadge is the label/emoji pair shown on series cards.
type TypeBadge struct {
	Text  string
	Emoji string
}

func SeriesTypeBadge(seriesType string) TypeBadge {
	switch seriesType {
	case models.TypeFinalizada:
		return TypeBadge{Text: "Finalizada", Emoji: "✓"}
	case models.TypeLancamento:
		return TypeBadge{Text: "Lançamento", Emoji: "🆕"}
	case models.TypeEdicaoEspecial:
		return TypeBadge{Text: "Edição Especial", Emoji: "⭐"}
	case models.TypeSaga:
		return TypeBadge{Text: "Saga", Emoji: "📕"}
	default:
		return TypeBadge{Text: "Em Andamento", Emoji: "📖"}
	}
}

// PerPageFor picks the fetch size for a query: small server pages while
// searching, the whole collection otherwise.
func PerPageFor(query string) int {
	if query != "" {
		return SearchPerPage
	}
	return FullPerPage
}
