package collection_test

import (
	"testing"

	"github.com/rrezende/hq-manager-cli/internal/collection"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

func series(title string, total, read int) models.Series {
	return models.Series{Title: title, TotalIssues: total, ReadIssues: read}
}

func TestMatchesStatusFiltersPartition(t *testing.T) {
	cases := []models.Series{
		series("a", 10, 0),
		series("b", 10, 3),
		series("c", 10, 10),
		series("d", 10, 12),
		series("e", 0, 0),
	}

	statusFilters := []string{
		collection.FilterParaLer,
		collection.FilterLendo,
		collection.FilterConcluida,
	}

	for _, s := range cases {
		matched := 0
		for _, f := range statusFilters {
			if collection.Matches(s, f) {
				matched++
			}
		}
		if matched != 1 {
			t.Errorf("series %q (read=%d total=%d) matched %d status filters, want exactly 1",
				s.Title, s.ReadIssues, s.TotalIssues, matched)
		}
		if !collection.Matches(s, collection.FilterAll) {
			t.Errorf("series %q must always match the all filter", s.Title)
		}
	}
}

func TestMatchesSagaByType(t *testing.T) {
	saga := models.Series{Title: "Crise", SeriesType: models.TypeSaga, TotalIssues: 60, ReadIssues: 60}
	if !collection.Matches(saga, collection.FilterSaga) {
		t.Fatal("saga series must match the saga filter")
	}
	if !collection.Matches(saga, collection.FilterConcluida) {
		t.Fatal("saga filter is orthogonal to status, series should still match concluida")
	}
	if collection.Matches(series("x", 1, 0), collection.FilterSaga) {
		t.Fatal("non-saga series must not match the saga filter")
	}
}

func TestSortByTitleIgnoresCaseAndDiacritics(t *testing.T) {
	items := []models.Series{
		series("Zenith", 1, 0),
		series("órbita", 1, 0),
		series("água", 1, 0),
		series("Ação", 1, 0),
	}
	collection.SortByTitle(items)

	want := []string{"Ação", "água", "órbita", "Zenith"}
	for i, w := range want {
		if items[i].Title != w {
			t.Fatalf("position %d: got %q, want %q", i, items[i].Title, w)
		}
	}
}

func TestSortByTitleIdempotent(t *testing.T) {
	items := []models.Series{
		series("Batman", 1, 0),
		series("batman", 1, 0),
		series("Akira", 1, 0),
	}
	collection.SortByTitle(items)
	first := make([]string, len(items))
	for i, s := range items {
		first[i] = s.Title
	}

	collection.SortByTitle(items)
	for i, s := range items {
		if s.Title != first[i] {
			t.Fatalf("re-sort changed order at %d: %q vs %q", i, s.Title, first[i])
		}
	}
}

func TestVisibleAppliesFilterAndSort(t *testing.T) {
	v := collection.NewView()
	v.Series = []models.Series{
		series("Zebra", 10, 5),
		series("Alfa", 10, 0),
		series("Meio", 10, 4),
	}
	v.SetFilter(collection.FilterLendo)

	got := v.Visible()
	if len(got) != 2 {
		t.Fatalf("expected 2 visible series, got %d", len(got))
	}
	if got[0].Title != "Meio" || got[1].Title != "Zebra" {
		t.Fatalf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestSetFilterRejectsUnknown(t *testing.T) {
	v := collection.NewView()
	v.SetFilter("banana")
	if v.Filter != collection.FilterAll {
		t.Fatalf("unknown filter should fall back to all, got %q", v.Filter)
	}
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		total, read, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{3, 1, 33},
		{3, 2, 67},
		{10, 10, 100},
		{10, 12, 100},
	}
	for _, c := range cases {
		got := collection.ProgressPercent(models.Series{TotalIssues: c.total, ReadIssues: c.read})
		if got != c.want {
			t.Errorf("ProgressPercent(read=%d, total=%d) = %d, want %d", c.read, c.total, got, c.want)
		}
	}
}

func TestComputedStatus(t *testing.T) {
	cases := []struct {
		total, read int
		want        string
	}{
		{10, 0, models.StatusParaLer},
		{0, 0, models.StatusParaLer},
		{10, 4, models.StatusLendo},
		{10, 10, models.StatusConcluida},
		{10, 11, models.StatusConcluida},
		{0, 3, models.StatusLendo},
	}
	for _, c := range cases {
		got := collection.ComputedStatus(models.Series{TotalIssues: c.total, ReadIssues: c.read})
		if got != c.want {
			t.Errorf("ComputedStatus(read=%d, total=%d) = %q, want %q", c.read, c.total, got, c.want)
		}
	}
}

func TestSeriesTypeBadge(t *testing.T) {
	if b := collection.SeriesTypeBadge(models.TypeFinalizada); b.Emoji != "✓" {
		t.Errorf("finalizada badge emoji = %q", b.Emoji)
	}
	if b := collection.SeriesTypeBadge("???"); b.Text != "Em Andamento" {
		t.Errorf("unknown type should fall back to em andamento, got %q", b.Text)
	}
}

func TestPerPageFor(t *testing.T) {
	if got := collection.PerPageFor(""); got != collection.FullPerPage {
		t.Fatalf("empty query per_page = %d, want %d", got, collection.FullPerPage)
	}
	if got := collection.PerPageFor("batman"); got != collection.SearchPerPage {
		t.Fatalf("search per_page = %d, want %d", got, collection.SearchPerPage)
	}
}
