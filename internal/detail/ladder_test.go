package detail_test

import (
	"testing"

	"github.com/rrezende/hq-manager-cli/internal/detail"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

func issue(id, number int, read bool) models.Issue {
	return models.Issue{ID: id, IssueNumber: number, IsRead: read, IsDownloaded: true}
}

func states(l detail.Ladder) []detail.SlotState {
	out := make([]detail.SlotState, len(l.Slots))
	for i, s := range l.Slots {
		out[i] = s.State
	}
	return out
}

func TestBuildAlwaysHasTotalSlots(t *testing.T) {
	l := detail.Build(models.Series{TotalIssues: 7}, nil)
	if len(l.Slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(l.Slots))
	}
	for i, slot := range l.Slots {
		if slot.Number != i+1 {
			t.Fatalf("slot %d has number %d", i, slot.Number)
		}
	}
}

func TestBuildMixedRecords(t *testing.T) {
	series := models.Series{TotalIssues: 3}
	issues := []models.Issue{
		issue(1, 1, true),
		issue(2, 3, false),
	}
	l := detail.Build(series, issues)

	want := []detail.SlotState{detail.SlotRead, detail.SlotMissing, detail.SlotDownloaded}
	got := states(l)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: got %v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestBuildHybridFallback(t *testing.T) {
	// No issue records: the stored downloaded counter fills the ladder head.
	series := models.Series{TotalIssues: 4, DownloadedIssues: 2}
	l := detail.Build(series, nil)

	want := []detail.SlotState{
		detail.SlotDownloaded, detail.SlotDownloaded,
		detail.SlotMissing, detail.SlotMissing,
	}
	got := states(l)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: got %v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestBuildReadingMarker(t *testing.T) {
	series := models.Series{TotalIssues: 5}
	issues := []models.Issue{
		issue(1, 1, true),
		issue(2, 2, true),
		issue(3, 3, false),
	}
	l := detail.Build(series, issues)

	if !l.Slots[2].Reading {
		t.Fatal("slot 3 should carry the reading marker")
	}
	for i, slot := range l.Slots {
		if i != 2 && slot.Reading {
			t.Fatalf("slot %d unexpectedly marked as reading", i+1)
		}
	}
}

func TestBuildNoReadingMarkerWhenNothingRead(t *testing.T) {
	series := models.Series{TotalIssues: 3}
	issues := []models.Issue{issue(1, 1, false)}
	l := detail.Build(series, issues)

	for i, slot := range l.Slots {
		if slot.Reading {
			t.Fatalf("slot %d marked reading with zero read issues", i+1)
		}
	}
}

func TestBuildNoReadingMarkerOnMissingSlot(t *testing.T) {
	// Highest read is 1, so the candidate is 2, but 2 has no record and is
	// beyond the downloaded counter: nothing should be marked.
	series := models.Series{TotalIssues: 3}
	issues := []models.Issue{issue(1, 1, true)}
	l := detail.Build(series, issues)

	for i, slot := range l.Slots {
		if slot.Reading {
			t.Fatalf("slot %d marked reading but it is not downloaded", i+1)
		}
	}
}

func TestBuildReadingStartsAtDemotesHead(t *testing.T) {
	series := models.Series{TotalIssues: 5, DownloadedIssues: 5, ReadingStartsAt: 3}
	l := detail.Build(series, nil)

	want := []detail.SlotState{
		detail.SlotMissing, detail.SlotMissing,
		detail.SlotDownloaded, detail.SlotDownloaded, detail.SlotDownloaded,
	}
	got := states(l)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: got %v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestBuildReadingStartsAtKeepsReadRecords(t *testing.T) {
	series := models.Series{TotalIssues: 4, DownloadedIssues: 4, ReadingStartsAt: 3}
	issues := []models.Issue{issue(1, 1, true)}
	l := detail.Build(series, issues)

	if l.Slots[0].State != detail.SlotRead {
		t.Fatalf("read record below reading start must stay read, got %v", l.Slots[0].State)
	}
}

func TestMissingNumbers(t *testing.T) {
	series := models.Series{TotalIssues: 5, DownloadedIssues: 5, ReadingStartsAt: 3}
	issues := []models.Issue{issue(1, 2, false), issue(2, 4, true)}

	got := detail.MissingNumbers(series, issues)
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMissingNumbersComplete(t *testing.T) {
	series := models.Series{TotalIssues: 2}
	issues := []models.Issue{issue(1, 1, false), issue(2, 2, true)}
	if got := detail.MissingNumbers(series, issues); len(got) != 0 {
		t.Fatalf("complete series should have no missing numbers, got %v", got)
	}
}

func TestCounts(t *testing.T) {
	series := models.Series{TotalIssues: 4}
	issues := []models.Issue{issue(1, 1, true), issue(2, 2, false)}
	l := detail.Build(series, issues)

	read, downloaded, missing := l.Counts()
	if read != 1 || downloaded != 1 || missing != 2 {
		t.Fatalf("counts = (%d, %d, %d), want (1, 1, 2)", read, downloaded, missing)
	}
}
