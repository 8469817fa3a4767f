package detail

import (
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

// SlotState is the display state of one position in the issue ladder.
type SlotState int

const (
	SlotMissing SlotState = iota
	SlotDownloaded
	SlotRead
)

func (s SlotState) String() string {
	switch s {
	case SlotRead:
		return "read"
	case SlotDownloaded:
		return "downloaded"
	default:
		return "missing"
	}
}

// Slot is one rung of the 1..total_issues ladder. Issue is nil when no
// backend record exists for that number.
type Slot struct {
	Number int
	State  SlotState
	Issue  *models.Issue
	// Reading marks the slot after the highest read issue, when downloaded.
	Reading bool
}

// Ladder is the derived per-issue view of a series. It always has exactly
// total_issues slots regardless of how many Issue records exist.
type Ladder struct {
	Series models.Series
	Slots  []Slot
}

// Build cross-references the issue records against 1..total_issues.
// Precedence per slot: read > downloaded > missing. Slots without a record
// still count as downloaded when their number is within the series'
// downloaded counter (hybrid fallback for collections imported before issue
// records existed). Slots below reading_starts_at_issue render as missing
// unless read, which keeps long runs collected from a later number from
// showing hundreds of "unread" issues.
func Build(series models.Series, issues []models.Issue) Ladder {
	byNumber := make(map[int]*models.Issue, len(issues))
	maxRead := 0
	for i := range issues {
		issue := &issues[i]
		byNumber[issue.IssueNumber] = issue
		if issue.IsRead && issue.IssueNumber > maxRead {
			maxRead = issue.IssueNumber
		}
	}

	reading := 0
	if maxRead > 0 {
		reading = maxRead + 1
	}

	slots := make([]Slot, 0, series.TotalIssues)
	for n := 1; n <= series.TotalIssues; n++ {
		slot := Slot{Number: n, Issue: byNumber[n]}

		switch {
		case slot.Issue != nil && slot.Issue.IsRead:
			slot.State = SlotRead
		case slot.Issue != nil:
			slot.State = SlotDownloaded
		case slot.Issue == nil && n <= series.DownloadedIssues:
			slot.State = SlotDownloaded
		default:
			slot.State = SlotMissing
		}

		if slot.State == SlotDownloaded && series.ReadingStartsAt > 0 && n < series.ReadingStartsAt {
			slot.State = SlotMissing
		}
		if n == reading && slot.State == SlotDownloaded {
			slot.Reading = true
		}

		slots = append(slots, slot)
	}

	return Ladder{Series: series, Slots: slots}
}

// MissingNumbers returns the issue numbers in 1..total_issues that have no
// backend record, in ascending order. This is the work list for the
// sync-missing operation, so it ignores display-only overrides.
func MissingNumbers(series models.Series, issues []models.Issue) []int {
	present := make(map[int]bool, len(issues))
	for _, issue := range issues {
		present[issue.IssueNumber] = true
	}

	var missing []int
	for n := 1; n <= series.TotalIssues; n++ {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

// Counts tallies the ladder by state.
func (l Ladder) Counts() (read, downloaded, missing int) {
	for _, slot := range l.Slots {
		switch slot.State {
		case SlotRead:
			read++
		case SlotDownloaded:
			downloaded++
		default:
			missing++
		}
	}
	return
}
