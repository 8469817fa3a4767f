package ops

// Undo record types.
const (
	UndoAddIssue      = "add_issue"
	UndoIncreaseTotal = "increase_total"
)

// MaxUndoDepth bounds the stack; older records fall off the bottom.
const MaxUndoDepth = 10

// UndoRecord describes how to invert one mutation.
type UndoRecord struct {
	Type        string `yaml:"type"`
	SeriesID    int    `yaml:"series_id"`
	IssueID     int    `yaml:"issue_id,omitempty"`
	IssueNumber int    `yaml:"issue_number,omitempty"`
	OldTotal    int    `yaml:"old_total,omitempty"`
	NewTotal    int    `yaml:"new_total,omitempty"`
}

// UndoStack is a bounded LIFO of undo records. The zero value is usable.
type UndoStack struct {
	Records []UndoRecord `yaml:"records"`
}

func (s *UndoStack) Push(rec UndoRecord) {
	s.Records = append(s.Records, rec)
	if len(s.Records) > MaxUndoDepth {
		s.Records = s.Records[len(s.Records)-MaxUndoDepth:]
	}
}

func (s *UndoStack) Pop() (UndoRecord, bool) {
	if len(s.Records) == 0 {
		return UndoRecord{}, false
	}
	rec := s.Records[len(s.Records)-1]
	s.Records = s.Records[:len(s.Records)-1]
	return rec, true
}

func (s *UndoStack) Peek() (UndoRecord, bool) {
	if len(s.Records) == 0 {
		return UndoRecord{}, false
	}
	return s.Records[len(s.Records)-1], true
}

func (s *UndoStack) Len() int { return len(s.Records) }
