package ops

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rrezende/hq-manager-cli/internal/api"
	"github.com/rrezende/hq-manager-cli/internal/detail"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

// ErrBusy is returned when a bulk operation is requested while another one is
// still running. Bulk operations issue long chains of sequential requests, so
// overlapping runs would interleave creates and deletes on the same series.
var ErrBusy = errors.New("another bulk operation is already running")

// Runner executes mutations against the backend. Bulk operations (sync,
// recalculate) are serialized through an in-flight guard.
type Runner struct {
	Client *api.Client

	bulkMu sync.Mutex
}

func NewRunner(client *api.Client) *Runner {
	return &Runner{Client: client}
}

// AddIssue posts a new issue and returns the undo record for it.
func (r *Runner) AddIssue(ctx context.Context, seriesID, issueNumber int, isRead bool) (*models.Issue, UndoRecord, error) {
	issue, err := r.Client.CreateIssue(ctx, seriesID, models.IssueCreateRequest{
		IssueNumber: issueNumber,
		IsRead:      isRead,
	})
	if err != nil {
		return nil, UndoRecord{}, err
	}
	rec := UndoRecord{
		Type:        UndoAddIssue,
		SeriesID:    seriesID,
		IssueID:     issue.ID,
		IssueNumber: issue.IssueNumber,
	}
	return issue, rec, nil
}

func (r *Runner) ToggleRead(ctx context.Context, seriesID, issueID int, isRead bool) (*models.Issue, error) {
	return r.Client.UpdateIssueRead(ctx, seriesID, issueID, isRead)
}

func (r *Runner) DeleteIssue(ctx context.Context, seriesID, issueID int) error {
	return r.Client.DeleteIssue(ctx, seriesID, issueID)
}

// IncreaseTotal bumps total_issues by one ("new issue announced") and returns
// the undo record holding the prior value.
func (r *Runner) IncreaseTotal(ctx context.Context, series models.Series) (*models.Series, UndoRecord, error) {
	req := series.UpdateRequest()
	req.TotalIssues = series.TotalIssues + 1

	updated, err := r.Client.UpdateSeries(ctx, series.ID, req)
	if err != nil {
		return nil, UndoRecord{}, err
	}
	rec := UndoRecord{
		Type:     UndoIncreaseTotal,
		SeriesID: series.ID,
		OldTotal: series.TotalIssues,
		NewTotal: series.TotalIssues + 1,
	}
	return updated, rec, nil
}

// SyncResult reports a bulk reconciliation pass.
type SyncResult struct {
	Created int
	Failed  int
}

// SyncMissing creates one unread issue record per hole in 1..total_issues.
// Creates are sequential; a failed create is counted and the pass moves on.
// Running it on an already-complete series creates nothing.
func (r *Runner) SyncMissing(ctx context.Context, seriesID int) (SyncResult, error) {
	if !r.bulkMu.TryLock() {
		return SyncResult{}, ErrBusy
	}
	defer r.bulkMu.Unlock()

	series, err := r.Client.GetSeries(ctx, seriesID)
	if err != nil {
		return SyncResult{}, err
	}
	issues, err := r.Client.ListIssues(ctx, seriesID)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, n := range detail.MissingNumbers(*series, issues) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, err := r.Client.CreateIssue(ctx, seriesID, models.IssueCreateRequest{IssueNumber: n})
		if err != nil {
			result.Failed++
			continue
		}
		result.Created++
	}
	return result, nil
}

// RecalculateFromTotals is the destructive repair tool: it deletes every
// issue record of the series, then recreates 1..total_issues with the first
// read_issues marked read. Callers must confirm with the user first.
func (r *Runner) RecalculateFromTotals(ctx context.Context, seriesID int) (SyncResult, error) {
	if !r.bulkMu.TryLock() {
		return SyncResult{}, ErrBusy
	}
	defer r.bulkMu.Unlock()

	series, err := r.Client.GetSeries(ctx, seriesID)
	if err != nil {
		return SyncResult{}, err
	}
	issues, err := r.Client.ListIssues(ctx, seriesID)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, issue := range issues {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := r.Client.DeleteIssue(ctx, seriesID, issue.ID); err != nil {
			result.Failed++
		}
	}

	for n := 1; n <= series.TotalIssues; n++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, err := r.Client.CreateIssue(ctx, seriesID, models.IssueCreateRequest{
			IssueNumber: n,
			IsRead:      n <= series.ReadIssues,
		})
		if err != nil {
			result.Failed++
			continue
		}
		result.Created++
	}
	return result, nil
}

// Undo pops the most recent record and performs its inverse. When the
// inverse call fails the record goes back on the stack so the user can retry.
func (r *Runner) Undo(ctx context.Context, stack *UndoStack) (UndoRecord, error) {
	rec, ok := stack.Pop()
	if !ok {
		return UndoRecord{}, errors.New("nothing to undo")
	}

	var err error
	switch rec.Type {
	case UndoAddIssue:
		err = r.Client.DeleteIssue(ctx, rec.SeriesID, rec.IssueID)
	case UndoIncreaseTotal:
		err = r.restoreTotal(ctx, rec.SeriesID, rec.OldTotal)
	default:
		// An unrecognized record (corrupted state file, newer CLI version)
		// stays on the stack like any other failed inverse.
		stack.Push(rec)
		return rec, fmt.Errorf("unknown undo record type %q", rec.Type)
	}

	if err != nil {
		stack.Push(rec)
		return rec, err
	}
	return rec, nil
}

func (r *Runner) restoreTotal(ctx context.Context, seriesID, oldTotal int) error {
	series, err := r.Client.GetSeries(ctx, seriesID)
	if err != nil {
		return err
	}
	req := series.UpdateRequest()
	req.TotalIssues = oldTotal
	_, err = r.Client.UpdateSeries(ctx, series.ID, req)
	return err
}
