package api_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rrezende/hq-manager-cli/internal/api"
	"github.com/rrezende/hq-manager-cli/internal/hqtest"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

func setup(t *testing.T) (*hqtest.Server, *api.Client) {
	t.Helper()
	srv := hqtest.NewServer()
	t.Cleanup(srv.Close)
	return srv, api.NewClient(srv.URL)
}

func TestSeriesRoundTrip(t *testing.T) {
	_, client := setup(t)
	ctx := context.Background()

	created, err := client.CreateSeries(ctx, models.SeriesRequest{
		Title:       "Sandman",
		Author:      "Neil Gaiman",
		TotalIssues: 75,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created series has no id")
	}
	if created.Status != models.StatusParaLer {
		t.Fatalf("new series status = %q, want para_ler", created.Status)
	}

	got, err := client.GetSeries(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Sandman" || got.TotalIssues != 75 {
		t.Fatalf("unexpected series: %+v", got)
	}

	if err := client.DeleteSeries(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := client.GetSeries(ctx, created.ID); err == nil {
		t.Fatal("expected error after delete")
	}
}

func TestNotFoundCarriesDetail(t *testing.T) {
	_, client := setup(t)

	_, err := client.GetSeries(context.Background(), 999)
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if reqErr.Status != 404 {
		t.Fatalf("status = %d, want 404", reqErr.Status)
	}
	if reqErr.Error() != "Série não encontrada" {
		t.Fatalf("error message = %q, want the backend detail", reqErr.Error())
	}
}

func TestDuplicateIssueIsRequestError(t *testing.T) {
	srv, client := setup(t)
	ctx := context.Background()
	id := srv.Seed(models.Series{Title: "X-Men", TotalIssues: 10})

	if _, err := client.CreateIssue(ctx, id, models.IssueCreateRequest{IssueNumber: 1}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := client.CreateIssue(ctx, id, models.IssueCreateRequest{IssueNumber: 1})
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if reqErr.Status != 400 || reqErr.Detail != "Edição já existe" {
		t.Fatalf("unexpected error: %+v", reqErr)
	}
}

func TestNetworkErrorOnUnreachableServer(t *testing.T) {
	srv := hqtest.NewServer()
	client := api.NewClient(srv.URL)
	srv.Close()

	_, err := client.Stats(context.Background())
	var netErr *api.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestListSeriesSearchAndPagination(t *testing.T) {
	srv, client := setup(t)
	ctx := context.Background()
	srv.Seed(models.Series{Title: "Batman Ano Um", TotalIssues: 4})
	srv.Seed(models.Series{Title: "Batman Cavaleiro das Trevas", TotalIssues: 4})
	srv.Seed(models.Series{Title: "Monica", TotalIssues: 4})

	resp, err := client.ListSeries(ctx, "batman", 1, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item on page, got %d", len(resp.Items))
	}
	if resp.Pagination.TotalItems != 2 || resp.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}

	resp, err = client.ListSeries(ctx, "", 1, 1000)
	if err != nil {
		t.Fatalf("full list: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(resp.Items))
	}
}

func TestHybridCountersPreferIssueRecords(t *testing.T) {
	srv, client := setup(t)
	ctx := context.Background()

	// Imported series: counters only, no issue records.
	id := srv.Seed(models.Series{Title: "Akira", TotalIssues: 6, DownloadedIssues: 5, ReadIssues: 2})
	got, err := client.GetSeries(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DownloadedIssues != 5 || got.ReadIssues != 2 {
		t.Fatalf("stored counters should be served as-is, got %+v", got)
	}

	// One record makes the records authoritative.
	srv.SeedIssue(id, 1, true)
	got, err = client.GetSeries(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DownloadedIssues != 1 || got.ReadIssues != 1 {
		t.Fatalf("issue records should override counters, got downloaded=%d read=%d",
			got.DownloadedIssues, got.ReadIssues)
	}
}

func TestStats(t *testing.T) {
	srv, client := setup(t)
	srv.Seed(models.Series{Title: "a", TotalIssues: 5, ReadIssues: 0})
	srv.Seed(models.Series{Title: "b", TotalIssues: 5, ReadIssues: 2})
	srv.Seed(models.Series{Title: "c", TotalIssues: 5, ReadIssues: 5})

	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.ParaLer != 1 || stats.Lendo != 1 || stats.Concluida != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestExportExcelReturnsBytes(t *testing.T) {
	_, client := setup(t)

	data, err := client.ExportExcel(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("expected xlsx magic, got %q", data[:2])
	}
}

func TestUpdateIssueReadUsesNestedPath(t *testing.T) {
	srv, client := setup(t)
	ctx := context.Background()
	id := srv.Seed(models.Series{Title: "Hellboy", TotalIssues: 3})
	issueID := srv.SeedIssue(id, 1, false)

	updated, err := client.UpdateIssueRead(ctx, id, issueID, true)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !updated.IsRead {
		t.Fatal("issue should be read after patch")
	}

	// Wrong series id must 404, the issue is addressed through its series.
	if _, err := client.UpdateIssueRead(ctx, id+1, issueID, false); err == nil {
		t.Fatal("expected 404 for mismatched series id")
	}
}
