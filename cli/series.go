package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rrezende/hq-manager-cli/internal/collection"
	"github.com/rrezende/hq-manager-cli/internal/detail"
	"github.com/rrezende/hq-manager-cli/pkg/models"
)

var (
	seriesFilter string
	seriesSearch string
	seriesPage   int

	seriesTitle      string
	seriesAuthor     string
	seriesPublisher  string
	seriesType       string
	seriesTotal      int
	seriesDownloaded int
	seriesRead       int
	seriesCompleted  bool
	seriesCoverURL   string
	seriesNotes      string
	seriesMain       int
	seriesTieIn      int
	seriesEditions   string
	seriesStartsAt   int
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Series management commands",
	Long:  `List, inspect and manage comic book series.`,
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List series",
	Long:  `List the collection, with optional filter, search and page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		view := collection.NewView()
		view.SetFilter(seriesFilter)
		view.Query = seriesSearch
		view.Page = seriesPage

		resp, err := client.ListSeries(cmd.Context(), view.Query, view.Page, collection.PerPageFor(view.Query))
		if err != nil {
			printError(fmt.Sprintf("Failed to load series: %s", err.Error()))
			return err
		}
		view.Series = resp.Items

		visible := view.Visible()
		if len(visible) == 0 {
			fmt.Println("No series found.")
			return nil
		}

		for i, s := range visible {
			badge := collection.SeriesTypeBadge(s.SeriesType)
			status := collection.StatusLabel(collection.ComputedStatus(s))
			fmt.Printf("%d. %s %s\n", i+1, badge.Emoji, s.Title)
			fmt.Printf("   ID: %d\n", s.ID)
			if s.Author != "" {
				fmt.Printf("   Author: %s\n", s.Author)
			}
			if s.Publisher != "" {
				fmt.Printf("   Publisher: %s\n", s.Publisher)
			}
			fmt.Printf("   Progress: %d/%d (%d%%)  Downloaded: %d\n",
				s.ReadIssues, s.TotalIssues, collection.ProgressPercent(s), s.DownloadedIssues)
			fmt.Printf("   Status: %s  Type: %s\n", status, badge.Text)
			fmt.Println()
		}

		if seriesSearch != "" && resp.Pagination.TotalPages > 1 {
			fmt.Printf("Page %d of %d (%d series total)\n",
				resp.Pagination.Page, resp.Pagination.TotalPages, resp.Pagination.TotalItems)
		}
		return nil
	},
}

var seriesShowCmd = &cobra.Command{
	Use:   "show [series-id]",
	Short: "Show one series",
	Long:  `Display a series with its full issue ladder.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		series, err := client.GetSeries(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Failed to load series: %s", err.Error()))
			return err
		}
		issues, err := client.ListIssues(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Failed to load issues: %s", err.Error()))
			return err
		}

		badge := collection.SeriesTypeBadge(series.SeriesType)
		fmt.Printf("%s %s\n", badge.Emoji, series.Title)
		if series.Author != "" {
			fmt.Printf("Author: %s\n", series.Author)
		}
		if series.Publisher != "" {
			fmt.Printf("Publisher: %s\n", series.Publisher)
		}
		fmt.Printf("Type: %s\n", badge.Text)
		fmt.Printf("Progress: %d/%d (%d%%)\n",
			series.ReadIssues, series.TotalIssues, collection.ProgressPercent(*series))
		if series.SeriesType == models.TypeSaga {
			fmt.Printf("Saga: %d main + %d tie-in issues\n", series.MainIssues, series.TieInIssues)
			if series.SagaEditions != "" {
				fmt.Printf("Editions:\n%s\n", series.SagaEditions)
			}
		}
		if series.Notes != "" {
			fmt.Printf("Notes: %s\n", series.Notes)
		}

		ladder := detail.Build(*series, issues)
		read, downloaded, missing := ladder.Counts()
		fmt.Printf("\nIssues (%d read, %d downloaded, %d missing):\n", read, downloaded, missing)
		for _, slot := range ladder.Slots {
			marker := "·"
			switch slot.State {
			case detail.SlotRead:
				marker = "✓"
			case detail.SlotDownloaded:
				marker = "○"
			}
			if slot.Reading {
				marker = "▶"
			}
			id := "-"
			if slot.Issue != nil {
				id = strconv.Itoa(slot.Issue.ID)
			}
			fmt.Printf("  #%-4d %s  (issue id: %s)\n", slot.Number, marker, id)
		}
		return nil
	},
}

var seriesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a series",
	Long:  `Create a new series in the collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seriesTitle == "" {
			return fmt.Errorf("title is required (--title)")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		req := seriesRequestFromFlags()
		warnSagaCounts(req)

		series, err := client.CreateSeries(cmd.Context(), req)
		if err != nil {
			printError(fmt.Sprintf("Failed to create series: %s", err.Error()))
			return err
		}

		printSuccess(fmt.Sprintf("Created \"%s\" (id %d)", series.Title, series.ID))
		return nil
	},
}

var seriesEditCmd = &cobra.Command{
	Use:   "edit [series-id]",
	Short: "Edit a series",
	Long:  `Update a series. Only the provided flags change; the update is sent as a full replace.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		series, err := client.GetSeries(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Failed to load series: %s", err.Error()))
			return err
		}

		req := series.UpdateRequest()
		if cmd.Flags().Changed("title") {
			req.Title = seriesTitle
		}
		if cmd.Flags().Changed("author") {
			req.Author = seriesAuthor
		}
		if cmd.Flags().Changed("publisher") {
			req.Publisher = seriesPublisher
		}
		if cmd.Flags().Changed("type") {
			req.SeriesType = seriesType
		}
		if cmd.Flags().Changed("total") {
			req.TotalIssues = seriesTotal
		}
		if cmd.Flags().Changed("downloaded") {
			req.DownloadedIssues = seriesDownloaded
		}
		if cmd.Flags().Changed("read") {
			req.ReadIssues = seriesRead
		}
		if cmd.Flags().Changed("completed") {
			req.IsCompleted = seriesCompleted
		}
		if cmd.Flags().Changed("cover-url") {
			req.CoverURL = seriesCoverURL
		}
		if cmd.Flags().Changed("notes") {
			req.Notes = seriesNotes
		}
		if cmd.Flags().Changed("main-issues") {
			req.MainIssues = seriesMain
		}
		if cmd.Flags().Changed("tie-in-issues") {
			req.TieInIssues = seriesTieIn
		}
		if cmd.Flags().Changed("saga-editions") {
			req.SagaEditions = seriesEditions
		}
		if cmd.Flags().Changed("starts-at") {
			req.ReadingStartsAt = seriesStartsAt
		}
		warnSagaCounts(req)

		updated, err := client.UpdateSeries(cmd.Context(), seriesID, req)
		if err != nil {
			printError(fmt.Sprintf("Failed to update series: %s", err.Error()))
			return err
		}

		printSuccess(fmt.Sprintf("Updated \"%s\"", updated.Title))
		return nil
	},
}

var seriesDeleteCmd = &cobra.Command{
	Use:   "delete [series-id]",
	Short: "Delete a series",
	Long:  `Delete a series and all of its issues.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		series, err := client.GetSeries(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Failed to load series: %s", err.Error()))
			return err
		}

		if !confirm(fmt.Sprintf("Delete \"%s\" and all of its issues?", series.Title)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := client.DeleteSeries(cmd.Context(), seriesID); err != nil {
			printError(fmt.Sprintf("Failed to delete series: %s", err.Error()))
			return err
		}

		printSuccess(fmt.Sprintf("Deleted \"%s\"", series.Title))
		return nil
	},
}

var seriesAnnounceCmd = &cobra.Command{
	Use:   "announce [series-id]",
	Short: "Record a newly announced issue",
	Long:  `Increase total_issues by one. The change can be reverted with 'hqman undo'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		series, err := runner.Client.GetSeries(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Failed to load series: %s", err.Error()))
			return err
		}

		updated, rec, err := runner.IncreaseTotal(cmd.Context(), *series)
		if err != nil {
			printError(fmt.Sprintf("Failed to update series: %s", err.Error()))
			return err
		}

		pushUndoRecord(rec)
		printSuccess(fmt.Sprintf("\"%s\" now has %d total issues", updated.Title, updated.TotalIssues))
		return nil
	},
}

func seriesRequestFromFlags() models.SeriesRequest {
	return models.SeriesRequest{
		Title:            seriesTitle,
		Author:           seriesAuthor,
		Publisher:        seriesPublisher,
		TotalIssues:      seriesTotal,
		DownloadedIssues: seriesDownloaded,
		ReadIssues:       seriesRead,
		IsCompleted:      seriesCompleted,
		SeriesType:       seriesType,
		CoverURL:         seriesCoverURL,
		Notes:            seriesNotes,
		MainIssues:       seriesMain,
		TieInIssues:      seriesTieIn,
		SagaEditions:     seriesEditions,
		ReadingStartsAt:  seriesStartsAt,
	}
}

func warnSagaCounts(req models.SeriesRequest) {
	if req.SeriesType != models.TypeSaga {
		return
	}
	if req.MainIssues+req.TieInIssues != req.TotalIssues {
		fmt.Printf("⚠ Saga counts do not add up: %d main + %d tie-in != %d total\n",
			req.MainIssues, req.TieInIssues, req.TotalIssues)
	}
}

func addSeriesFormFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&seriesTitle, "title", "", "Series title")
	cmd.Flags().StringVar(&seriesAuthor, "author", "", "Author")
	cmd.Flags().StringVar(&seriesPublisher, "publisher", "", "Publisher")
	cmd.Flags().StringVar(&seriesType, "type", models.TypeEmAndamento,
		"Series type (finalizada, em_andamento, lancamento, edicao_especial, saga)")
	cmd.Flags().IntVar(&seriesTotal, "total", 0, "Total published issues")
	cmd.Flags().IntVar(&seriesDownloaded, "downloaded", 0, "Downloaded issues")
	cmd.Flags().IntVar(&seriesRead, "read", 0, "Read issues")
	cmd.Flags().BoolVar(&seriesCompleted, "completed", false, "Mark collection as completed")
	cmd.Flags().StringVar(&seriesCoverURL, "cover-url", "", "Cover image URL")
	cmd.Flags().StringVar(&seriesNotes, "notes", "", "Notes")
	cmd.Flags().IntVar(&seriesMain, "main-issues", 0, "Saga: main issue count")
	cmd.Flags().IntVar(&seriesTieIn, "tie-in-issues", 0, "Saga: tie-in issue count")
	cmd.Flags().StringVar(&seriesEditions, "saga-editions", "", "Saga: edition list, newline-separated")
	cmd.Flags().IntVar(&seriesStartsAt, "starts-at", 0, "First issue number actually collected")
}

func init() {
	seriesListCmd.Flags().StringVar(&seriesFilter, "filter", "all",
		"Filter (all, para_ler, lendo, concluida, saga)")
	seriesListCmd.Flags().StringVar(&seriesSearch, "search", "", "Search query")
	seriesListCmd.Flags().IntVar(&seriesPage, "page", 1, "Page (searches only)")

	addSeriesFormFlags(seriesAddCmd)
	addSeriesFormFlags(seriesEditCmd)

	seriesCmd.AddCommand(seriesListCmd)
	seriesCmd.AddCommand(seriesShowCmd)
	seriesCmd.AddCommand(seriesAddCmd)
	seriesCmd.AddCommand(seriesEditCmd)
	seriesCmd.AddCommand(seriesDeleteCmd)
	seriesCmd.AddCommand(seriesAnnounceCmd)
}
