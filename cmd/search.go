package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"newsdesk/internal/clix"
	"newsdesk/internal/services"
	"newsdesk/internal/store"
)

var (
	searchCategory string
	searchAuthor   string
	searchSort     string
	searchPage     int
	searchLimit    int
	searchContent  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search published articles",
	Long: `Runs a full search against the article store: substring matching over
title, excerpt and content, with relevance scoring and highlights.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if len([]rune(query)) < 2 {
			return fmt.Errorf("query must be at least 2 characters")
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}

		page := clix.ParsePage(cmd.Flags())
		opts := services.SearchOptions{
			Query:          query,
			Category:       searchCategory,
			SortBy:         store.SortMode(searchSort),
			Page:           page.Page,
			Limit:          page.Limit,
			IncludeContent: searchContent,
		}
		if searchAuthor != "" {
			authorID, err := uuid.Parse(searchAuthor)
			if err != nil {
				return fmt.Errorf("invalid --author (expected UUID): %s", searchAuthor)
			}
			opts.AuthorID = &authorID
		}
		if opts.DateFrom, err = clix.ParseDateFlag(cmd.Flags(), "from"); err != nil {
			return err
		}
		if opts.DateTo, err = clix.ParseDateFlag(cmd.Flags(), "to"); err != nil {
			return err
		}

		resp, err := appInstance.SearchService.Search(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(resp.Results) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		renderSearchResults(resp)
		return nil
	},
}

func renderSearchResults(resp *services.SearchResponse) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Score", "Title", "Slug", "Published", "Views", "Likes"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range resp.Results {
		published := "draft"
		if r.PublishedAt != nil {
			published = r.PublishedAt.Format("2006-01-02")
		}
		table.Append([]string{
			strconv.Itoa(r.RelevanceScore),
			r.Title,
			r.Slug,
			published,
			strconv.Itoa(r.Views),
			strconv.Itoa(r.Likes),
		})
	}
	table.Render()

	for _, r := range resp.Results {
		snippets := append(append([]string{}, r.Highlights.Title...), r.Highlights.Excerpt...)
		snippets = append(snippets, r.Highlights.Content...)
		if len(snippets) == 0 {
			continue
		}
		bold.Printf("\n%s\n", r.Title)
		for _, s := range snippets {
			fmt.Printf("  ...%s...\n", strings.ReplaceAll(s, "\n", " "))
		}
	}

	p := resp.Pagination
	dim.Printf("\nPage %d of %d (%d results, %dms)\n",
		p.Page, p.TotalPages, p.Total, resp.Meta.ExecutionTimeMs)
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Filter by category slug")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "Filter by author ID")
	searchCmd.Flags().StringVar(&searchSort, "sort", "relevance", "Sort mode: relevance, date, views, likes")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Result page")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "Results per page")
	searchCmd.Flags().BoolVar(&searchContent, "content", false, "Fetch and scan full article bodies")
	searchCmd.Flags().String("from", "", "Only articles published on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "Only articles published on or before this date (YYYY-MM-DD)")
}
