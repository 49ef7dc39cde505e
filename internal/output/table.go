package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/anishk/signalrank-mcp/internal/database"
	"github.com/anishk/signalrank-mcp/internal/profile"
	"github.com/anishk/signalrank-mcp/internal/relevance"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *relevance.Result:
		return resultTable(w, v)
	case *profile.Summary:
		return summaryTable(w, v)
	case []database.FeedbackEvent:
		return feedbackEventsTable(w, v)
	case *database.FeedbackStats:
		return feedbackStatsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultTable(w io.Writer, r *relevance.Result) error {
	fmt.Fprintf(w, "Relevance: %.2f\n", r.Score)
	fmt.Fprintf(w, "Why: %s\n\n", r.Explanation)

	if len(r.Components) == 0 {
		return nil
	}

	// Deterministic component order
	names := make([]string, 0, len(r.Components))
	for name := range r.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"COMPONENT", "SCORE"})
	for _, name := range names {
		table.Append([]string{name, fmt.Sprintf("%.3f", r.Components[name])})
	}
	return table.Render()
}

func summaryTable(w io.Writer, s *profile.Summary) error {
	fmt.Fprintf(w, "Profile: %s\n", s.UserID)
	fmt.Fprintf(w, "Feedback events: %d\n", s.TotalFeedback)
	fmt.Fprintf(w, "Model accuracy: %.0f%%\n", s.ModelAccuracy*100)
	if !s.LastUpdated.IsZero() {
		fmt.Fprintf(w, "Last updated: %s\n", s.LastUpdated.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)

	if len(s.TopCategories) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"TOP CATEGORY", "PREFERENCE"})
		for _, c := range s.TopCategories {
			table.Append([]string{string(c.Category), fmt.Sprintf("%.2f", c.Score)})
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(s.TopCompetitors) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"TOP COMPETITOR", "INTEREST"})
		for _, c := range s.TopCompetitors {
			table.Append([]string{c.Name, fmt.Sprintf("%.2f", c.Multiplier)})
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Action rate: %.0f%%  Feedback rate: %.0f%%\n",
		s.Behavior.ActionRate*100, s.Behavior.FeedbackRate*100)
	return nil
}

func feedbackEventsTable(w io.Writer, events []database.FeedbackEvent) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No feedback recorded yet.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"WHEN", "SIGNAL", "TYPE", "SENTIMENT"})
	for _, e := range events {
		table.Append([]string{
			e.CreatedAt.Format("2006-01-02 15:04"),
			truncate(e.SignalID, 30),
			e.FeedbackType,
			formatSentiment(e.Positive),
		})
	}
	return table.Render()
}

func feedbackStatsTable(w io.Writer, stats *database.FeedbackStats) error {
	fmt.Fprintf(w, "Total feedback events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "  positive: %d  negative: %d  unclassified: %d\n\n",
		stats.Positive, stats.Negative, stats.Unclassified)

	if len(stats.ByType) == 0 {
		return nil
	}

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Strings(types)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"TYPE", "COUNT"})
	for _, t := range types {
		table.Append([]string{t, fmt.Sprintf("%d", stats.ByType[t])})
	}
	return table.Render()
}

func formatSentiment(positive *bool) string {
	switch {
	case positive == nil:
		return "-"
	case *positive:
		return "positive"
	default:
		return "negative"
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
