package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

const (
	dateLayout    = "Jan 2, 2006 3:04 PM"
	shortIDLength = 8
	previewLength = 40
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "Invalid Date"
	}
	return t.Local().Format(dateLayout)
}

// truncate shortens text to max runes, appending "..." when cut.
func truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max]) + "..."
}

// shortID is the id prefix shown by list. Commands accept it in place of
// the full id.
func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func flags(n models.Note) string {
	var f []string
	if n.Favorite {
		f = append(f, "*")
	}
	if n.Priority != "" && n.Priority != models.PriorityMedium {
		f = append(f, string(n.Priority))
	}
	if n.Category != "" {
		f = append(f, "@"+n.Category)
	}
	return strings.Join(f, " ")
}

func writeNoteList(w io.Writer, notes []models.Note) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUPDATED\tFLAGS\tPREVIEW")
	for _, n := range notes {
		preview := strings.Join(strings.Fields(n.Content), " ")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			shortID(n.ID), truncate(n.Title, previewLength), formatDate(n.UpdatedAt), flags(n), truncate(preview, previewLength))
	}
	_ = tw.Flush()
}

func writeNote(w io.Writer, n models.Note) {
	fmt.Fprintf(w, "%s\n", n.Title)
	fmt.Fprintf(w, "id: %s\n", n.ID)
	fmt.Fprintf(w, "created: %s  updated: %s\n", formatDate(n.CreatedAt), formatDate(n.UpdatedAt))
	if f := flags(n); f != "" {
		fmt.Fprintf(w, "flags: %s\n", f)
	}
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(n.Tags, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, n.Content)

	st := models.StatsOf(n.Content)
	fmt.Fprintf(w, "\n%d words, %d characters\n", st.Words, st.Chars)
}

func writeRequestStats(w io.Writer, stats []client.RequestStat) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tOUTCOME\tCOUNT")
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\n", st.Op, st.Outcome, st.Count)
	}
	_ = tw.Flush()
}
