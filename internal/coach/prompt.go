// ABOUTME: Renders recent log rows as plain text and builds the coach prompt.
// ABOUTME: Unparsable dates and missing numbers render as N/A.
package coach

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/coach/internal/models"
)

// ContextRows is how many trailing log rows the model sees.
const ContextRows = 7

// Missing marks an absent or unparsable value in the rendered context.
const Missing = "N/A"

// EmptyLog is the context text when there are no rows.
const EmptyLog = "No health log entries yet."

const promptTemplate = `You are a friendly and helpful AI Health Coach.

Here is the user's recent health log:

%s

User's Question:
%s

Please provide useful, actionable advice in simple terms.`

// BuildPrompt embeds the rendered log and the question into the coach prompt.
func BuildPrompt(context, question string) string {
	return fmt.Sprintf(promptTemplate, context, question)
}

// RenderContext formats the last ContextRows rows as an aligned table.
func RenderContext(rows []*models.Entry) string {
	if len(rows) > ContextRows {
		rows = rows[len(rows)-ContextRows:]
	}
	if len(rows) == 0 {
		return EmptyLog
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(models.EntryColumns, "\t"))
	for _, e := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			normalizeDate(e.Date),
			orMissing(e.SleepText()),
			orMissing(flatten(e.Meals)),
			orMissing(flatten(e.Mood)),
			orMissing(e.StepsText()),
		)
	}
	_ = w.Flush()

	return strings.TrimRight(sb.String(), "\n")
}

func normalizeDate(s string) string {
	t, ok := models.ParseDate(s)
	if !ok {
		return Missing
	}
	return t.Format(models.DateLayout)
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return Missing
	}
	return s
}

// flatten keeps free text on one table line.
func flatten(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}
