package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hubgrid/hubctl/internal"
)

// MarkdownExporter exports an inventory in Markdown format
type MarkdownExporter struct{}

// Export writes the inventory as a human-readable Markdown document
func (e *MarkdownExporter) Export(inv *internal.Inventory, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Inventory for %s\n\n", inv.RemoteID)
	if !inv.GeneratedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "**Generated:** %s\n\n", inv.GeneratedAt.Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(w, "**Contexts:** %d  \n", len(inv.Contexts))
	_, _ = fmt.Fprintf(w, "**Workspaces:** %d\n\n", len(inv.Workspaces))

	if len(inv.Contexts) > 0 {
		_, _ = fmt.Fprintf(w, "## Contexts\n\n")
		_, _ = fmt.Fprintf(w, "| ID | Name | Nodes | Last Synced |\n")
		_, _ = fmt.Fprintf(w, "|----|------|-------|-------------|\n")
		for _, c := range inv.Contexts {
			_, _ = fmt.Fprintf(w, "| %s | %s | %d | %s |\n",
				escapeCell(c.ID), escapeCell(c.Name), c.NodeCount,
				c.LastSynced.Format(time.RFC3339))
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if len(inv.Workspaces) > 0 {
		_, _ = fmt.Fprintf(w, "## Workspaces\n\n")
		_, _ = fmt.Fprintf(w, "| ID | Name | Contexts | Last Synced |\n")
		_, _ = fmt.Fprintf(w, "|----|------|----------|-------------|\n")
		for _, ws := range inv.Workspaces {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
				escapeCell(ws.ID), escapeCell(ws.Name),
				escapeCell(strings.Join(ws.ContextIDs, ", ")),
				ws.LastSynced.Format(time.RFC3339))
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	return nil
}

// escapeCell escapes characters that would break a Markdown table cell
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	return strings.ReplaceAll(text, "\n", " ")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
