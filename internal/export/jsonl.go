package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hubgrid/hubctl/internal"
)

// JSONLExporter exports an inventory in JSONL format (one resource per line)
type JSONLExporter struct{}

// Export writes each cached resource as its own JSON line, tagged with
// its container kind and owning remote
func (e *JSONLExporter) Export(inv *internal.Inventory, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, c := range inv.Contexts {
		obj := map[string]interface{}{
			"kind":     string(internal.ContainerContext),
			"remoteId": inv.RemoteID,
			"id":       c.ID,
		}
		if c.Name != "" {
			obj["name"] = c.Name
		}
		if c.NodeCount > 0 {
			obj["nodeCount"] = c.NodeCount
		}
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode context: %w", err)
		}
	}

	for _, ws := range inv.Workspaces {
		obj := map[string]interface{}{
			"kind":     string(internal.ContainerWorkspace),
			"remoteId": inv.RemoteID,
			"id":       ws.ID,
		}
		if ws.Name != "" {
			obj["name"] = ws.Name
		}
		if len(ws.ContextIDs) > 0 {
			obj["contextIds"] = ws.ContextIDs
		}
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode workspace: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
