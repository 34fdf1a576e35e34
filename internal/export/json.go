package export

import (
	"encoding/json"
	"io"

	"github.com/hubgrid/hubctl/internal"
)

// JSONExporter exports an inventory in JSON format (pretty-printed)
type JSONExporter struct{}

// Export writes the inventory as a single JSON document
func (e *JSONExporter) Export(inv *internal.Inventory, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(inv)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
