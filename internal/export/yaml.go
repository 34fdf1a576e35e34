package export

import (
	"io"

	"github.com/hubgrid/hubctl/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports an inventory in YAML format
type YAMLExporter struct{}

// Export writes the inventory as a YAML document
func (e *YAMLExporter) Export(inv *internal.Inventory, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(inv)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
