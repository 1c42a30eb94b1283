// Command openapi exports the registered OpenAPI document for API clients.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "forumapi/docs" // registers the swagger document

	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

func main() {
	format := flag.String("format", "yaml", "output format: yaml or json")
	outPath := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	raw, err := render(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render OpenAPI document: %v\n", err)
		os.Exit(1)
	}

	if strings.TrimSpace(*outPath) == "" {
		_, _ = os.Stdout.Write(raw)
		return
	}
	if err := os.WriteFile(*outPath, raw, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

// render reads the registered document and encodes it in the requested format.
func render(format string) ([]byte, error) {
	doc, err := swag.ReadDoc()
	if err != nil {
		return nil, err
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, fmt.Errorf("registered document is not valid JSON: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		return yaml.Marshal(parsed)
	case "json":
		return json.MarshalIndent(parsed, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
