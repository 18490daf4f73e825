package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/petal-labs/dialog/core"
)

// printResponse writes a query result as indented JSON or as a short
// human-readable summary.
func (a *App) printResponse(resp *core.Response) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	result := resp.Result
	if result == nil {
		fmt.Fprintln(a.stdout, "(no result)")
		return nil
	}

	if result.ResolvedQuery != "" {
		fmt.Fprintf(a.stdout, "> %s\n", result.ResolvedQuery)
	}
	if f := result.Fulfillment; f != nil && f.Speech != "" {
		fmt.Fprintln(a.stdout, f.Speech)
	} else {
		fmt.Fprintln(a.stdout, "(no speech)")
	}

	if !a.verbose {
		return nil
	}
	if result.Metadata != nil && result.Metadata.IntentName != "" {
		fmt.Fprintf(a.stdout, "  intent:     %s\n", result.Metadata.IntentName)
	}
	if result.Action != "" {
		fmt.Fprintf(a.stdout, "  action:     %s\n", result.Action)
	}
	fmt.Fprintf(a.stdout, "  score:      %s\n", strconv.FormatFloat(float64(result.Score), 'f', 2, 32))
	for name, raw := range result.Parameters {
		fmt.Fprintf(a.stdout, "  param:      %s=%s\n", name, raw)
	}
	for _, c := range result.Contexts {
		fmt.Fprintf(a.stdout, "  context:    %s\n", c.Name)
	}
	return nil
}
