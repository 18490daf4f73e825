package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petal-labs/dialog/core"
)

func (a *App) newEntitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Manage user entities",
		Long:  `Manage session-scoped user entities that extend the agent's vocabulary.`,
	}

	upload := &cobra.Command{
		Use:   "upload <file|->",
		Short: "Upload user entities from a YAML or JSON file",
		Long: `Upload user entities for the session. The file holds a list of entities:

  - name: dwarfs
    entries:
      - value: Grumpy
        synonyms: [grumpy, sourpuss]
      - value: Doc

JSON files with the same shape are accepted too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := a.readEntities(args[0])
			if err != nil {
				return exitWithCode(ExitValidation, err)
			}

			svc, err := a.newService()
			if err != nil {
				return err
			}

			resp, err := svc.UploadUserEntities(cmd.Context(), entities)
			if err != nil {
				return a.handleServiceError(err)
			}

			if a.jsonOutput {
				return a.printResponse(resp)
			}
			fmt.Fprintf(a.stdout, "Uploaded %d entities to session %s.\n", len(entities), svc.Context().SessionID())
			return nil
		},
	}
	cmd.AddCommand(upload)

	return cmd
}

// readEntities decodes an entity list. YAML is a superset of JSON, so one
// decoder handles both.
func (a *App) readEntities(path string) ([]core.Entity, error) {
	var r io.Reader = a.stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open entities: %w", err)
		}
		defer f.Close()
		r = f
	}

	var entities []core.Entity
	if err := yaml.NewDecoder(r).Decode(&entities); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("entities file is empty")
		}
		return nil, fmt.Errorf("failed to parse entities: %w", err)
	}
	for i, e := range entities {
		if e.Name == "" {
			return nil, fmt.Errorf("entity %d has no name", i)
		}
	}
	return entities, nil
}
