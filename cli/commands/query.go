package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/dialog/core"
)

// extrasFlags are the request augmentation flags shared by query and voice.
type extrasFlags struct {
	contexts  []string
	latitude  float64
	longitude float64
	headers   map[string]string
}

func (f *extrasFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.contexts, "context", nil, "context to send, as name or name:lifespan (repeatable)")
	cmd.Flags().Float64Var(&f.latitude, "lat", 0, "latitude of the user")
	cmd.Flags().Float64Var(&f.longitude, "lon", 0, "longitude of the user")
	cmd.Flags().StringToStringVar(&f.headers, "header", nil, "extra HTTP header as Name=Value (repeatable)")
}

// build returns nil when no augmentation was requested.
func (f *extrasFlags) build(cmd *cobra.Command) (*core.RequestExtras, error) {
	contexts, err := parseContexts(f.contexts)
	if err != nil {
		return nil, err
	}

	extras := &core.RequestExtras{Contexts: contexts, Headers: f.headers}
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
			return nil, fmt.Errorf("--lat and --lon must be given together")
		}
		extras.Location = &core.Location{Latitude: f.latitude, Longitude: f.longitude}
	}

	if len(extras.Contexts) == 0 && extras.Location == nil && len(extras.Headers) == 0 {
		return nil, nil
	}
	return extras, nil
}

// parseContexts parses "name" or "name:lifespan" values.
func parseContexts(values []string) ([]core.Context, error) {
	var contexts []core.Context
	for _, v := range values {
		name, lifespan, hasLifespan := strings.Cut(v, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid context %q: name is empty", v)
		}
		c := core.NewContext(name)
		if hasLifespan {
			n, err := strconv.Atoi(lifespan)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid context %q: lifespan must be a non-negative integer", v)
			}
			c = c.WithLifespan(n)
		}
		contexts = append(contexts, c)
	}
	return contexts, nil
}

func (a *App) newQueryCommand() *cobra.Command {
	var flags extrasFlags

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Send a text query",
		Long: `Send a text query to the agent and print the interpreted result.

Examples:
  dialog query "What's the weather in Berlin?"
  dialog query "Book it" --context booking:2 --lat 52.52 --lon 13.40
  dialog query "Hello" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return exitWithCode(ExitValidation, fmt.Errorf("query text cannot be empty"))
			}

			extras, err := flags.build(cmd)
			if err != nil {
				return exitWithCode(ExitValidation, err)
			}

			svc, err := a.newService()
			if err != nil {
				return err
			}

			resp, err := svc.TextQuery(cmd.Context(), text, extras)
			if err != nil {
				return a.handleServiceError(err)
			}
			return a.printResponse(resp)
		},
	}
	flags.register(cmd)

	return cmd
}
