package commands

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/spf13/cobra"

	"github.com/petal-labs/dialog/cli/config"
)

var validAgentName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func validateAgentName(name string) error {
	if name == "" {
		return fmt.Errorf("agent name cannot be empty")
	}
	if !validAgentName.MatchString(name) {
		return fmt.Errorf("invalid agent name %q: must start with a letter and contain only letters, numbers, underscores, and hyphens", name)
	}
	return nil
}

func (a *App) newAgentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Manage configured agents",
	}

	var (
		ac         config.AgentConfig
		setDefault bool
	)
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace an agent in the config file",
		Long: `Add or replace an agent in the config file. The first agent added
becomes the default.

Example:
  dialog agents add pizza --language de
  dialog keys set pizza`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := validateAgentName(name); err != nil {
				return exitWithCode(ExitValidation, err)
			}
			if _, err := ac.Configuration("validate"); err != nil {
				return exitWithCode(ExitValidation, err)
			}

			a.cfg.SetAgent(name, ac)
			if setDefault {
				a.cfg.DefaultAgent = name
			}
			if err := a.saveConfig(a.cfgPath, a.cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(a.stdout, "Agent %s saved to %s.\n", name, a.cfgPath)
			return nil
		},
	}
	add.Flags().StringVar(&ac.Language, "language", "", "query language (default en)")
	add.Flags().StringVar(&ac.BaseURL, "base-url", "", "service endpoint root")
	add.Flags().StringVar(&ac.Proxy, "proxy", "", "HTTP proxy URL")
	add.Flags().StringVar(&ac.APIKeyRef, "key-ref", "", "keystore entry holding the token (default: agent name)")
	add.Flags().StringVar(&ac.SessionID, "session-id", "", "fixed session id")
	add.Flags().BoolVar(&ac.WriteSoundLog, "sound-log", false, "keep a copy of every voice upload")
	add.Flags().StringVar(&ac.SoundLogDir, "sound-log-dir", "", "directory for voice copies (default: temp dir)")
	add.Flags().BoolVar(&setDefault, "default", false, "make this the default agent")

	list := &cobra.Command{
		Use:   "list",
		Short: "List configured agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Agents) == 0 {
				fmt.Fprintln(a.stdout, "No agents configured.")
				return nil
			}

			names := make([]string, 0, len(a.cfg.Agents))
			for name := range a.cfg.Agents {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				marker := " "
				if name == a.cfg.DefaultAgent {
					marker = "*"
				}
				lang := a.cfg.Agents[name].Language
				if lang == "" {
					lang = "en"
				}
				fmt.Fprintf(a.stdout, "%s %s (%s)\n", marker, name, lang)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
