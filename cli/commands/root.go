// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/dialog/cli/config"
	"github.com/petal-labs/dialog/cli/keystore"
	"github.com/petal-labs/dialog/core"
	"github.com/petal-labs/dialog/dataservice"
)

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dialog",
		Short: "Dialog - talk to a natural language agent from the terminal",
		Long: `Dialog is a command-line interface for a natural language understanding agent.

Use Dialog to send text and voice queries, manage session contexts,
upload user entities and store agent access tokens.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.initLogger()
			return a.initConfig()
		},
		SilenceUsage: true,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.dialog/config.yaml)")
	root.PersistentFlags().StringVar(&a.agent, "agent", "", "agent name from the config file")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newQueryCommand())
	root.AddCommand(a.newVoiceCommand())
	root.AddCommand(a.newResetCommand())
	root.AddCommand(a.newEntitiesCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newAgentsCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

func (a *App) initLogger() {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: a.stderr, TimeFormat: time.TimeOnly, NoColor: !isTerminal(a.stderr)}
	a.log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to load config: %w", err))
	}
	a.cfg = cfg
	a.cfgPath = path

	// Apply config defaults if flags not set.
	if a.agent == "" && cfg.DefaultAgent != "" {
		a.agent = cfg.DefaultAgent
	}

	return nil
}

// newService builds a data service for the selected agent. The access token
// comes from the keystore entry named by the agent's api_key_ref and falls
// back to DIALOG_ACCESS_TOKEN.
func (a *App) newService() (*dataservice.Service, error) {
	var agentCfg *config.AgentConfig
	if a.agent != "" {
		agentCfg = a.cfg.GetAgent(a.agent)
		if agentCfg == nil {
			return nil, exitWithCode(ExitValidation, fmt.Errorf("unknown agent %q: run 'dialog agents add %s' first", a.agent, a.agent))
		}
	}

	token, err := a.accessToken(agentCfg)
	if err != nil {
		return nil, err
	}

	cfg, err := agentCfg.Configuration(token)
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}

	opts := []dataservice.Option{dataservice.WithLogger(a.log)}
	if agentCfg != nil && agentCfg.SessionID != "" {
		opts = append(opts, dataservice.WithServiceContext(core.NewServiceContext(agentCfg.SessionID)))
	}

	svc, err := dataservice.New(cfg, opts...)
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	a.log.Debug().Str("agent", a.agent).Str("session_id", svc.Context().SessionID()).Msg("service ready")
	return svc, nil
}

func (a *App) accessToken(agentCfg *config.AgentConfig) (string, error) {
	if a.agent == "" {
		if token := a.getenv(AccessTokenEnv); token != "" {
			return token, nil
		}
		return "", exitWithCode(ExitValidation, fmt.Errorf("no access token: use --agent or set %s", AccessTokenEnv))
	}

	ref := agentCfg.KeyRef(a.agent)
	ks, err := a.newKeystore()
	if err != nil {
		return "", exitWithCode(ExitValidation, fmt.Errorf("failed to open keystore: %w", err))
	}
	token, err := ks.Get(ref)
	if err == nil {
		return token, nil
	}
	var nf *keystore.ErrKeyNotFound
	if !errors.As(err, &nf) {
		return "", exitWithCode(ExitValidation, fmt.Errorf("failed to read access token: %w", err))
	}

	a.log.Debug().Str("key", ref).Msg("no keystore entry, trying environment")
	if token := a.getenv(AccessTokenEnv); token != "" {
		return token, nil
	}
	return "", exitWithCode(ExitValidation, fmt.Errorf("no access token for %s: run 'dialog keys set %s' or set %s", a.agent, ref, AccessTokenEnv))
}
