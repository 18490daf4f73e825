package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func (a *App) newVoiceCommand() *cobra.Command {
	var flags extrasFlags

	cmd := &cobra.Command{
		Use:   "voice <file.wav|->",
		Short: "Send a recorded voice query",
		Long: `Upload recorded audio and print the interpreted result.
Pass "-" to read the audio from stdin.

Examples:
  dialog voice hello.wav
  arecord -f S16_LE -r 16000 -d 3 | dialog voice - --context kitchen`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extras, err := flags.build(cmd)
			if err != nil {
				return exitWithCode(ExitValidation, err)
			}

			var audio io.Reader = a.stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return exitWithCode(ExitValidation, fmt.Errorf("failed to open audio: %w", err))
				}
				defer f.Close()
				audio = f
			}

			svc, err := a.newService()
			if err != nil {
				return err
			}

			resp, err := svc.VoiceQuery(cmd.Context(), audio, extras)
			if err != nil {
				return a.handleServiceError(err)
			}
			return a.printResponse(resp)
		},
	}
	flags.register(cmd)

	return cmd
}

func (a *App) newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the session's contexts",
		Long: `Clear every context the agent holds for the configured session.
Set session_id on the agent to target a long-lived session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}

			ok := svc.ResetContexts(cmd.Context())
			if a.jsonOutput {
				fmt.Fprintf(a.stdout, `{"sessionId":%q,"reset":%t}`+"\n", svc.Context().SessionID(), ok)
			} else if ok {
				fmt.Fprintf(a.stdout, "Contexts cleared for session %s.\n", svc.Context().SessionID())
			}
			if !ok {
				return exitWithCode(ExitService, fmt.Errorf("failed to reset contexts for session %s", svc.Context().SessionID()))
			}
			return nil
		},
	}
}
