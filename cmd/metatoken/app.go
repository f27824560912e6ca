package main

import (
	"fmt"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
	"github.com/goliatone/go-meta-tokens/providers/meta/facebook"
	"github.com/spf13/cobra"
)

func newAppCmd(state *cliState) *cobra.Command {
	creds := &appCredentials{}
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Generate an app access token and debug it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.resolve(); err != nil {
				return err
			}
			return state.runApp(cmd, *creds)
		},
	}
	addAppCredentialFlags(cmd, creds)
	return cmd
}

func (s *cliState) runApp(cmd *cobra.Command, creds appCredentials) error {
	ctx := cmd.Context()
	tokens := s.facade.Tokens()

	genOutcome, err := tokens.GenAppAccessToken(ctx, creds.appID, creds.appSecret)
	generated, err := unwrapOutcome(s, "app_access_token", genOutcome, err)
	if err != nil {
		return err
	}
	renderToken(s.out, "app_access_token", generated.Value())
	if appID, _, ok := generated.AppIDAndAppSecret(); !ok || appID != creds.appID {
		warn(s.errOut, "app_access_token does not carry app id %d", creds.appID)
	}

	debugOutcome, err := tokens.DebugAppAccessToken(ctx, generated)
	if err := s.showDebug("app_access_token debug", debugOutcome, err); err != nil {
		return err
	}

	local := facebook.AppAccessTokenWithAppSecret(creds.appID, creds.appSecret)
	debugOutcome, err = tokens.DebugAppAccessToken(ctx, local)
	return s.showDebug("app_access_token with_app_secret debug", debugOutcome, err)
}

func (s *cliState) showDebug(title string, outcome common.Outcome[facebook.DebugTokenResult], err error) error {
	result, err := unwrapOutcome(s, title, outcome, err)
	if err != nil {
		return err
	}
	renderDebugResult(s.out, title, result)
	return nil
}

// unwrapOutcome renders a Graph rejection and turns it into an error so the
// command stops at the first failed step.
func unwrapOutcome[T any](s *cliState, title string, outcome common.Outcome[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, fmt.Errorf("%s: %w", title, err)
	}
	if outcome.Failure != nil {
		renderFailure(s.out, title+" rejected", *outcome.Failure)
		return zero, fmt.Errorf("%s: %w", title, outcome.Failure.ErrFor(s.facade.Service()))
	}
	return outcome.Value, nil
}
