package main

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
	"github.com/goliatone/go-meta-tokens/providers/meta/facebook"
	"github.com/spf13/cobra"
)

func newPageCmd(state *cliState) *cobra.Command {
	creds := &appCredentials{}
	var token string
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Debug a page token and walk the page session-info flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errors.New("metatoken: --token is required")
			}
			if err := creds.resolve(); err != nil {
				return err
			}
			return state.runPage(cmd, *creds, facebook.NewPageAccessToken(token))
		},
	}
	addAppCredentialFlags(cmd, creds)
	cmd.Flags().StringVar(&token, "token", "", "page access token")
	return cmd
}

func (s *cliState) runPage(cmd *cobra.Command, creds appCredentials, page facebook.PageAccessToken) error {
	ctx := cmd.Context()
	tokens := s.facade.Tokens()

	debugOutcome, err := tokens.DebugPageAccessToken(ctx, page)
	if err := s.showDebug("page_access_token debug", debugOutcome, err); err != nil {
		return err
	}

	generated, err := tokens.GenPageSessionInfoAccessToken(ctx, creds.appID, page)
	sessionInfo, err := unwrapOutcome(s, "page_session_info_access_token", generated, err)
	if err != nil {
		return err
	}
	renderGrant(s.out, "page_session_info_access_token", sessionInfo, s.options.now())

	selfDebug, err := tokens.SelfDebugPageSessionInfoAccessToken(ctx, sessionInfo.Token)
	if err := s.checkSelfDebug("page_session_info_access_token", selfDebug, err); err != nil {
		return err
	}

	debugOutcome, err = tokens.DebugPageSessionInfoAccessTokenViaPageAccessToken(ctx, sessionInfo.Token, page)
	if err := s.showDebug("page_session_info_access_token debug via page_access_token", debugOutcome, err); err != nil {
		return err
	}
	app := facebook.AppAccessTokenWithAppSecret(creds.appID, creds.appSecret)
	debugOutcome, err = tokens.DebugPageSessionInfoAccessTokenViaAppAccessToken(ctx, sessionInfo.Token, app)
	return s.showDebug("page_session_info_access_token debug via app", debugOutcome, err)
}

// checkSelfDebug reports whether Graph refused the session-info token as
// debug-only. Any other answer is printed as a warning and the flow goes on.
func (s *cliState) checkSelfDebug(title string, outcome common.Outcome[common.GraphError], err error) error {
	if err != nil {
		return fmt.Errorf("%s self debug: %w", title, err)
	}
	if outcome.Failure != nil {
		renderFailure(s.out, title+" self debug unexpected", *outcome.Failure)
		warn(s.errOut, "debug_token %s: expected a debug-only refusal, got status %d", title, outcome.Failure.StatusCode)
		return nil
	}
	renderKeyValues(s.out, title+" self debug", [][2]string{
		{"refused", "true"},
		{"message", outcome.Value.Message},
	})
	return nil
}
