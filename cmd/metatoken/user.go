package main

import (
	"errors"

	"github.com/goliatone/go-meta-tokens/providers/meta/facebook"
	"github.com/spf13/cobra"
)

func newUserCmd(state *cliState) *cobra.Command {
	creds := &appCredentials{}
	var token string
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Exchange a short-lived user token and walk the session-info flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errors.New("metatoken: --token is required")
			}
			if err := creds.resolve(); err != nil {
				return err
			}
			return state.runUser(cmd, *creds, facebook.NewShortLivedUserAccessToken(token))
		},
	}
	addAppCredentialFlags(cmd, creds)
	cmd.Flags().StringVar(&token, "token", "", "short-lived user access token")
	return cmd
}

func (s *cliState) runUser(cmd *cobra.Command, creds appCredentials, shortLived facebook.ShortLivedUserAccessToken) error {
	ctx := cmd.Context()
	tokens := s.facade.Tokens()
	app := facebook.AppAccessTokenWithAppSecret(creds.appID, creds.appSecret)

	debugOutcome, err := tokens.DebugUserAccessToken(ctx, shortLived)
	if err := s.showDebug("short_lived_user_access_token debug", debugOutcome, err); err != nil {
		return err
	}

	exchange, err := tokens.GetLongLivedUserAccessToken(ctx, creds.appID, creds.appSecret, shortLived)
	longLived, err := unwrapOutcome(s, "long_lived_user_access_token", exchange, err)
	if err != nil {
		return err
	}
	renderGrant(s.out, "long_lived_user_access_token", longLived, s.options.now())

	debugOutcome, err = tokens.DebugUserAccessToken(ctx, longLived.Token)
	if err := s.showDebug("long_lived_user_access_token debug", debugOutcome, err); err != nil {
		return err
	}
	debugOutcome, err = tokens.DebugUserAccessTokenViaAppAccessToken(ctx, longLived.Token, app)
	if err := s.showDebug("long_lived_user_access_token debug via app", debugOutcome, err); err != nil {
		return err
	}

	generated, err := tokens.GenUserSessionInfoAccessToken(ctx, creds.appID, longLived.Token)
	sessionInfo, err := unwrapOutcome(s, "user_session_info_access_token", generated, err)
	if err != nil {
		return err
	}
	renderGrant(s.out, "user_session_info_access_token", sessionInfo, s.options.now())

	selfDebug, err := tokens.SelfDebugUserSessionInfoAccessToken(ctx, sessionInfo.Token)
	if err := s.checkSelfDebug("user_session_info_access_token", selfDebug, err); err != nil {
		return err
	}

	debugOutcome, err = tokens.DebugUserSessionInfoAccessTokenViaLongLivedUserAccessToken(ctx, sessionInfo.Token, longLived.Token)
	if err := s.showDebug("user_session_info_access_token debug via long_lived_user_access_token", debugOutcome, err); err != nil {
		return err
	}
	debugOutcome, err = tokens.DebugUserSessionInfoAccessTokenViaAppAccessToken(ctx, sessionInfo.Token, app)
	return s.showDebug("user_session_info_access_token debug via app", debugOutcome, err)
}
