package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
	"github.com/goliatone/go-meta-tokens/providers/meta/facebook"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const defaultDebugConcurrency = 4

func newDebugCmd(state *cliState) *cobra.Command {
	creds := &appCredentials{}
	var (
		tokens      []string
		required    []string
		viaApp      bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Debug several user tokens concurrently",
		Long: `debug calls /debug_token for every --token. Each token authorizes its own
call unless --via-app is set, in which case the app token built from the
app id and secret is used. With --require-scope, valid tokens missing any
of the listed permissions count as rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(tokens) == 0 {
				return errors.New("metatoken: at least one --token is required")
			}
			var app *facebook.AppAccessToken
			if viaApp {
				if err := creds.resolve(); err != nil {
					return err
				}
				built := facebook.AppAccessTokenWithAppSecret(creds.appID, creds.appSecret)
				app = &built
			}
			return state.runDebug(cmd, tokens, app, required, concurrency)
		},
	}
	addAppCredentialFlags(cmd, creds)
	cmd.Flags().StringArrayVar(&tokens, "token", nil, "user access token to debug (repeatable)")
	cmd.Flags().StringArrayVar(&required, "require-scope", nil, "permission every token must carry (repeatable)")
	cmd.Flags().BoolVar(&viaApp, "via-app", false, "authorize with the app access token")
	cmd.Flags().IntVar(&concurrency, "concurrency", defaultDebugConcurrency, "maximum calls in flight")
	return cmd
}

func (s *cliState) runDebug(cmd *cobra.Command, values []string, app *facebook.AppAccessToken, required []string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	client := s.facade.Tokens()
	outcomes := make([]common.Outcome[facebook.DebugTokenResult], len(values))

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(concurrency)
	for i, value := range values {
		token := facebook.NewUserAccessToken(value)
		group.Go(func() error {
			var (
				outcome common.Outcome[facebook.DebugTokenResult]
				err     error
			)
			if app != nil {
				outcome, err = client.DebugUserAccessTokenViaAppAccessToken(ctx, token, *app)
			} else {
				outcome, err = client.DebugUserAccessToken(ctx, token)
			}
			if err != nil {
				return fmt.Errorf("token %d: %w", i+1, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	rejected := 0
	for i, outcome := range outcomes {
		title := fmt.Sprintf("token %d debug", i+1)
		if outcome.Failure != nil {
			rejected++
			renderFailure(s.out, title+" rejected", *outcome.Failure)
			continue
		}
		renderDebugResult(s.out, title, outcome.Value)
		if missing := common.MissingScopes(outcome.Value.Scopes, required...); len(missing) > 0 {
			rejected++
			warn(s.errOut, "%s: missing scopes %s", title, strings.Join(missing, ","))
		}
	}
	if rejected > 0 {
		return fmt.Errorf("metatoken: %d of %d tokens were rejected", rejected, len(outcomes))
	}
	return nil
}
