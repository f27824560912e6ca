package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	metatokens "github.com/goliatone/go-meta-tokens"
	"github.com/goliatone/go-meta-tokens/core"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envAppID     = "META_APP_ID"
	envAppSecret = "META_APP_SECRET"

	defaultEnvFile = ".env"
)

// rootOptions carries collaborators tests swap out.
type rootOptions struct {
	transport core.TransportAdapter
	now       func() time.Time
}

type cliState struct {
	options rootOptions
	out     io.Writer
	errOut  io.Writer

	configPath   string
	envFile      string
	graphVersion string
	baseURL      string
	verbose      bool

	facade *metatokens.Facade
}

func newRootCmd(options rootOptions, out, errOut io.Writer) *cobra.Command {
	if options.now == nil {
		options.now = time.Now
	}
	state := &cliState{options: options, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "metatoken",
		Short: "Exchange and inspect Facebook Graph access tokens",
		Long: `metatoken drives the Graph API token endpoints: it generates app tokens,
exchanges short-lived user tokens, derives session-info tokens and
debugs any of them through /debug_token.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.setup()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&state.configPath, "config", "", "YAML config file with service_name and graph settings")
	flags.StringVar(&state.envFile, "env-file", "", "dotenv file to load before reading "+envAppID+" and "+envAppSecret)
	flags.StringVar(&state.graphVersion, "graph-version", "", "Graph API version, for example v15.0")
	flags.StringVar(&state.baseURL, "base-url", "", "Graph API base URL")
	flags.BoolVarP(&state.verbose, "verbose", "v", false, "log every Graph call")

	cmd.AddCommand(
		newAppCmd(state),
		newUserCmd(state),
		newPageCmd(state),
		newDebugCmd(state),
		newSearchCmd(state),
	)
	return cmd
}

func (s *cliState) setup() error {
	if err := loadEnvFile(s.envFile); err != nil {
		return err
	}

	opts := []metatokens.Option{
		metatokens.WithLogger(newSlogLogger(s.errOut, s.verbose)),
	}
	if s.configPath != "" {
		opts = append(opts, metatokens.WithConfigProvider(core.NewCfgxConfigProvider(yamlConfigLoader{Path: s.configPath})))
	}
	if s.options.transport != nil {
		opts = append(opts, metatokens.WithTransport(s.options.transport))
	}

	runtime := metatokens.Config{Graph: metatokens.GraphConfig{
		BaseURL: s.baseURL,
		Version: s.graphVersion,
	}}
	facade, err := metatokens.New(runtime, opts...)
	if err != nil {
		return fmt.Errorf("metatoken: build client: %w", err)
	}
	s.facade = facade
	return nil
}

// loadEnvFile loads path, or ./.env when path is empty and the file exists.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("metatoken: load env file %s: %w", path, err)
	}
	return nil
}

type appCredentials struct {
	appID     uint64
	appSecret string
}

func addAppCredentialFlags(cmd *cobra.Command, creds *appCredentials) {
	cmd.Flags().Uint64Var(&creds.appID, "app-id", 0, "app id (default $"+envAppID+")")
	cmd.Flags().StringVar(&creds.appSecret, "app-secret", "", "app secret (default $"+envAppSecret+")")
}

// resolve fills unset credentials from the environment.
func (c *appCredentials) resolve() error {
	if c.appID == 0 {
		raw := strings.TrimSpace(os.Getenv(envAppID))
		if raw == "" {
			return errors.New("metatoken: --app-id or " + envAppID + " is required")
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("metatoken: %s is not a numeric app id: %w", envAppID, err)
		}
		c.appID = id
	}
	if c.appSecret == "" {
		c.appSecret = strings.TrimSpace(os.Getenv(envAppSecret))
		if c.appSecret == "" {
			return errors.New("metatoken: --app-secret or " + envAppSecret + " is required")
		}
	}
	return nil
}
