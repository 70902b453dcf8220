package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/logging"
)

// cli carries what every command needs: output streams, the environment and
// the flag values shared by all commands.
type cli struct {
	stdout io.Writer
	stderr io.Writer
	lookup func(string) (string, bool)

	envFile  string
	env      string
	theme    string
	dataset  string
	logLevel string

	host       string
	port       int
	rateLimit  int
	sessionTTL time.Duration
}

func newRootCmd(stdout, stderr io.Writer, lookup func(string) (string, bool)) *cobra.Command {
	return newCLI(stdout, stderr, lookup).command()
}

func newCLI(stdout, stderr io.Writer, lookup func(string) (string, bool)) *cli {
	return &cli{stdout: stdout, stderr: stderr, lookup: lookup}
}

// command builds the command tree with its flags bound to c.
func (c *cli) command() *cobra.Command {
	defaults := appconf.Default()

	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Industry-specific decarbonization pathways dashboard",
		Long: `Compares illustrative Scope 1/2/3 profiles, Scope 3 dependencies and abatement
costs across Food & Beverage, Technology and Heavy Manufacturing.

Run without a subcommand to start the web server.`,
		SilenceUsage: true,
		RunE:         c.runServe,
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded outside production")
	pf.StringVar(&c.env, "env", defaults.Env.String(), "Environment (development|test|production)")
	pf.StringVar(&c.theme, "theme", string(defaults.Theme), "Colour theme (light|dark)")
	pf.StringVar(&c.dataset, "dataset", "", "YAML dataset overriding the embedded one")
	pf.StringVar(&c.logLevel, "log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")

	c.addServeFlags(root.Flags(), defaults)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
	c.addServeFlags(serve.Flags(), defaults)

	root.AddCommand(serve, c.newRenderCmd())
	return root
}

func (c *cli) addServeFlags(fs *pflag.FlagSet, defaults appconf.Config) {
	fs.StringVar(&c.host, "host", defaults.Host, "Listen host")
	fs.IntVar(&c.port, "port", defaults.Port, "Listen port")
	fs.IntVar(&c.rateLimit, "rate-limit", defaults.RateLimit, "Requests per second per client, 0 disables")
	fs.DurationVar(&c.sessionTTL, "session-ttl", defaults.SessionTTL, "Idle time before a session expires")
}

// loadConfig resolves configuration from defaults, the dotenv file, the
// environment and finally the flags the user actually set.
func (c *cli) loadConfig(cmd *cobra.Command) (appconf.Config, error) {
	envName, _ := c.lookup(appconf.EnvEnvironment)
	if cmd.Flags().Changed("env") {
		envName = c.env
	}
	if appconf.EnvFlagToEnvironment(envName) != appconf.Production {
		if err := appconf.LoadDotEnv(c.envFile); err != nil {
			return appconf.Config{}, err
		}
	}

	cfg, err := appconf.FromEnv(appconf.Default(), c.lookup)
	if err != nil {
		return appconf.Config{}, fmt.Errorf("reading environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("env") {
		cfg.Env = appconf.EnvFlagToEnvironment(c.env)
	}
	if flags.Changed("theme") {
		cfg.Theme = appconf.Theme(c.theme)
	}
	if flags.Changed("dataset") {
		cfg.DatasetPath = c.dataset
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Lookup("host") != nil {
		if flags.Changed("host") {
			cfg.Host = c.host
		}
		if flags.Changed("port") {
			cfg.Port = c.port
		}
		if flags.Changed("rate-limit") {
			cfg.RateLimit = c.rateLimit
		}
		if flags.Changed("session-ttl") {
			cfg.SessionTTL = c.sessionTTL
		}
	}

	if err := cfg.Validate(); err != nil {
		return appconf.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *cli) newLogger(cfg appconf.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewStructuredLogger(c.stderr, level), nil
}
