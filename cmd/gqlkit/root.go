package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	eventbus "github.com/hanpama/gqlkit/internal/eventbus"
	events "github.com/hanpama/gqlkit/internal/events"
	otel "github.com/hanpama/gqlkit/internal/otel"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "GQLKIT"

// subCommand pairs a command with the configuration it reads. Values come
// from flags, GQLKIT_* environment variables and the --config file, in that
// order of precedence.
type subCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper
}

func newSubCommand(cmd *cobra.Command) *subCommand {
	return &subCommand{Cmd: cmd, Conf: viper.New()}
}

// app holds what the root command sets up for its subcommands.
type app struct {
	logger   *zap.Logger
	shutdown []func(context.Context) error
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{logger: zap.NewNop()}
	rootConf := viper.New()

	root := &cobra.Command{
		Use:   "gqlkit",
		Short: "Schema tools for executable GraphQL schemas",
		Long: `gqlkit builds GraphQL schemas from SDL, attaches resolvers to them and
transforms their fields.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "Configuration file. Overridden by environment variables and flags.")
	pf.Bool("verbose", false, "Log at debug level in a human readable format.")
	pf.String("otel.endpoint", "", "OTLP collector endpoint. Tracing is off when empty.")
	pf.String("otel.service", "gqlkit", "OpenTelemetry service name.")
	bindConf(rootConf, pf)

	subcommands := []*subCommand{
		newPrintCmd(a),
		newCheckCmd(a),
		newFieldsCmd(a),
		newQueryCmd(a),
	}
	for _, sc := range subcommands {
		root.AddCommand(sc.Cmd)
		bindConf(sc.Conf, sc.Cmd.Flags())
		bindConf(sc.Conf, sc.Cmd.PersistentFlags())
		bindConf(sc.Conf, pf)
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if cfg := rootConf.GetString("config"); cfg != "" {
			for _, sc := range subcommands {
				sc.Conf.SetConfigFile(cfg)
				if err := sc.Conf.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config: %w", err)
				}
			}
		}
		return a.setup(cmd.Context(), cmd.ErrOrStderr(), rootConf)
	}
	return root, a
}

func bindConf(conf *viper.Viper, flags *pflag.FlagSet) {
	_ = conf.BindPFlags(flags)
	conf.SetEnvPrefix(envPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	conf.AutomaticEnv()
}

func (a *app) setup(ctx context.Context, stderr io.Writer, conf *viper.Viper) error {
	a.logger = newLogger(stderr, conf.GetBool("verbose"))

	eventbus.Use(eventbus.New())
	a.shutdown = append(a.shutdown, func(context.Context) error {
		eventbus.Use(nil)
		return nil
	})
	eventbus.Subscribe(func(_ context.Context, e events.SchemaTransformFinish) {
		a.logger.Debug("schema transform finished",
			zap.String("transform", e.Transform),
			zap.String("strategy", e.Strategy),
			zap.Int("entries", e.Entries),
			zap.Duration("duration", e.Duration),
			zap.Error(e.Err))
	})
	eventbus.Subscribe(func(_ context.Context, e events.GraphQLFinish) {
		a.logger.Debug("operation finished",
			zap.String("operation", e.OperationName),
			zap.String("type", e.OperationType),
			zap.Int("errors", len(e.Errors)),
			zap.Duration("duration", e.Duration))
	})

	shutdown, err := otel.Setup(ctx, conf.GetString("otel.endpoint"), conf.GetString("otel.service"))
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	a.shutdown = append(a.shutdown, shutdown)
	return nil
}

func (a *app) close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var first error
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	a.shutdown = nil
	_ = a.logger.Sync()
	return first
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if verbose {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel))
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.InfoLevel))
}

// loadSchema builds the schema of the SDL file at path.
func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	sdl, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := schema.BuildFromSource(path, string(sdl))
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return s, nil
}

// writeOutput writes text to path, or to the command output when path is
// empty.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
