// Package cli wires configuration, logging and the roster commands into a
// cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"roster/internal/config"
	"roster/internal/logger"
	"roster/internal/output"
)

// app carries what every command needs once flags and environment have
// been resolved.
type app struct {
	cfg *config.Configuration
	out *output.Output
	log logger.Logger
}

// flagOverrides maps persistent flags to configuration paths.
var flagOverrides = map[string]string{
	"store":     "store.path",
	"driver":    "store.driver",
	"log-level": "log.level",
	"log-json":  "log.json",
	"verbose":   "verbose",
}

// RootCmd returns the roster command tree. Without a subcommand it starts
// the interactive shell.
func RootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "roster",
		Short:         "Maintain the msr and qt name lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("store", "", "path of the roster document (default igns.json)")
	flags.String("driver", "", "storage backend: file or sqlite")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.BoolP("verbose", "v", false, "print extra detail")

	root.AddCommand(
		shellCmd(a),
		addCmd(a),
		removeCmd(a),
		organizeCmd(a),
		pushCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	overrides := extractOverrides(cmd)

	cfg, err := config.Load(overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.Log.JSON,
		AddSource:  cfg.Log.Source,
		TimeFormat: logger.DefaultConfig().TimeFormat,
	})

	outCfg := output.DefaultConfig()
	outCfg.Verbose = cfg.Verbose
	outCfg.Writer = cmd.OutOrStdout()
	outCfg.ErrWriter = cmd.ErrOrStderr()
	a.out = output.New(outCfg)

	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), a.log))
	a.log.Debug("configuration loaded", "driver", cfg.Store.Driver, "path", cfg.Store.Path)
	return nil
}

// extractOverrides collects the persistent flags the user actually set.
func extractOverrides(cmd *cobra.Command) map[string]any {
	overrides := make(map[string]any)
	flags := cmd.Flags()

	for flag, path := range flagOverrides {
		if !flags.Changed(flag) {
			continue
		}
		switch flag {
		case "log-json", "verbose":
			if v, err := flags.GetBool(flag); err == nil {
				overrides[path] = v
			}
		default:
			if v, err := flags.GetString(flag); err == nil {
				overrides[path] = v
			}
		}
	}
	return overrides
}
