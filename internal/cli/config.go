package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ivolkov/audiodigest/internal/config"
)

// configKeys lists the recognized configuration keys.
var configKeys = map[string]bool{
	config.KeyResultsDir: true,
}

func newConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage audiodigest configuration",
	}

	cmd.AddCommand(
		newConfigGetCmd(env),
		newConfigSetCmd(env),
		newConfigListCmd(env),
	)

	return cmd
}

func newConfigGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !configKeys[key] {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}
			cfg, err := env.ConfigLoader.Load()
			if err != nil {
				return err
			}
			switch key {
			case config.KeyResultsDir:
				fmt.Fprintln(env.Stdout, cfg.ResultsDir)
			}
			return nil
		},
	}
}

func newConfigSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !configKeys[key] {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}
			if err := config.Save(key, value); err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "%s = %s\n", key, value)
			return nil
		},
	}
}

func newConfigListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all stored configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := config.List()
			if err != nil {
				return err
			}
			if len(values) == 0 {
				fmt.Fprintln(env.Stdout, "No configuration set.")
				return nil
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(env.Stdout, "%s = %s\n", k, values[k])
			}
			return nil
		},
	}
}
