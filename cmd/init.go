package cmd

import (
	"errors"
	"fmt"
	"os"

	"aicontext/pkg/config"
	"aicontext/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newInitCmd returns the command that writes a starter config file.
func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long:  `Write a starter ai-context config file to the --config path. Existing files are kept unless --force is given.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			if err := writeTemplate(path, force); err != nil {
				return err
			}
			logging.Logger.Info("Wrote config file", zap.String("configFile", path))
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return initCmd
}

// writeTemplate writes config.Template to path.
func writeTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(config.Template), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
