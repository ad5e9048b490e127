package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aicontext/pkg/aggregate"
	"aicontext/pkg/config"
	"aicontext/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// generateOptions is everything the generate run needs from the command line.
type generateOptions struct {
	ConfigPath string
	Flags      config.Flags
	Copy       bool
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	opts, err := readGenerateFlags(cmd)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	_, err = generate(workDir, opts, logging.Logger)
	return err
}

// readGenerateFlags collects flag values along with whether each was given
// explicitly, which drives precedence over the config file.
func readGenerateFlags(cmd *cobra.Command) (generateOptions, error) {
	flags := cmd.Flags()
	var opts generateOptions
	var err error

	if opts.ConfigPath, err = flags.GetString("config"); err != nil {
		return opts, fmt.Errorf("error reading flags: %w", err)
	}
	if opts.Flags.Output, err = flags.GetString("output"); err != nil {
		return opts, fmt.Errorf("error reading flags: %w", err)
	}
	if opts.Flags.Tree, err = flags.GetBool("tree"); err != nil {
		return opts, fmt.Errorf("error reading flags: %w", err)
	}
	if opts.Flags.Gitignore, err = flags.GetBool("gitignore"); err != nil {
		return opts, fmt.Errorf("error reading flags: %w", err)
	}
	if opts.Flags.Workers, err = flags.GetInt("workers"); err != nil {
		return opts, fmt.Errorf("error reading flags: %w", err)
	}
	if opts.Flags.MaxFileSizeKB, err = flags.GetInt("max-size-kb"); err != nil {
		return opts, fmt.Errorf("error reading flags: %w", err)
	}
	if opts.Copy, err = flags.GetBool("copy"); err != nil {
		return opts, fmt.Errorf("error reading flags: %w", err)
	}

	opts.Flags.OutputSet = flags.Changed("output")
	opts.Flags.TreeSet = flags.Changed("tree")
	opts.Flags.GitignoreSet = flags.Changed("gitignore")
	opts.Flags.WorkersSet = flags.Changed("workers")
	opts.Flags.MaxFileSizeKBSet = flags.Changed("max-size-kb")

	if opts.Flags.OutputSet && strings.TrimSpace(opts.Flags.Output) == "" {
		return opts, errors.New("--output must not be empty")
	}
	if opts.Flags.Workers < 0 || opts.Flags.MaxFileSizeKB < 0 {
		return opts, errors.New("--workers and --max-size-kb must not be negative")
	}
	return opts, nil
}

// generate loads the config, resolves it against workDir and writes the document.
func generate(workDir string, opts generateOptions, logger *zap.Logger) (aggregate.Document, error) {
	startTime := time.Now()

	configPath := opts.ConfigPath
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(workDir, configPath)
	}

	file, err := config.Load(configPath)
	if err != nil {
		return aggregate.Document{}, fmt.Errorf("failed to load config: %w", err)
	}

	resolved, err := config.Resolve(workDir, configPath, file, opts.Flags)
	if err != nil {
		return aggregate.Document{}, err
	}
	logger.Info("Resolved output path",
		zap.String("outputFile", resolved.OutputFilePath),
		zap.String("source", string(resolved.OutputSource)))
	logger.Debug("Resolved configuration",
		zap.String("configFile", resolved.ConfigFilePath),
		zap.Strings("patterns", resolved.Patterns),
		zap.Bool("tree", resolved.Tree),
		zap.Bool("gitignore", resolved.Gitignore),
		zap.Int("workers", resolved.Workers),
		zap.Int("maxFileSizeKB", resolved.MaxFileSizeKB))

	engine, err := aggregate.New(workDir, aggregate.WithReporter(logging.NewEventReporter(logger)))
	if err != nil {
		return aggregate.Document{}, err
	}

	doc, err := engine.Generate(resolved)
	if err != nil {
		return aggregate.Document{}, err
	}

	if opts.Copy {
		if err := clipboard.WriteAll(string(doc.Content)); err != nil {
			logger.Warn("Failed to copy context to clipboard", zap.Error(err))
		} else {
			logger.Info("Copied context to clipboard")
		}
	}

	logger.Info("Generation finished",
		zap.Stringer("status", doc.Status),
		zap.Int("includedFiles", len(doc.Files)),
		zap.Int("skippedFiles", len(doc.Skipped)),
		zap.Duration("elapsed", time.Since(startTime)))
	return doc, nil
}
