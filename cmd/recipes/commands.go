package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cookbook/internal/config"
	"cookbook/internal/logger"
	"cookbook/internal/recipes"
)

type rootOptions struct {
	workDir  string
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "recipes",
		Short:         "Browse and run the numbered cookbook recipes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.workDir, "workdir", ".", "directory recipes read and write files in")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level for recipe diagnostics (defaults to LOG_LEVEL)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newRunCmd(opts),
	)
	return root
}

func newListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeList(cmd.OutOrStdout(), recipes.Default().All(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func writeList(w io.Writer, all []recipes.Recipe, format string) error {
	switch format {
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tCATEGORY\tTITLE")
		for _, r := range all {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Number, r.Category, r.Title)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(all); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Describe one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lookup(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d. %s\n", r.Number, r.Title)
			fmt.Fprintf(out, "category: %s\n", r.Category)
			fmt.Fprintln(out, r.Summary)
			return nil
		},
	}
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "run <number>",
		Short: "Run one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lookup(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := opts.logLevel
			if level == "" {
				level = cfg.LogLevel
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			return recipes.Default().Run(ctx, r.Number, &recipes.Runtime{
				Out:     cmd.OutOrStdout(),
				Config:  cfg,
				Log:     logger.New(cmd.ErrOrStderr(), level, cfg.Location()),
				WorkDir: opts.workDir,
			})
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 2*time.Minute, "abort the recipe after this long (0 disables)")
	return cmd
}

func lookup(arg string) (recipes.Recipe, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return recipes.Recipe{}, fmt.Errorf("recipe number must be an integer, got %q", arg)
	}
	return recipes.Default().Get(n)
}
