package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/cindex/analyzer"
	"github.com/arloliu/cindex/codec"
	"github.com/arloliu/cindex/internal/config"
	"github.com/arloliu/cindex/store"
)

type cli struct {
	configPath  string
	logLevel    string
	showMetrics bool
	app         *app
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "cindex",
		Short:         "Convert, analyze and store canonical indices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if c.logLevel != "" {
				cfg.LogLevel = c.logLevel
			}

			c.app, err = newApp(cfg, cmd.ErrOrStderr(), c.showMetrics)

			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			defer c.app.close()

			if c.showMetrics {
				return c.app.writeMetrics(cmd.ErrOrStderr())
			}

			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log_level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&c.showMetrics, "metrics", false, "print analyzer counters to stderr on exit")

	root.AddCommand(
		c.fromTextCmd(),
		c.toTextCmd(),
		c.fromSeqCmd(),
		c.toSeqCmd(),
		c.execCmd(),
		c.analyzeCmd(),
		c.batchCmd(),
		c.saveCmd(),
		c.loadCmd(),
		c.keysCmd(),
		configInitCmd(),
	)

	return root
}

func (c *cli) fromTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-text TEXT",
		Short: "Decode text over the configured alphabet and print the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.setIndex(args[0], true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.app.handle.IndexString())

			return nil
		},
	}
}

func (c *cli) toTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-text INDEX",
		Short: "Encode a decimal index as minimal text over the configured alphabet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.setIndex(args[0], false); err != nil {
				return err
			}

			text, err := c.app.handle.TextWith(c.app.cfg.Alphabet)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.Quote(text))

			return nil
		},
	}
}

func (c *cli) fromSeqCmd() *cobra.Command {
	var bits int

	cmd := &cobra.Command{
		Use:   "from-seq WORD...",
		Short: "Decode big-endian fixed-width words and print the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words := make([]uint32, len(args))
			for i, arg := range args {
				v, err := strconv.ParseUint(arg, 10, 32)
				if err != nil {
					return fmt.Errorf("word %d: %w", i, err)
				}
				words[i] = uint32(v)
			}

			if err := c.app.handle.SetSequence(words, bits); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.app.handle.IndexString())

			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", codec.DefaultBitDepth, "word width in bits (1-32)")

	return cmd
}

func (c *cli) toSeqCmd() *cobra.Command {
	var (
		bits   int
		length int
	)

	cmd := &cobra.Command{
		Use:   "to-seq INDEX",
		Short: "Encode a decimal index as big-endian fixed-width words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.setIndex(args[0], false); err != nil {
				return err
			}

			words, err := c.app.handle.Sequence(length, bits)
			if err != nil {
				return err
			}

			parts := make([]string, len(words))
			for i, w := range words {
				parts[i] = strconv.FormatUint(uint64(w), 10)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))

			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", codec.DefaultBitDepth, "word width in bits (1-32)")
	cmd.Flags().IntVar(&length, "length", codec.MinimalLength, "number of words, -1 for minimal")

	return cmd
}

func (c *cli) execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec [RECIPE]",
		Short: "Execute a JSON instruction (from the argument or stdin) and print the index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var recipe []byte
			if len(args) == 0 || args[0] == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read recipe: %w", err)
				}
				recipe = data
			} else {
				recipe = []byte(args[0])
			}

			index, err := c.app.handle.ExecuteJSON(recipe)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), index)

			return nil
		},
	}
}

func (c *cli) analyzeCmd() *cobra.Command {
	var asText bool

	cmd := &cobra.Command{
		Use:   "analyze INPUT",
		Short: "Run the lens analyzer and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.setIndex(args[0], asText); err != nil {
				return err
			}

			report, err := c.app.handle.Analyze()
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("serialize report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return nil
		},
	}
	cmd.Flags().BoolVar(&asText, "text", false, "treat INPUT as text over the configured alphabet")

	return cmd
}

func (c *cli) batchCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze decimal indices read from stdin, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var indices []*big.Int
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
			for line := 1; scanner.Scan(); line++ {
				s := strings.TrimSpace(scanner.Text())
				if s == "" {
					continue
				}
				index, err := codec.ParseIndex(s)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				indices = append(indices, index)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}

			reports, err := analyzer.AnalyzeAll(cmd.Context(), c.app.reporter, indices, jobs)
			if err != nil {
				return err
			}

			for _, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", r.Index, r.RecommendedLens, r.RecommendedCost)
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "concurrent analyses, 0 for one per CPU")

	return cmd
}

func (c *cli) saveCmd() *cobra.Command {
	var asText bool

	cmd := &cobra.Command{
		Use:   "save KEY INPUT",
		Short: "Analyze INPUT and store the recommended instruction under KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.setIndex(args[1], asText); err != nil {
				return err
			}

			return c.app.withStore(cmd.Context(), func(ctx context.Context, s *store.InstructionStore) error {
				saved, err := c.app.handle.Save(ctx, s, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), saved)

				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asText, "text", false, "treat INPUT as text over the configured alphabet")

	return cmd
}

func (c *cli) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load KEY",
		Short: "Execute the instruction stored under KEY and print the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.withStore(cmd.Context(), func(ctx context.Context, s *store.InstructionStore) error {
				ok, err := c.app.handle.Load(ctx, s, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no instruction stored under %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.app.handle.IndexString())

				return nil
			})
		},
	}
}

func (c *cli) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [PREFIX]",
		Short: "List stored keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			return c.app.withStore(cmd.Context(), func(ctx context.Context, s *store.InstructionStore) error {
				keys, err := s.Keys(ctx, prefix)
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}

				return nil
			})
		},
	}
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-init PATH",
		Short: "Write the default configuration to PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", args[0])

			return nil
		},
	}
}
