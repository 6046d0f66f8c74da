package main

import (
	"context"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goran-ethernal/ReorgGuard/internal/common"
	"github.com/goran-ethernal/ReorgGuard/internal/config"
	"github.com/goran-ethernal/ReorgGuard/internal/metrics"
	internalreorg "github.com/goran-ethernal/ReorgGuard/internal/reorg"
	"github.com/goran-ethernal/ReorgGuard/internal/watcher"
	"github.com/goran-ethernal/ReorgGuard/pkg/api"
	"github.com/goran-ethernal/ReorgGuard/pkg/reorg"
	"github.com/goran-ethernal/ReorgGuard/pkg/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHistoryLimit   = 20
	metricsStopTimeout    = 5 * time.Second
	flagCurrentHeightName = "current-height"
)

func newCheckCmd(configPath *string) *cobra.Command {
	var watermarkArg, currentHeightArg string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single reorg check against the stored block history",
		Long: `Run a single reorg check for the given watermark and print the verdict.

Exit codes:
  0  no reorg
  2  reorg, the verdict names the block to roll back to
  3  insufficient history, no stored block matches the node
  4  node connection error
  5  node failed to return a stored block height
  1  any other failure`,
		RunE: func(cmd *cobra.Command, args []string) error {
			watermark, err := common.ParseUint64orHex(&watermarkArg)
			if err != nil {
				return fmt.Errorf("invalid watermark %q: %w", watermarkArg, err)
			}

			var currentHeight *uint64
			if cmd.Flags().Changed(flagCurrentHeightName) {
				height, err := common.ParseUint64orHex(&currentHeightArg)
				if err != nil {
					return fmt.Errorf("invalid current height %q: %w", currentHeightArg, err)
				}
				currentHeight = &height
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.dialNode(cmd.Context()); err != nil {
				return &exitError{code: exitConnection, err: reorg.NewConnectionError(err)}
			}

			detector := internalreorg.NewReorgDetector(a.blocks, a.client,
				a.componentLogger(common.ComponentReorgDetector))

			return runCheck(cmd, detector, watermark, currentHeight)
		},
	}

	cmd.Flags().StringVar(&watermarkArg, "watermark", "", "height up to which the consumer processed blocks (decimal or 0x hex)")
	cmd.Flags().StringVar(&currentHeightArg, flagCurrentHeightName, "", "node head height to use instead of asking the node")
	_ = cmd.MarkFlagRequired("watermark")

	return cmd
}

func runCheck(cmd *cobra.Command, detector reorg.Detector, watermark uint64, currentHeight *uint64) error {
	verdict, err := detector.DetectReorg(cmd.Context(), watermark, currentHeight)

	code := checkExitCode(verdict, err)
	if err != nil {
		return &exitError{code: code, err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), verdict.String())

	if code != exitOK {
		return &exitError{code: code}
	}
	return nil
}

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run reorg checks periodically and serve the status API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.dialNode(cmd.Context()); err != nil {
				return err
			}

			return runWatch(cmd.Context(), a)
		},
	}
}

func runWatch(ctx context.Context, a *app) error {
	if a.cfg.Watcher != nil && !a.cfg.Watcher.Enabled {
		return fmt.Errorf("watcher is disabled in configuration")
	}

	detector := internalreorg.NewReorgDetector(a.blocks, a.client,
		a.componentLogger(common.ComponentReorgDetector))
	w := watcher.New(detector, a.watermarks, a.cfg.Watcher, a.componentLogger(common.ComponentWatcher))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.Run(gctx)
	})

	if a.cfg.API != nil && a.cfg.API.Enabled {
		server := api.NewServer(a.cfg.API, w, a.blocks, a.componentLogger(common.ComponentAPI))
		g.Go(func() error {
			return server.Start(gctx)
		})
	}

	if a.cfg.Metrics != nil && a.cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(a.cfg.Metrics, a.log)
		if err := metricsServer.Start(gctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}

		g.Go(func() error {
			<-gctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), metricsStopTimeout)
			defer cancel()

			return metricsServer.Stop(stopCtx)
		})
	}

	a.log.Info("ReorgGuard watching for reorgs...")

	if err := g.Wait(); err != nil {
		return err
	}

	a.log.Info("ReorgGuard stopped")
	return nil
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored block records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.blocks.GetLatest(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no stored blocks)")
				return nil
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", record.Height, record.Hash.Hex())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "maximum number of records to list, 0 lists all")

	return cmd
}

func newRecordCmd(configPath *string) *cobra.Command {
	var heightArg, hashArg string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Store the hash of a processed block",
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := common.ParseUint64orHex(&heightArg)
			if err != nil {
				return fmt.Errorf("invalid height %q: %w", heightArg, err)
			}

			hash, err := parseHash(hashArg)
			if err != nil {
				return err
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.blocks.SaveBlocks(cmd.Context(), []*store.BlockRecord{{Height: height, Hash: hash}}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "recorded block %d %s\n", height, hash.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&heightArg, "height", "", "block height (decimal or 0x hex)")
	cmd.Flags().StringVar(&hashArg, "hash", "", "0x-prefixed 32 byte block hash")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("hash")

	return cmd
}

func parseHash(s string) (ethcommon.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return ethcommon.Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(b) != ethcommon.HashLength {
		return ethcommon.Hash{}, fmt.Errorf("invalid hash %q: expected %d bytes, got %d", s, ethcommon.HashLength, len(b))
	}
	return ethcommon.BytesToHash(b), nil
}

func newWatermarkCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watermark",
		Short: "Read or update the consumer watermark",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Print the consumer watermark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			watermark, err := a.watermarks.GetWatermark(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), watermark)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <height>",
		Short: "Set the consumer watermark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := common.ParseUint64orHex(&args[0])
			if err != nil {
				return fmt.Errorf("invalid height %q: %w", args[0], err)
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.watermarks.SetWatermark(cmd.Context(), height); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "watermark set to %d\n", height)
			return nil
		},
	}

	cmd.AddCommand(getCmd, setCmd)

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := config.JSONSchema()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return nil
		},
	}
}
