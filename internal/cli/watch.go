package cli

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"

	"github.com/zoobzio/perch/pkg/config"
	"github.com/zoobzio/perch/pkg/config/redis"
)

func newWatchCmd() *cobra.Command {
	var (
		debounce  time.Duration
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch [file|key]",
		Short: "Recompute the placement whenever a layout file or Redis key changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			watcher, codecOpt, err := layoutSource(ctx, args[0], redisAddr)
			if err != nil {
				return err
			}

			hookLoaderEvents(logger)

			loader := config.NewLoader(
				watcher,
				func(doc config.Document) error {
					res, err := place(doc)
					if err != nil {
						return err
					}
					return writeResult(cmd.OutOrStdout(), res, formatText)
				},
				codecOpt,
				config.WithDebounce(debounce),
			)

			if err := loader.Start(ctx); err != nil {
				logger.Error("initial layout failed", "err", err)
			}
			logger.Info("watching", "source", args[0], "redis", redisAddr != "")

			<-ctx.Done()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", config.DefaultDebounce, "wait this long for writes to settle")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "read the layout from this key on a Redis server (host:port)")
	return cmd
}

// layoutSource picks the watcher for source. Files choose their codec by
// extension; Redis values are sniffed.
func layoutSource(ctx context.Context, source, redisAddr string) (config.Watcher, config.Option, error) {
	if redisAddr != "" {
		client, err := redis.Dial(ctx, redisAddr)
		if err != nil {
			return nil, nil, err
		}
		go func() {
			<-ctx.Done()
			_ = client.Close() //nolint:errcheck // Shutdown best effort
		}()
		return redis.New(client, source), config.WithCodec(nil), nil
	}

	codec, err := config.CodecFor(source)
	if err != nil {
		return nil, nil, err
	}
	return config.NewFileWatcher(source), config.WithCodec(codec), nil
}

// hookLoaderEvents logs loader signals.
func hookLoaderEvents(logger *log.Logger) {
	capitan.Hook(config.LoaderStateChanged, func(_ context.Context, e *capitan.Event) {
		from, _ := config.KeyOldState.From(e)
		to, _ := config.KeyNewState.From(e)
		logger.Debug("state changed", "from", from, "to", to)
	})
	capitan.Hook(config.ValidationFailed, func(_ context.Context, e *capitan.Event) {
		msg, _ := config.KeyError.From(e)
		logger.Warn("layout rejected", "err", msg)
	})
	capitan.Hook(config.DecodeFailed, func(_ context.Context, e *capitan.Event) {
		msg, _ := config.KeyError.From(e)
		logger.Warn("layout unreadable", "err", msg)
	})
}
