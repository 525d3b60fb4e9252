package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulse-go/internal/config"
	"pulse-go/internal/infra/database"
	infraES "pulse-go/internal/infra/elasticsearch"
	infraKafka "pulse-go/internal/infra/kafka"
	"pulse-go/internal/repository"
	"pulse-go/internal/service"
	"pulse-go/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// workerOptions 全局参数
type workerOptions struct {
	ConfigPath string
	GroupID    string
	Attempts   int
	Backoff    time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &workerOptions{}

	cmd := &cobra.Command{
		Use:   "pulse-worker",
		Short: "Pulse background worker",
		Long:  "Keeps the post search index in sync with the database.",
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "configs/config.yaml", "config file path")

	cmd.AddCommand(newIndexCommand(opts))
	cmd.AddCommand(newReindexCommand(opts))
	return cmd
}

// newIndexCommand 消费帖子事件并增量同步索引
func newIndexCommand(opts *workerOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "index",
		Short:        "Consume post events and update the search index",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, searchService, cleanup, err := bootstrap(opts.ConfigPath)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			topic := cfg.Kafka.Topic("post_events", "pulse.post.events")
			logger.Info("Index worker started",
				zap.String("topic", topic),
				zap.String("group", opts.GroupID),
				zap.Strings("brokers", cfg.Kafka.Brokers),
			)

			return infraKafka.ConsumePostEvents(ctx, infraKafka.ConsumerConfig{
				Brokers:  cfg.Kafka.Brokers,
				Topic:    topic,
				GroupID:  opts.GroupID,
				Attempts: opts.Attempts,
				Backoff:  opts.Backoff,
			}, searchService.HandlePostEvent)
		},
	}
	cmd.Flags().StringVar(&opts.GroupID, "group", "pulse-search-indexer", "kafka consumer group")
	cmd.Flags().IntVar(&opts.Attempts, "attempts", 3, "handling attempts per event before it is skipped")
	cmd.Flags().DurationVar(&opts.Backoff, "backoff", 500*time.Millisecond, "delay between attempts, grows linearly")
	return cmd
}

// newReindexCommand 全量重建索引
func newReindexCommand(opts *workerOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "reindex",
		Short:        "Rebuild the post search index from the database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, searchService, cleanup, err := bootstrap(opts.ConfigPath)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			success, failed, err := searchService.Reindex(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d posts, %d failed\n", success, failed)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("reindex: %d documents failed", failed)
			}
			return nil
		},
	}
}

// bootstrap 加载配置并初始化数据库与 Elasticsearch
func bootstrap(configPath string) (*config.Config, *service.SearchService, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		return nil, nil, nil, fmt.Errorf("init database: %w", err)
	}

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("init elasticsearch: %w", err)
	}

	index := cfg.Elasticsearch.PostsIndex()
	if err := infraES.InitIndexes(index); err != nil {
		logger.Warn("Elasticsearch index init failed", zap.Error(err))
	}

	db := database.Get()
	searchService := service.NewSearchService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		infraES.NewPostIndex(index),
	)

	cleanup := func() {
		infraES.Close()
		database.Close()
		logger.Sync()
	}
	return cfg, searchService, cleanup, nil
}
