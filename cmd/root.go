package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"focusbot/internal/bot"
	"focusbot/internal/config"
	"focusbot/internal/evaluator"
	"focusbot/internal/llm"
	"focusbot/internal/logging"
	"focusbot/internal/metrics"
	"focusbot/internal/reminder"
	"focusbot/internal/session"
	"focusbot/internal/store"
	"focusbot/internal/taskgen"
	"focusbot/internal/trainer"
)

var rootCmd = &cobra.Command{
	Use:   "focusbot",
	Short: "Telegram bot for attention training",
	Long:  "Focusbot — a Telegram bot that serves LLM-generated attention-training exercises, tracks difficulty and rating, and sends daily reminders.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runBot(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	var collector metrics.Collector = metrics.Noop{}
	registry := prometheus.NewRegistry()
	if cfg.MetricsAddr != "" {
		collector = metrics.NewCollector(registry)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, log)
	if err != nil {
		return err
	}
	provider = metrics.InstrumentProvider(provider, collector)

	gen := taskgen.New(
		llm.WithTimeout(llm.WithRetry(provider, cfg.LLM.Retry), cfg.LLM.Timeout),
		taskgen.DefaultConfig())
	eval := evaluator.New(llm.WithTimeout(provider, cfg.LLM.Timeout))
	sessions := session.NewManager()

	trainerSvc := trainer.New(gen, eval, st.Users(), st.Ratings(), sessions, collector, log)

	b, err := bot.New(cfg.BotToken, trainerSvc, sessions, st.Users(), st.Ratings(), st.Reminders(), log)
	if err != nil {
		return err
	}

	triggers, err := reminder.NewRegistry(nil)
	if err != nil {
		return err
	}
	remSvc := reminder.New(triggers, st.Reminders(), st.Users(), b, collector, log)
	b.AttachReminders(remSvc)

	restored, err := remSvc.RestoreAll(ctx)
	if err != nil {
		return err
	}
	log.Infow("reminders restored", "count", restored)
	triggers.Start()

	var ops *http.Server
	if cfg.MetricsAddr != "" {
		ops = &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Router(registry)}
		go func() {
			log.Infow("ops endpoint listening", "addr", cfg.MetricsAddr)
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("ops endpoint failed", "error", err)
			}
		}()
	}

	go b.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Infow("shutting down")

	b.Stop()
	if err := triggers.Shutdown(); err != nil {
		log.Warnw("scheduler shutdown failed", "error", err)
	}
	if ops != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			log.Warnw("ops endpoint shutdown failed", "error", err)
		}
	}

	return nil
}
