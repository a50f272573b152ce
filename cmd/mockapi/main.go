package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ptjobs/internal/logging"
	"ptjobs/internal/mockapi"
	"ptjobs/internal/version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "mockapi",
		Short:         "In-memory part-time jobs marketplace API",
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logging.Setup(logging.Options{
				Level:  v.GetString("log-level"),
				Format: v.GetString("log-format"),
			}); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, v)
		},
	}

	f := cmd.Flags()
	f.String("addr", ":8000", "listen address")
	f.String("client-id", "", "OAuth2 client id accepted by /o/token/")
	f.String("client-secret", "", "OAuth2 client secret accepted by /o/token/")
	f.String("signing-key", "", "HMAC key for issued access tokens")
	f.Duration("token-ttl", 10*time.Hour, "access token lifetime")
	f.Int("page-size", 10, "page size for paginated lists")
	f.String("seed", "", "YAML fixture file (default: embedded fixtures)")
	f.String("log-level", "info", "log level: "+logging.LevelNames())
	f.String("log-format", "console", "log format: console or json")

	_ = v.BindPFlags(f)
	v.SetEnvPrefix("PTJOBS_MOCKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func serve(ctx context.Context, v *viper.Viper) error {
	log := logging.New("mockapi")

	var seed *mockapi.Seed
	if path := v.GetString("seed"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if seed, err = mockapi.ParseSeed(b); err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
	}

	srv, err := mockapi.New(mockapi.Options{
		ClientID:     v.GetString("client-id"),
		ClientSecret: v.GetString("client-secret"),
		SigningKey:   []byte(v.GetString("signing-key")),
		TokenTTL:     v.GetDuration("token-ttl"),
		PageSize:     v.GetInt("page-size"),
		Seed:         seed,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	hs := &http.Server{
		Addr:              v.GetString("addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", hs.Addr).Str("version", version.String()).Msg("mockapi listening")
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
