package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ptjobs/internal/app"
	"ptjobs/internal/domain"
	"ptjobs/internal/logging"
	"ptjobs/internal/services/catalog"
	"ptjobs/internal/services/session"
	"ptjobs/internal/store"
)

var (
	home       string
	configFile string
	apiURL     string
	logLevel   string
	ephemeral  bool
	appCtx     *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:           "ptjobs",
		Short:         "Part-time jobs marketplace CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			cfg, err := app.LoadConfig(home, configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api") {
				cfg.API.BaseURL = apiURL
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if ephemeral {
				cfg.Storage.Backend = store.BackendMemory
			}
			if err := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
				return err
			}
			if cfg.OAuth.ClientID == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: oauth.client_id is not configured; login will be rejected")
			}

			appCtx, err = app.New(cfg)
			if err != nil {
				return err
			}
			appCtx.Start(cmd.Context())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.ptjobs)")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (e.g. http://127.0.0.1:8000)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: "+logging.LevelNames())
	root.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the session in memory only")

	root.AddCommand(
		loginCmd(), registerCmd(), logoutCmd(), whoamiCmd(),
		tabsCmd(), browseCmd(),
		jobsCmd(), jobCmd(), companyCmd(), candidateCmd(), postCmd(), notificationsCmd(),
		applyCmd(), followCmd(), unfollowCmd(), newPostCmd(),
		versionCmd(),
	)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", userMessage(err))
	}
	return err
}

// userMessage trims service errors to what a person at the terminal needs.
func userMessage(err error) string {
	var ae *session.AuthError
	switch {
	case errors.As(err, &ae):
		return ae.Message
	case errors.Is(err, session.ErrBusy):
		return "another session operation is in progress"
	case errors.Is(err, catalog.ErrNotAuthenticated):
		return "not logged in (run: ptjobs login)"
	case errors.Is(err, catalog.ErrForbidden):
		return "not available for your role"
	default:
		return err.Error()
	}
}

func parseID(s, what string) (domain.ID, error) {
	id, ok := domain.ParseID(s)
	if !ok {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}
