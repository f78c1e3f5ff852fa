package cmd

import (
	"fmt"
	"time"

	"odatatable/internal/config"
	"odatatable/internal/grid"
	"odatatable/internal/model"
	"odatatable/internal/odata"
	"odatatable/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// options holds flags that are not routed through viper.
type options struct {
	cfgFile string
	sort    []string
	filter  []string
	page    int
}

// flagKeys maps config keys to the persistent flags bound to them.
var flagKeys = map[string]string{
	"endpoint": "endpoint",
	"pageSize": "page-size",
	"timeout":  "timeout",
	"logFile":  "log-file",
	"debug":    "debug",
}

// Execute runs the command line.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "odatatable",
		Short:         "Browse an OData people collection in the terminal",
		Long:          `Browse an OData people collection as a paginated table with server-side sorting and filtering`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			state, err := initialState(cfg)
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(cfg.LogFile, cfg.Debug)
			if err != nil {
				return err
			}
			defer closeLog()

			logger.Info("starting odatatable", "version", version, "endpoint", cfg.Endpoint, "page_size", cfg.PageSize)
			client := odata.NewClient(cfg.Endpoint, cfg.Timeout, logger)

			p := tea.NewProgram(
				ui.New(client, client.Endpoint(), state, logger),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running app: %w", err)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default searches ./odatatable.yaml, ./config, ~/.odatatable)")
	flags.String("endpoint", odata.DefaultEndpoint, "OData collection URL")
	flags.Int("page-size", model.DefaultPageSize, "initial rows per page (5, 10, 25 or 50)")
	flags.Duration("timeout", 15*time.Second, "timeout for a single page request")
	flags.String("log-file", config.DefaultLogFile(), `diagnostic log file, "-" disables logging`)
	flags.Bool("debug", false, "write debug level log records")
	flags.StringArrayVar(&opts.sort, "sort", nil, "initial sort key as Field[:asc|desc], repeatable")
	flags.StringArrayVar(&opts.filter, "filter", nil, "initial filter as Field:operator:value, repeatable")

	rootCmd.AddCommand(newURLCmd(opts))
	return rootCmd
}

func newURLCmd(opts *options) *cobra.Command {
	urlCmd := &cobra.Command{
		Use:   "url",
		Short: "Print the request URL for a page",
		Long:  `Print the OData request URL the table would issue for the given page, sort and filter`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			state, err := initialState(cfg)
			if err != nil {
				return err
			}

			reqURL, err := state.WithPage(opts.page).Request().URL(cfg.Endpoint)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reqURL)
			return nil
		},
	}
	urlCmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	return urlCmd
}

// loadConfig binds the flags of cmd and loads the merged configuration.
// Sort and filter flags replace any lists from the config file.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	mgr := config.NewManager()
	for key, name := range flagKeys {
		if err := mgr.Viper().BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg, err := mgr.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if len(opts.sort) > 0 {
		cfg.Sort = opts.sort
	}
	if len(opts.filter) > 0 {
		cfg.Filter = opts.filter
	}
	return cfg, nil
}

func initialState(cfg *config.Config) (grid.State, error) {
	state, err := grid.New(cfg.PageSize)
	if err != nil {
		return grid.State{}, err
	}
	sort, filter, err := cfg.Criteria()
	if err != nil {
		return grid.State{}, err
	}
	return state.WithSort(sort).WithFilter(filter), nil
}
