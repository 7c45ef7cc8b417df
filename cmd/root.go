package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vdash/vdash/internal/aws"
	"github.com/vdash/vdash/internal/config"
	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/logging"
	"github.com/vdash/vdash/internal/view"
)

const (
	appName    = "vdash"
	appVersion = "0.1.0"
)

var (
	vdashFlags *data.Flags
	rootCmd    = &cobra.Command{
		Use:   appName,
		Short: "A terminal admin dashboard for vendors",
		Long:  `vdash manages customers and invoices from the terminal.`,
		RunE:  run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	vdashFlags = config.NewFlags()
	initVdashFlags()
	rootCmd.AddCommand(versionCmd, newExportCmd(), newSeedCmd(), newValidateCmd())
}

func initVdashFlags() {
	pf := rootCmd.PersistentFlags()
	pf.Float32VarP(vdashFlags.RefreshRate, "refresh", "r", config.DefaultRefreshRate, "Refresh rate in seconds, 0 disables polling")
	pf.StringVarP(vdashFlags.LogLevel, "log-level", "l", config.DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	pf.StringVar(vdashFlags.LogFile, "log-file", "", "Log file path")
	pf.BoolVar(vdashFlags.ReadOnly, "readonly", false, "Disable every write")
	pf.BoolVar(vdashFlags.Write, "write", false, "Enable writes (overrides readonly)")

	// Store flags
	pf.StringVar(vdashFlags.Store, "store", "", "Record store (memory, file, sqlite, s3)")
	pf.StringVar(vdashFlags.StorePath, "store-path", "", "Directory of the file store or path of the SQLite database")
	pf.StringVar(vdashFlags.Bucket, "bucket", "", "Bucket of the s3 store")
	pf.StringVar(vdashFlags.Profile, "profile", "", "AWS profile of the s3 store")
	pf.StringVar(vdashFlags.Region, "region", "", "AWS region of the s3 store")

	rootCmd.Flags().StringVarP(vdashFlags.Command, "command", "c", "", "Startup command/view")
	rootCmd.Flags().IntVar(vdashFlags.PageSize, "page-size", 0, "Rows per page for every list")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// clearUnsetFlags drops the flags left at their defaults so the config
// file keeps precedence over them.
func clearUnsetFlags(cmd *cobra.Command) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f == nil || !f.Changed
	}
	if unset("refresh") {
		vdashFlags.RefreshRate = nil
	}
	if unset("readonly") {
		vdashFlags.ReadOnly = nil
	}
	if unset("log-level") {
		vdashFlags.LogLevel = nil
	}
	if unset("page-size") {
		vdashFlags.PageSize = nil
	}
}

// bootstrap loads the configuration and installs the global logger. An
// empty log file falls back to the configured one, then to stderr when
// the caller allows it.
func bootstrap(cmd *cobra.Command, defaultLog string) (*config.Config, *aws.ProfileDiscovery, func(), error) {
	// 1. Initialize locations
	if err := config.InitLocs(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize locations: %w", err)
	}
	if err := config.InitLogLoc(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize log location: %w", err)
	}
	clearUnsetFlags(cmd)

	// 2. Load the configuration and apply CLI overrides
	cfg := config.NewConfig()
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return nil, nil, nil, err
	}
	profiles := aws.NewProfileDiscovery()
	clientCfg, err := cfg.Refine(vdashFlags, profiles)
	if err != nil {
		return nil, nil, nil, err
	}

	// 3. Logger
	file := cfg.Vdash.Logger.File
	if file == "" {
		file = defaultLog
	}
	logger, closer, err := logging.New(cfg.Vdash.Logger.Level, file)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	// 4. AWS connection for the s3 store
	if clientCfg != nil {
		conn := aws.NewAPIClient(*clientCfg)
		ctx, cancel := context.WithTimeout(cmd.Context(), config.DefaultAPITimeout)
		defer cancel()
		if err := conn.CheckConnectivity(ctx); err != nil {
			log.Warn().Err(err).Str("profile", clientCfg.Profile).Msg("AWS connectivity check failed")
		}
		cfg.SetConnection(conn)
	}

	return cfg, profiles, closer, nil
}

// openFactory opens the configured store.
func openFactory(ctx context.Context, cfg *config.Config) (*dao.DataFactory, error) {
	spec := cfg.StoreSpec()
	store, err := dao.OpenStore(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", spec.Kind, err)
	}
	log.Info().Str("store", string(spec.Kind)).Str("path", spec.Path).Str("bucket", spec.Bucket).Msg("Store opened")

	return dao.NewFactory(store, cfg.Vdash.IsReadOnly()), nil
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, _, closeLog, err := bootstrap(cmd, config.AppLogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info().Str("version", appVersion).Msg("🐶 vdash starting up...")

	_ = cfg.Save(config.AppConfigFile, false)

	factory, err := openFactory(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	app := view.NewApp(cfg, factory, appVersion)
	if err := app.Init(); err != nil {
		_ = factory.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing store")
		}
	}()

	return app.Run()
}
