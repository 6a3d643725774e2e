package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"postsapi/app/config"
	"postsapi/app/repositories"

	"github.com/spf13/cobra"
)

// NewRootCommand constructs the posts-api command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "posts-api",
		Short:         "Posts and comments HTTP API",
		Long:          "posts-api serves a JSON API over posts and their comments and manages its datastore.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", ".", "Directory containing config.yml")

	root.AddCommand(
		newServeCommand(),
		newInitCommand(),
		newCleanCommand(),
		newBackupCommand(),
		newRestoreCommand(),
		newVersionCommand(),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	return config.Load(dir)
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return RunAppServer(ctx, cfg, logger)
		},
	}
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := storePath(cfg)
			if exists(path) {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store, err := OpenStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := store.Close(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Database initialized successfully at %s\n", path)
			return nil
		},
	}
}

func newCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := storePath(cfg)
			if !exists(path) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm(cmd.InOrStdin(), out, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the badger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := requireBadger(cfg); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !exists(cfg.DBPath) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			db, err := repositories.OpenBadger(cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			backupFile, err := Backup(db, cfg.BackupDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
}

func newRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the badger database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := requireBadger(cfg); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			backupFile := args[0]
			if !exists(backupFile) {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}

			verified, err := VerifyBackup(backupFile)
			if err != nil {
				return err
			}
			if verified {
				fmt.Fprintln(out, "Backup digest verified")
			}

			if exists(cfg.DBPath) {
				yes, _ := cmd.Flags().GetBool("yes")
				if !yes && !confirm(cmd.InOrStdin(), out, "Existing database found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return errCancelled
				}
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := Restore(backupFile, cfg.DBPath, logger); err != nil {
				return err
			}
			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Replace an existing database without asking")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "posts-api version %s\n", Version)
		},
	}
}

var errCancelled = errors.New("operation cancelled")

// storePath is the file or directory holding the configured store.
func storePath(cfg *config.Config) string {
	if cfg.StoreDriver == repositories.DriverSQLite {
		return cfg.SQLiteDSN
	}
	return cfg.DBPath
}

func requireBadger(cfg *config.Config) error {
	if cfg.StoreDriver != repositories.DriverBadger {
		return fmt.Errorf("backup and restore need the badger store, STORE_DRIVER is %q", cfg.StoreDriver)
	}
	return nil
}

// Execute runs the root command with ctx and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
