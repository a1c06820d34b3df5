package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"oncampus/internal/collection"
	"oncampus/internal/config"
	"oncampus/internal/directory"
	"oncampus/internal/logger"
	"oncampus/internal/models"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// OpenFunc builds a Directory from configuration. directory.Open is the
// default; tests swap in one backed by a memory store.
type OpenFunc func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*directory.Directory, func() error, error)

// App carries the state shared by every subcommand.
type App struct {
	Out  io.Writer
	Err  io.Writer
	Open OpenFunc

	envFile string
	format  string
	verbose bool
}

func NewApp() *App {
	return &App{
		Out: os.Stdout,
		Err: os.Stderr,
		Open: func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*directory.Directory, func() error, error) {
			return directory.Open(ctx, cfg, log)
		},
	}
}

// NewRootCmd creates the root command
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oncampus",
		Short: "Manage the OnCampus club, event and benefit directories",
		Long: `Lists and edits the OnCampus directories in the configured store.
Every run reconciles the collections it touches with their seed data first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(a.format))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", a.format)
			}
			a.format = string(format)
			return nil
		},
	}
	cmd.SetOut(a.Out)
	cmd.SetErr(a.Err)

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Load environment variables from this file (default .env if present)")
	cmd.PersistentFlags().StringVar(&a.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Log store activity to stderr")

	cmd.AddCommand(
		a.newListCmd(),
		a.newAddCmd(),
		a.newRemoveCmd(),
		a.newStatusCmd(),
	)
	return cmd
}

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <clubs|events|benefits>",
		Short:     "List a directory",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: directory.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDirectory(cmd.Context(), func(ctx context.Context, dir *directory.Directory) error {
				switch args[0] {
				case directory.ClubKind.Name:
					dir.Clubs.Initialize(ctx)
					return a.writeClubs(dir.Clubs.Items())
				case directory.EventKind.Name:
					dir.Events.Initialize(ctx)
					events := dir.Events.Items()
					models.SortEventsByDate(events)
					return a.writeEvents(events)
				default:
					dir.Benefits.Initialize(ctx)
					return a.writeBenefits(dir.Benefits.Items())
				}
			})
		},
	}
}

func (a *App) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a club, event or benefit",
	}

	var club models.Club
	addClub := &cobra.Command{
		Use:   "club",
		Short: "Add a club",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDirectory(cmd.Context(), func(ctx context.Context, dir *directory.Directory) error {
				created, err := addTo(ctx, dir.Clubs, club)
				if err != nil {
					return err
				}
				return a.writeClubs([]models.Club{created})
			})
		},
	}
	addClub.Flags().StringVar(&club.Name, "name", "", "Club name (required)")
	addClub.Flags().StringVar(&club.Description, "description", "", "Short description")
	addClub.Flags().StringVar(&club.Category, "category", "", "Category, e.g. Technology")
	addClub.Flags().StringVar(&club.ImageID, "image", "", "Image URL or placeholder id (random placeholder when empty)")
	addClub.MarkFlagRequired("name")

	var event models.CampusEvent
	addEvent := &cobra.Command{
		Use:   "event",
		Short: "Add an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDirectory(cmd.Context(), func(ctx context.Context, dir *directory.Directory) error {
				created, err := addTo(ctx, dir.Events, event)
				if err != nil {
					return err
				}
				return a.writeEvents([]models.CampusEvent{created})
			})
		},
	}
	addEvent.Flags().StringVar(&event.Title, "title", "", "Event title (required)")
	addEvent.Flags().StringVar(&event.Description, "description", "", "Short description")
	addEvent.Flags().StringVar(&event.Date, "date", "", "Start time as ISO-8601, e.g. 2025-11-01T09:00:00.000Z (required)")
	addEvent.Flags().StringVar(&event.Location, "location", "", "Where it happens")
	addEvent.Flags().StringVar(&event.ImageID, "image", "", "Image URL or placeholder id (random placeholder when empty)")
	addEvent.MarkFlagRequired("title")
	addEvent.MarkFlagRequired("date")

	var benefit models.Benefit
	addBenefit := &cobra.Command{
		Use:   "benefit",
		Short: "Add a benefit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDirectory(cmd.Context(), func(ctx context.Context, dir *directory.Directory) error {
				created, err := addTo(ctx, dir.Benefits, benefit)
				if err != nil {
					return err
				}
				return a.writeBenefits([]models.Benefit{created})
			})
		},
	}
	addBenefit.Flags().StringVar(&benefit.Title, "title", "", "Benefit title (required)")
	addBenefit.Flags().StringVar(&benefit.Provider, "provider", "", "Who offers it")
	addBenefit.Flags().StringVar(&benefit.Description, "description", "", "Short description")
	addBenefit.Flags().StringVar(&benefit.Category, "category", "", "Category, e.g. Software")
	addBenefit.Flags().StringVar(&benefit.RedirectURL, "redirect-url", "", "Where Redeem leads")
	addBenefit.Flags().StringVar(&benefit.ImageID, "image", "", "Image URL or placeholder id (random placeholder when empty)")
	addBenefit.MarkFlagRequired("title")

	cmd.AddCommand(addClub, addEvent, addBenefit)
	return cmd
}

func addTo[T collection.Entity[T]](ctx context.Context, store *collection.Store[T], item T) (T, error) {
	store.Initialize(ctx)
	created, err := store.Add(ctx, item)
	if err != nil {
		return created, fmt.Errorf("adding to %s: %w", store.Name(), err)
	}
	return created, nil
}

func (a *App) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <clubs|events|benefits> <id>",
		Short: "Remove an entry by id",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}
			return cobra.OnlyValidArgs(cmd, args[:1])
		},
		ValidArgs: directory.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			return a.withDirectory(cmd.Context(), func(ctx context.Context, dir *directory.Directory) error {
				var (
					removed bool
					err     error
				)
				switch kind {
				case directory.ClubKind.Name:
					removed, err = removeFrom(ctx, dir.Clubs, id)
				case directory.EventKind.Name:
					removed, err = removeFrom(ctx, dir.Events, id)
				default:
					removed, err = removeFrom(ctx, dir.Benefits, id)
				}
				if err != nil {
					return err
				}
				return a.writeRemoval(RemoveResult{Kind: kind, ID: id, Removed: removed})
			})
		},
	}
}

func removeFrom[T collection.Entity[T]](ctx context.Context, store *collection.Store[T], id string) (bool, error) {
	store.Initialize(ctx)
	removed, err := store.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("removing from %s: %w", store.Name(), err)
	}
	return removed, nil
}

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Reconcile every directory and report what happened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDirectory(cmd.Context(), func(ctx context.Context, dir *directory.Directory) error {
				return a.writeStatus(dir.Initialize(ctx))
			})
		},
	}
}

// withDirectory loads configuration, opens the store and runs fn. Logs go to
// stderr and only warnings show unless --verbose is set.
func (a *App) withDirectory(ctx context.Context, fn func(ctx context.Context, dir *directory.Directory) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := config.Load()
	level := logger.WARN
	if a.verbose {
		level = logger.DEBUG
	}
	log, err := logger.New(logger.Options{Output: a.Err, MinLevel: level})
	if err != nil {
		return err
	}
	defer log.Close()

	dir, closeStore, err := a.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	return fn(ctx, dir)
}

// Execute runs the CLI
func Execute() {
	if err := NewApp().NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
