package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okwaro/dutyroster/internal/config"
	"github.com/okwaro/dutyroster/pkg/core/services"
	"github.com/okwaro/dutyroster/pkg/postgres"
	"github.com/okwaro/dutyroster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:   "dutyroster",
		Short: "Duty roster CLI - generate fair duty rosters for services",
		Long:  `A CLI tool for generating duty rosters that rotate assignments fairly using historical load.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(peopleCmd())
	rootCmd.AddCommand(attendanceCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger.Debug("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [date]",
		Short: "Generate a roster for a date (defaults to the next service date)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dateStr string
			if len(args) > 0 {
				dateStr = args[0]
			}

			noSave, _ := cmd.Flags().GetBool("no-save")
			absentStr, _ := cmd.Flags().GetString("absent")
			asJSON, _ := cmd.Flags().GetBool("json")

			if absentStr != "" {
				absentIDs, err := parseIDList(absentStr)
				if err != nil {
					return err
				}
				if err := services.MarkAttendance(app.ctx, app.database, app.logger, absentIDs); err != nil {
					return err
				}
			}

			result, err := services.GenerateRoster(app.ctx, app.database, app.cfg, app.logger, dateStr, !noSave)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(result)
			}

			fmt.Printf("\nDuty roster for %s\n\n", result.Date)
			fmt.Printf("Producer:           %s\n", result.Producer.Name)
			fmt.Printf("Assistant Producer: %s\n", result.AssistantProducer.Name)

			for _, event := range result.Events {
				fmt.Printf("\n%s:\n", event.EventName)
				if len(event.Assignments) == 0 {
					fmt.Println("  (no assignments)")
					continue
				}
				for _, a := range event.Assignments {
					fmt.Printf("  %-12s %s\n", a.Role+":", a.Name)
				}
			}

			if len(result.Hospitality) > 0 {
				fmt.Printf("\nHospitality: %s\n", strings.Join(result.Hospitality, ", "))
			}
			if len(result.SocialMedia) > 0 {
				fmt.Printf("Social Media: %s\n", strings.Join(result.SocialMedia, ", "))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("no-save", false, "Compute the roster without saving it")
	cmd.Flags().String("absent", "", "Comma-separated person ids to mark absent first")
	cmd.Flags().Bool("json", false, "Print the roster as JSON")

	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show assignment statistics over the lookback window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			asJSON, _ := cmd.Flags().GetBool("json")

			result, err := services.AssignmentStatistics(app.ctx, app.database, app.logger, days)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(result)
			}

			fmt.Printf("\nAssignment statistics (%s)\n", result.Period)
			fmt.Printf("Total assignments: %d\n\n", result.TotalAssignments)

			for name, stats := range result.PersonStatistics {
				fmt.Printf("%s: %d\n", name, stats.TotalAssignments)
				for role, count := range stats.Roles {
					fmt.Printf("  %-20s %d\n", role, count)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("days", 90, "Lookback window in days (1-365)")
	cmd.Flags().Bool("json", false, "Print statistics as JSON")

	return cmd
}

func peopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "people",
		Short: "List all people with their roles and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := services.ListPeople(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d people:\n\n", len(people))
			for _, p := range people {
				flags := make([]string, 0, 3)
				if p.IsProducer {
					flags = append(flags, "producer")
				}
				if p.IsAssistantProducer {
					flags = append(flags, "assistant producer")
				}
				if !p.IsPresent {
					flags = append(flags, "absent")
				}
				flagInfo := ""
				if len(flags) > 0 {
					flagInfo = fmt.Sprintf(" [%s]", strings.Join(flags, ", "))
				}
				fmt.Printf("- %3d  %s - %s%s\n", p.ID, p.FullName(), strings.Join(p.Roles, ", "), flagInfo)
			}
			fmt.Println()

			return nil
		},
	}
}

func attendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Mark people absent for the next generation run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absentStr, _ := cmd.Flags().GetString("absent")

			absentIDs, err := parseIDList(absentStr)
			if err != nil {
				return err
			}

			if err := services.MarkAttendance(app.ctx, app.database, app.logger, absentIDs); err != nil {
				return err
			}

			if len(absentIDs) == 0 {
				fmt.Println("Everyone marked present.")
			} else {
				fmt.Printf("Marked %d people absent, everyone else present.\n", len(absentIDs))
			}

			return nil
		},
	}

	cmd.Flags().String("absent", "", "Comma-separated person ids to mark absent (empty resets everyone to present)")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

// parseIDList parses a comma-separated id list like "3,7,12"
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid person id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
