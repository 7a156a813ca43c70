package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
	"github.com/jakechorley/smart-schedule/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule",
		Short: "Generate a weekly schedule for one or more stores",
		Long: `Load shift templates, requirements, staff and availability from the database,
assign staff to shifts and save the schedule. Several --store flags generate the stores in parallel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storeIDs, _ := cmd.Flags().GetStringSlice("store")
			week, _ := cmd.Flags().GetString("week")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if len(storeIDs) == 0 {
				return fmt.Errorf("at least one --store is required")
			}

			weekStart, err := parseWeekFlag(week, app.Cfg.Location())
			if err != nil {
				return err
			}

			var seed *int64
			if cmd.Flags().Changed("seed") {
				if len(storeIDs) > 1 {
					return fmt.Errorf("--seed can only be used with a single --store")
				}
				v, _ := cmd.Flags().GetInt64("seed")
				seed = &v
			}

			app.Logger.Debug("generateSchedule command",
				zap.Strings("stores", storeIDs),
				zap.Time("week", weekStart),
				zap.Bool("dry_run", dryRun))

			if len(storeIDs) == 1 {
				result, err := services.GenerateSchedule(app.Ctx, app.DB, app.Cfg, app.Logger, services.GenerateRequest{
					StoreID:   storeIDs[0],
					WeekStart: weekStart,
					Seed:      seed,
					DryRun:    dryRun,
				})
				if err != nil {
					printValidationIssues(err)
					return fmt.Errorf("schedule generation failed: %w", err)
				}
				printGenerateResult(result, dryRun)
				return nil
			}

			outcomes := services.GenerateSchedules(app.Ctx, app.DB, app.Cfg, app.Logger, storeIDs, weekStart, dryRun)

			failed := 0
			for _, outcome := range outcomes {
				if outcome.Err != nil {
					failed++
					fmt.Printf("\n❌ Store %s: %v\n", outcome.StoreID, outcome.Err)
					printValidationIssues(outcome.Err)
					continue
				}
				printGenerateResult(outcome.Result, dryRun)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d stores failed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("store", nil, "Store ID to schedule (repeatable)")
	cmd.Flags().String("week", "", "Any date in the target week, YYYY-MM-DD (default: current week)")
	cmd.Flags().Int64("seed", 0, "Seed for the random tie-break, to replay a previous run")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func printGenerateResult(result *services.GenerateResult, dryRun bool) {
	fmt.Printf("\n🏪 %s (%s)\n", result.Store.Name, result.Store.ID)
	if dryRun {
		fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
	} else {
		fmt.Printf("Schedule ID: %s\n", result.ScheduleID)
	}
	fmt.Println()

	printSchedule(os.Stdout, result.Schedule, result.StaffNames)

	if dryRun {
		fmt.Println("💡 This was a dry run. Use without --dry-run to save the schedule.")
	}
}

// printValidationIssues lists each rejected field when err carries a validation error
func printValidationIssues(err error) {
	var verr *scheduler.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	fmt.Printf("\n⚠️  Invalid schedule input (%d issues):\n", len(verr.Issues))
	for _, issue := range verr.Issues {
		fmt.Printf("  • %s: %s\n", issue.Field, issue.Message)
	}
	fmt.Println()
}

// parseWeekFlag parses a YYYY-MM-DD date in loc, defaulting to now
func parseWeekFlag(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation(allocator.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--week must be a date in YYYY-MM-DD format, got: %s", value)
	}
	return t, nil
}
