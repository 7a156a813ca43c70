package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/pkg/core/services"
)

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewSchedule <store_id>",
		Short: "View the latest saved schedule for a store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, _ := cmd.Flags().GetString("week")

			weekStart, err := parseWeekFlag(week, app.Cfg.Location())
			if err != nil {
				return err
			}

			app.Logger.Debug("viewSchedule command", zap.String("store_id", args[0]), zap.Time("week", weekStart))

			result, err := services.ViewSchedule(app.Ctx, app.DB, app.Logger, args[0], weekStart)
			if err != nil {
				return err
			}

			schedule := result.Schedule
			fmt.Printf("\n📅 Schedule %s\n\n", schedule.ID)
			fmt.Printf("Week:        %s\n", schedule.WeekStart)
			fmt.Printf("Generated:   %s\n", schedule.GeneratedAt.In(app.Cfg.Location()).Format("2006-01-02 15:04"))
			fmt.Printf("Coverage:    %d%%\n", schedule.CoveragePercent)
			fmt.Printf("Fairness:    %.1f\n", schedule.FairnessScore)
			fmt.Printf("Warnings:    %d\n", schedule.WarningCount)
			fmt.Printf("Seed:        %d\n\n", schedule.Seed)

			if len(result.Shifts) == 0 {
				fmt.Println("No shifts were assigned.")
				return nil
			}

			dateColWidth := 12
			shiftColWidth := 12
			fmt.Printf("%s%-*s  %-*s  %s%s\n", colorBold, dateColWidth, "Date", shiftColWidth, "Shift", "Staff", colorReset)
			fmt.Printf("%s  %s  %s\n", strings.Repeat("-", dateColWidth), strings.Repeat("-", shiftColWidth), strings.Repeat("-", 30))
			for _, shift := range result.Shifts {
				fmt.Printf("%-*s  %-*s  %s\n", dateColWidth, shift.Date, shiftColWidth, shift.ShiftID, strings.Join(shift.StaffNames, ", "))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("week", "", "Any date in the week to view, YYYY-MM-DD (default: current week)")

	return cmd
}
