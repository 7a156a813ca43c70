package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
	"github.com/jakechorley/smart-schedule/pkg/core/services"
)

// SolveScheduleCmd creates the solveSchedule command
func SolveScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solveSchedule <request.json>",
		Short: "Solve a schedule request from a JSON file without a database",
		Long: `Read a schedule request (weekStart, shiftTemplates, requirements, availability, staffIds)
from a JSON file and print the generated schedule. Nothing is saved.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{OfflineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			req, err := readRequestFile(args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				req.Seed = &seed
			}

			app.Logger.Debug("solveSchedule command",
				zap.String("file", args[0]),
				zap.Int("staff", len(req.StaffIDs)),
				zap.Int("templates", len(req.Templates)))

			result, err := services.SolveSchedule(app.Cfg, app.Logger, req)
			if err != nil {
				printValidationIssues(err)
				return fmt.Errorf("solve failed: %w", err)
			}

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			fmt.Println()
			printSchedule(os.Stdout, result, nil)
			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for the random tie-break (overrides the file)")
	cmd.Flags().Bool("json", false, "Print the result as JSON")

	return cmd
}

func readRequestFile(path string) (scheduler.Request, error) {
	var req scheduler.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read request file: %w", err)
	}

	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse request file: %w", err)
	}

	return req, nil
}
