package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/dayplan/internal/model"
	"github.com/rcliao/dayplan/internal/store"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
}

func init() {
	add := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a goal",
		Long:  "Add a goal. The date defaults to the effective today, so a goal added after midnight lands on an unfinished yesterday.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGoalAdd,
	}
	add.Flags().String("date", "", "Date YYYY-MM-DD (default: effective today)")
	add.Flags().String("category", "other", "Category: work, health, personal, learning, other")
	add.Flags().StringP("priority", "p", "normal", "Priority: low, normal, high")

	done := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a goal done",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runGoalSetDone(cmd, args[0], true) },
	}

	undo := &cobra.Command{
		Use:   "undo [id]",
		Short: "Mark a goal not done",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runGoalSetDone(cmd, args[0], false) },
	}

	rm := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalRm,
	}

	list := &cobra.Command{
		Use:   "list [date]",
		Short: "List goals for a date",
		Args:  cobra.MaximumNArgs(1),
		Run:   runGoalList,
	}
	list.Flags().Bool("pending", false, "Only goals not done")

	goalCmd.AddCommand(add, done, undo, rm, list)
	RootCmd.AddCommand(goalCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) {
	date, _ := cmd.Flags().GetString("date")
	category, _ := cmd.Flags().GetString("category")
	priority, _ := cmd.Flags().GetString("priority")

	_, s, svc := session(cmd)
	defer s.Close()

	if date == "" {
		date = svc.EffectiveToday(cmd.Context()).Date.String()
	}

	goal, err := s.AddGoal(cmd.Context(), store.AddGoalParams{
		Date:     date,
		Text:     strings.Join(args, " "),
		Category: category,
		Priority: priority,
	})
	if err != nil {
		exitErr("add goal", err)
	}
	printJSON(goal)
}

func runGoalSetDone(cmd *cobra.Command, id string, done bool) {
	cfg, _ := loadConfig(cmd)
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	goal, err := s.SetGoalDone(cmd.Context(), id, done)
	if err != nil {
		exitErr("update goal", err)
	}
	printJSON(goal)
}

func runGoalRm(cmd *cobra.Command, args []string) {
	cfg, _ := loadConfig(cmd)
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.RemoveGoal(cmd.Context(), args[0]); err != nil {
		exitErr("rm", err)
	}
	fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
}

func runGoalList(cmd *cobra.Command, args []string) {
	pending, _ := cmd.Flags().GetBool("pending")

	_, s, svc := session(cmd)
	defer s.Close()

	date := svc.EffectiveToday(cmd.Context()).Date.String()
	if len(args) > 0 {
		date = args[0]
	}

	plan, err := s.GetDayPlan(cmd.Context(), date)
	if err != nil {
		exitErr("list goals", err)
	}

	goals := []model.Goal{}
	if plan != nil {
		for _, g := range plan.Goals {
			if pending && g.Done {
				continue
			}
			goals = append(goals, g)
		}
	}
	printJSONIndent(goals)
}
