package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/dayplan/internal/model"
	"github.com/rcliao/dayplan/internal/store"
	"github.com/rcliao/dayplan/internal/temporal"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show day plans",
}

func init() {
	show := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the plan and reflection for a date (default: effective today)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runPlanShow,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List plans, newest first",
		Run:   runPlanList,
	}
	list.Flags().String("from", "", "Earliest date, inclusive")
	list.Flags().String("to", "", "Latest date, inclusive")
	list.Flags().IntP("limit", "l", 30, "Max results")

	planCmd.AddCommand(show, list)
	RootCmd.AddCommand(planCmd)
}

type planView struct {
	Date       string            `json:"date"`
	Rule       temporal.Rule     `json:"rule,omitempty"`
	Goals      []model.Goal      `json:"goals"`
	Completed  int               `json:"completed"`
	Reflection *model.Reflection `json:"reflection"`
}

func runPlanShow(cmd *cobra.Command, args []string) {
	_, s, svc := session(cmd)
	defer s.Close()

	view := planView{Goals: []model.Goal{}}
	if len(args) > 0 {
		d, err := temporal.ParseDate(args[0])
		if err != nil {
			exitErr("plan show", err)
		}
		view.Date = d.String()
	} else {
		res := svc.EffectiveToday(cmd.Context())
		view.Date, view.Rule = res.Date.String(), res.Rule
	}

	plan, err := s.GetDayPlan(cmd.Context(), view.Date)
	if err != nil {
		exitErr("get plan", err)
	}
	if plan != nil {
		view.Goals = plan.Goals
		view.Completed = plan.Completed()
	}
	if view.Reflection, err = s.GetReflection(cmd.Context(), view.Date); err != nil {
		exitErr("get reflection", err)
	}
	printJSONIndent(view)
}

func runPlanList(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, _ := loadConfig(cmd)
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	plans, err := s.ListPlans(cmd.Context(), store.ListParams{From: from, To: to, Limit: limit})
	if err != nil {
		exitErr("list plans", err)
	}
	printJSONIndent(plans)
}
