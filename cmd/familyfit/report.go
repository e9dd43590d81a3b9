package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Show the roster with goals and plan details",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(s *services) error {
			out := cmd.OutOrStdout()
			for i, m := range s.ledger.Summaries() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%s)\n", m.Name, m.Key)
				fmt.Fprintf(out, "  start %.1f kg, target %.1f kg\n", m.StartWeight, m.TargetWeight)
				fmt.Fprintf(out, "  goals: %s\n", m.Goals)
				fmt.Fprintf(out, "  restrictions: %s\n", m.Restrictions)
				fmt.Fprintf(out, "  schedule: %s\n", m.Schedule)
				fmt.Fprintf(out, "  calories: %s, eating window %s\n", m.Calories, m.EatingWindow)
			}
			return nil
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress [member]",
	Short: "Show latest weight and goal progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(s *services) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				latest, err := s.ledger.LatestWeight(args[0])
				if err != nil {
					return err
				}
				progress, err := s.ledger.Progress(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%.1f kg\t%.0f%%\n", args[0], latest, progress)
				return nil
			}
			fmt.Fprintln(out, "MEMBER\tLATEST_KG\tTARGET_KG\tPROGRESS\tENTRIES")
			for _, m := range s.ledger.Summaries() {
				fmt.Fprintf(out, "%s\t%.1f\t%.1f\t%.0f%%\t%d\n", m.Key, m.Latest, m.TargetWeight, m.Progress, m.Entries)
			}
			return nil
		})
	},
}

var chartUnit string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the merged weight table across members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(s *services) error {
			points, err := s.charts.Series(cmd.Context(), chartUnit)
			if err != nil {
				return err
			}
			keys := s.ledger.Roster().Keys()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "DATE\t%s\n", strings.ToUpper(strings.Join(keys, "\t")))
			for _, p := range points {
				cells := make([]string, 0, len(keys))
				for _, k := range keys {
					cells = append(cells, formatWeight(p.Weights[k]))
				}
				fmt.Fprintf(out, "%s\t%s\n", p.Date, strings.Join(cells, "\t"))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(membersCmd, progressCmd, chartCmd)
	chartCmd.Flags().StringVar(&chartUnit, "unit", "kg", "display unit [kg | lb]")
}
