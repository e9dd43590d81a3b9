package main

import (
	"fmt"
	"time"

	"familyfit/internal/domain"

	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Manage weight entries",
}

var weightDate string

var weightAddCmd = &cobra.Command{
	Use:   "add <member> <weight-kg>",
	Short: "Record a weight entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := parseWeightArg(args[1])
		if err != nil {
			return err
		}
		date := weightDate
		if date == "" {
			date = time.Now().Format(domain.DateLayout)
		}
		return withServices(cmd, func(s *services) error {
			entry, err := s.ledger.AddEntry(cmd.Context(), args[0], date, weight)
			if err := reportWarning(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d for %s: %s %.1f kg\n", entry.ID, args[0], entry.Date, entry.Weight)
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <member> <id>",
	Short: "Delete a weight entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[1])
		if err != nil {
			return err
		}
		return withServices(cmd, func(s *services) error {
			deleted, err := s.ledger.DeleteEntry(cmd.Context(), args[0], id)
			if err := reportWarning(cmd, err); err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry %d for %s\n", id, args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list <member>",
	Short: "List a member's weight history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(s *services) error {
			history, err := s.ledger.History(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT_KG")
			for _, e := range history {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.1f\n", e.ID, e.Date, e.Weight)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightDeleteCmd, weightListCmd)
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "entry date YYYY-MM-DD (default today)")
}
