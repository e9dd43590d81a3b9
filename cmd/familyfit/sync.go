package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Inspect or record the cloud sync endpoint",
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether cloud sync is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(s *services) error {
			st := s.sync.Status()
			if !st.Configured {
				fmt.Fprintln(cmd.OutOrStdout(), "mode: local (cloud sync not configured)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mode: %s\nendpoint: %s\n", st.Mode, st.Endpoint)
			return nil
		})
	},
}

var (
	syncURL string
	syncKey string
)

var syncConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Record the cloud endpoint and access key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(s *services) error {
			if err := s.sync.Configure(cmd.Context(), syncURL, syncKey); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded sync endpoint %s\n", syncURL)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncStatusCmd, syncConfigureCmd)
	syncConfigureCmd.Flags().StringVar(&syncURL, "url", "", "sync endpoint URL")
	syncConfigureCmd.Flags().StringVar(&syncKey, "key", "", "sync access key")
}
