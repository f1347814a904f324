package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rkapur/pathwise/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past learning journeys",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		journeys, err := s.EventRepo().QueryJourneySummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query journeys: %w", err)
		}

		if len(journeys) == 0 {
			fmt.Println("No journeys yet.")
			return nil
		}

		fmt.Printf("%-19s  %-36s  %-10s  %s\n", "Started", "Topic", "Stages", "Status")
		fmt.Println(strings.Repeat("─", 84))

		for _, j := range journeys {
			status := j.LastStage
			switch {
			case j.ChatActive:
				status = "completed"
			case j.Failed:
				status = "failed at " + j.LastStage
			case status == "":
				status = "started"
			}
			topic := j.Topic
			if len(topic) > 36 {
				topic = topic[:36]
			}
			fmt.Printf("%-19s  %-36s  %-10d  %s\n",
				j.StartedAt.Local().Format("2006-01-02 15:04:05"),
				topic,
				j.Confirmed,
				status,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of journeys to show")
}
