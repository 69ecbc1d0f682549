package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		recs, err := s.CourseRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-9s  %s\n", "ID", "Created", "Modules", "Title")
		fmt.Println(strings.Repeat("─", 90))
		for _, r := range recs {
			done := len(r.Topics) - len(r.PendingTopics)
			fmt.Printf("%-36s  %-19s  %4d/%-4d  %s\n",
				r.ID,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				done, len(r.Topics),
				r.Title,
			)
		}
		return nil
	},
}
