package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anand-106/coursegen/internal/course"
	"github.com/anand-106/coursegen/internal/store"
)

var nextCmd = &cobra.Command{
	Use:   "next <course-id>",
	Short: "Generate the next pending module of a saved course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID := args[0]

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.CourseRepo()

		rec, err := repo.Get(ctx, courseID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("course %s not found", courseID)
		}
		if err != nil {
			return err
		}

		c, err := courseFromRecord(rec)
		if err != nil {
			return fmt.Errorf("decode course: %w", err)
		}

		emit := streamEmitter(cmd.OutOrStdout())
		runner := newRunner(ctx, s.EventRepo())

		mod, ok := runner.NextModule(ctx, c)
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "course %s is complete, no pending modules\n", courseID)
			return nil
		}
		emit(course.Event{Type: course.EventModule, Data: mod})

		modules, err := json.Marshal(c.Modules)
		if err != nil {
			return err
		}
		rec.PendingTopics = c.PendingTopics
		rec.Modules = modules
		if err := repo.Save(ctx, rec); err != nil {
			return fmt.Errorf("save course: %w", err)
		}

		emit(course.Event{Type: course.EventComplete, Data: c, CourseID: courseID})
		return nil
	},
}

func courseFromRecord(rec *store.CourseRecord) (*course.Course, error) {
	c := &course.Course{
		Title:         rec.Title,
		Topics:        rec.Topics,
		PendingTopics: rec.PendingTopics,
		Modules:       map[string]*course.Module{},
	}
	if len(rec.Modules) > 0 {
		if err := json.Unmarshal(rec.Modules, &c.Modules); err != nil {
			return nil, err
		}
	}
	return c, nil
}
