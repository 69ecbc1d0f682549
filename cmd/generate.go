package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anand-106/coursegen/internal/course"
	"github.com/anand-106/coursegen/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a course from a prompt",
	Long: `Generate a course from a one-line prompt and stream progress to stdout
as newline-delimited JSON events: status, meta, module, complete, error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, _ := cmd.Flags().GetString("prompt")
		singleStep, _ := cmd.Flags().GetBool("single-step")
		noSave, _ := cmd.Flags().GetBool("no-save")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		runner := newRunner(ctx, s.EventRepo())

		courseID := uuid.NewString()
		c, err := runner.Run(ctx, prompt, course.Options{
			SingleStep: singleStep,
			CourseID:   courseID,
		}, streamEmitter(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		if c == nil {
			// Prompt rejected; the error event already went out.
			return nil
		}

		if noSave {
			return nil
		}
		if err := saveCourse(cmd, s.CourseRepo(), courseID, prompt, c); err != nil {
			return fmt.Errorf("save course: %w", err)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("prompt", "", "What to build a course about")
	generateCmd.Flags().Bool("single-step", false, "Generate only the first module, leaving the rest pending")
	generateCmd.Flags().Bool("no-save", false, "Do not persist the course")
	_ = generateCmd.MarkFlagRequired("prompt")
}

// streamEmitter writes each event as one JSON line.
func streamEmitter(w io.Writer) course.Emitter {
	enc := json.NewEncoder(w)
	return func(e course.Event) {
		if err := enc.Encode(e); err != nil {
			log.Warn().Err(err).Msg("failed to write stream event")
		}
	}
}

func saveCourse(cmd *cobra.Command, repo store.CourseRepo, id, prompt string, c *course.Course) error {
	modules, err := json.Marshal(c.Modules)
	if err != nil {
		return err
	}
	rec := &store.CourseRecord{
		ID:            id,
		Prompt:        prompt,
		Title:         c.Title,
		Topics:        c.Topics,
		PendingTopics: c.PendingTopics,
		Modules:       modules,
	}
	if err := repo.Save(cmd.Context(), rec); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "saved course", id)
	return nil
}
