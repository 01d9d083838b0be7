package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"aula-quiz-client/internal/domain"
	"aula-quiz-client/internal/quiz"
)

func newResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <sectionId>",
		Short: "Show your results dashboard for a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sectionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid section id %q", args[0])
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			userID, err := ensureLogin(cmd.Context(), d)
			if err != nil {
				return err
			}

			var (
				questions []domain.Question
				answers   []domain.UserAnswer
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				questions, err = d.catalog.GetQuestionsBySection(ctx, sectionID)
				return err
			})
			g.Go(func() error {
				var err error
				answers, err = d.client.GetUserAnswersBySection(ctx, userID, sectionID)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			summary := quiz.Aggregate(questions, answers)
			printSummary(summary)

			if courseID, err := d.client.GetCourseIDBySection(cmd.Context(), sectionID); err == nil && courseID > 0 {
				fmt.Printf("\nBack to the course with: aula courses show %d\n", courseID)
			}
			return nil
		},
	}
}

func printSummary(s quiz.Summary) {
	fmt.Println("YOUR RESULTS")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nQuestions")
	fmt.Fprintf(w, "  Total questions:\t%d\n", s.TotalQuestions)
	fmt.Fprintf(w, "  Correct:\t%d\n", s.CorrectAnswers)
	fmt.Fprintf(w, "  Missed or wrong:\t%d\n", s.IncorrectAnswers)
	fmt.Fprintf(w, "  Percentage:\t%.0f%%\n", s.QuestionPercentage())
	fmt.Fprintln(w, "\nScore")
	fmt.Fprintf(w, "  Total score:\t%d\n", s.TotalScore)
	fmt.Fprintf(w, "  Obtained score:\t%d\n", s.ObtainedScore)
	fmt.Fprintf(w, "  Percentage:\t%.0f%%\n", s.ScorePercentage())
	w.Flush()

	fmt.Printf("\n%s\n%s\n", s.QuestionFeedback(), s.ScoreFeedback())
}
