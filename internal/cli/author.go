package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"aula-quiz-client/internal/domain"
	"aula-quiz-client/internal/gateway"
)

func newAuthorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Author courses, sections and questions (moderators)",
	}
	cmd.AddCommand(newCreateCourseCmd())
	cmd.AddCommand(newUpdateCourseCmd())
	cmd.AddCommand(newDeleteCourseCmd())
	cmd.AddCommand(newToggleVisibilityCmd())
	cmd.AddCommand(newCreateSectionCmd())
	cmd.AddCommand(newUpdateSectionCmd())
	cmd.AddCommand(newDeleteSectionCmd())
	cmd.AddCommand(newCreateQuestionCmd())
	cmd.AddCommand(newUpdateQuestionCmd())
	cmd.AddCommand(newDeleteQuestionCmd())
	cmd.AddCommand(newDeleteOptionCmd())
	cmd.AddCommand(newRemoveImageCmd())
	return cmd
}

func newCreateCourseCmd() *cobra.Command {
	var input gateway.CourseInput
	cmd := &cobra.Command{
		Use:   "create-course",
		Short: "Create a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			course, err := d.client.CreateCourse(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Created course %d: %s\n", course.ID, course.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Title, "title", "", "course title")
	cmd.Flags().StringVar(&input.Description, "description", "", "course description")
	cmd.Flags().BoolVar(&input.IsPublic, "public", false, "publish immediately")
	cmd.Flags().StringVar(&input.EndDate, "end-date", "", "end date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newUpdateCourseCmd() *cobra.Command {
	var input gateway.CourseInput
	cmd := &cobra.Command{
		Use:   "update-course <courseId>",
		Short: "Update a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.UpdateCourse(cmd.Context(), courseID, input); err != nil {
				return err
			}
			fmt.Println("Course updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Title, "title", "", "course title")
	cmd.Flags().StringVar(&input.Description, "description", "", "course description")
	cmd.Flags().BoolVar(&input.IsPublic, "public", false, "publish immediately")
	cmd.Flags().StringVar(&input.EndDate, "end-date", "", "end date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newDeleteCourseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-course <courseId>",
		Short: "Delete a course and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.DeleteCourse(cmd.Context(), courseID); err != nil {
				return err
			}
			fmt.Println("Course deleted.")
			return nil
		},
	}
}

func newToggleVisibilityCmd() *cobra.Command {
	var public bool
	cmd := &cobra.Command{
		Use:   "toggle-visibility <courseId>",
		Short: "Publish or hide a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.ToggleVisibility(cmd.Context(), courseID, public); err != nil {
				return err
			}
			fmt.Println("Visibility updated.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&public, "public", false, "make the course public")
	return cmd
}

func newCreateSectionCmd() *cobra.Command {
	var input gateway.SectionInput
	cmd := &cobra.Command{
		Use:   "create-section",
		Short: "Create a section inside a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			sec, err := d.client.CreateSection(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Created section %d: %s\n", sec.ID, sec.Name)
			return nil
		},
	}
	cmd.Flags().IntVar(&input.CourseID, "course", 0, "owning course id")
	cmd.Flags().StringVar(&input.Name, "name", "", "section name")
	cmd.Flags().StringVar(&input.Description, "description", "", "section description")
	cmd.Flags().StringVar(&input.VideoLink, "video", "", "supplementary video link")
	cmd.Flags().IntVar(&input.TotalTime, "time", 0, "time limit in minutes (0 = untimed)")
	cmd.MarkFlagRequired("course")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newUpdateSectionCmd() *cobra.Command {
	var input gateway.SectionInput
	cmd := &cobra.Command{
		Use:   "update-section <sectionId>",
		Short: "Update a section",
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
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.UpdateSection(cmd.Context(), sectionID, input); err != nil {
				return err
			}
			d.catalog.Invalidate(sectionID)
			fmt.Println("Section updated.")
			return nil
		},
	}
	cmd.Flags().IntVar(&input.CourseID, "course", 0, "owning course id")
	cmd.Flags().StringVar(&input.Name, "name", "", "section name")
	cmd.Flags().StringVar(&input.Description, "description", "", "section description")
	cmd.Flags().StringVar(&input.VideoLink, "video", "", "supplementary video link")
	cmd.Flags().IntVar(&input.TotalTime, "time", 0, "time limit in minutes (0 = untimed)")
	cmd.MarkFlagRequired("course")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDeleteSectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-section <sectionId>",
		Short: "Delete a section and its questions",
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
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.DeleteSection(cmd.Context(), sectionID); err != nil {
				return err
			}
			d.catalog.Invalidate(sectionID)
			fmt.Println("Section deleted.")
			return nil
		},
	}
}

// questionFlags holds the shared flag set of create-question and update-question.
type questionFlags struct {
	sectionID    int
	questionType string
	statement    string
	score        int
	options      []string
	correct      int
	answerTrue   bool
}

func (f *questionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.sectionID, "section", 0, "owning section id")
	cmd.Flags().StringVar(&f.questionType, "type", domain.QuestionTypeChoice, "question type (alternativa | verdadero_falso)")
	cmd.Flags().StringVar(&f.statement, "statement", "", "question statement")
	cmd.Flags().IntVar(&f.score, "score", 1, "score weight")
	cmd.Flags().StringArrayVar(&f.options, "option", nil, "option text (repeatable, choice questions)")
	cmd.Flags().IntVar(&f.correct, "correct", 0, "1-based index of the correct option")
	cmd.Flags().BoolVar(&f.answerTrue, "answer", false, "correct answer for true/false questions")
	cmd.MarkFlagRequired("section")
	cmd.MarkFlagRequired("statement")
}

func (f *questionFlags) input() (gateway.QuestionInput, error) {
	input := gateway.QuestionInput{
		SectionID: f.sectionID,
		Type:      f.questionType,
		Statement: f.statement,
		Score:     f.score,
	}
	switch f.questionType {
	case domain.QuestionTypeChoice:
		if len(f.options) < 2 {
			return input, errors.New("choice questions need at least two --option values")
		}
		if f.correct < 1 || f.correct > len(f.options) {
			return input, fmt.Errorf("--correct must be between 1 and %d", len(f.options))
		}
		for i, text := range f.options {
			input.Options = append(input.Options, gateway.OptionInput{
				Text:      text,
				IsCorrect: i == f.correct-1,
			})
		}
	case domain.QuestionTypeTrueFalse:
		input.Options = gateway.TrueFalseOptions(f.answerTrue)
	default:
		return input, fmt.Errorf("unknown question type %q", f.questionType)
	}
	return input, nil
}

func newCreateQuestionCmd() *cobra.Command {
	var flags questionFlags
	cmd := &cobra.Command{
		Use:   "create-question",
		Short: "Create a question in a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			q, err := d.client.CreateQuestion(cmd.Context(), input)
			if err != nil {
				return err
			}
			d.catalog.Invalidate(flags.sectionID)
			fmt.Printf("Created question %d\n", q.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newUpdateQuestionCmd() *cobra.Command {
	var flags questionFlags
	cmd := &cobra.Command{
		Use:   "update-question <questionId>",
		Short: "Update a question and its options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			input, err := flags.input()
			if err != nil {
				return err
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.UpdateQuestion(cmd.Context(), questionID, input); err != nil {
				return err
			}
			d.catalog.Invalidate(flags.sectionID)
			fmt.Println("Question updated.")
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteQuestionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-question <questionId>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.DeleteQuestion(cmd.Context(), questionID); err != nil {
				return err
			}
			fmt.Println("Question deleted.")
			return nil
		},
	}
}

func newDeleteOptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-option <optionId>",
		Short: "Delete a single option from a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			optionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid option id %q", args[0])
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.DeleteOption(cmd.Context(), optionID); err != nil {
				return err
			}
			fmt.Println("Option deleted.")
			return nil
		},
	}
}

func newRemoveImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-image <questionId>",
		Short: "Detach the image from a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}
			if err := d.client.RemoveImage(cmd.Context(), questionID); err != nil {
				return err
			}
			fmt.Println("Image removed.")
			return nil
		},
	}
}
