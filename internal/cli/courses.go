package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aula-quiz-client/internal/domain"
)

func newCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse and manage course enrollment",
	}
	cmd.AddCommand(newCoursesListCmd())
	cmd.AddCommand(newCoursesShowCmd())
	cmd.AddCommand(newCoursesEnrollCmd())
	cmd.AddCommand(newCoursesUnenrollCmd())
	return cmd
}

func newCoursesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public courses and your enrollments",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(configPath)
			if err != nil {
				return err
			}
			if _, err := ensureLogin(cmd.Context(), d); err != nil {
				return err
			}

			public, err := d.client.GetPublicCourses(cmd.Context())
			if err != nil {
				return err
			}
			enrolled, err := d.client.MyInscriptions(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("Available courses:")
			printCourses(public)
			fmt.Println("\nEnrolled courses:")
			printCourses(enrolled)
			return nil
		},
	}
}

func newCoursesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <courseId>",
		Short: "Show a course and its sections",
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

			course, err := d.client.GetCourse(cmd.Context(), courseID)
			if err != nil {
				return err
			}
			sections, err := d.client.GetSectionsByCourse(cmd.Context(), courseID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n%s\n\nSections:\n", course.Title, course.Description)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTIME LIMIT")
			for _, sec := range sections {
				limit := "untimed"
				if sec.TotalTime > 0 {
					limit = fmt.Sprintf("%d min", sec.TotalTime)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", sec.ID, sec.Name, limit)
			}
			return w.Flush()
		},
	}
}

func newCoursesEnrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <courseId>",
		Short: "Enroll in a course",
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
			if err := d.client.Enroll(cmd.Context(), courseID); err != nil {
				return err
			}
			fmt.Println("Enrolled.")
			return nil
		},
	}
}

func newCoursesUnenrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unenroll <courseId>",
		Short: "Leave a course",
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
			if err := d.client.Unenroll(cmd.Context(), courseID); err != nil {
				return err
			}
			fmt.Println("Unenrolled.")
			return nil
		},
	}
}

func printCourses(courses []domain.Course) {
	if len(courses) == 0 {
		fmt.Println("  (none)")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tENDS\tPUBLIC")
	for _, c := range courses {
		ends := "-"
		if !c.EndDate.IsZero() {
			ends = c.EndDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%v\n", c.ID, c.Title, ends, c.IsPublic)
	}
	w.Flush()
}
