package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aula-quiz-client/internal/domain"
	"aula-quiz-client/internal/quiz"
)

func newTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <sectionId>",
		Short: "Take a section's quiz",
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
			return runTake(cmd, d, userID, sectionID)
		},
	}
}

func runTake(cmd *cobra.Command, d *deps, userID, sectionID int) error {
	ctx := cmd.Context()

	sec, questions, err := d.client.QuizMaterial(ctx, sectionID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Println("This section has no questions yet.")
		return nil
	}

	collector := quiz.NewCollector()
	engine := quiz.NewEngine(sec, userID, d.countdowns, d.client, collector)
	if err := engine.Start(ctx); err != nil {
		return err
	}
	// Quitting mid-quiz keeps the persisted countdown; retaking resumes it.
	defer engine.Stop()

	expired := watchExpiry(engine)

	fmt.Printf("\n%s\n", sec.Name)
	if sec.VideoLink != "" {
		fmt.Printf("Supplementary material: %s\n", sec.VideoLink)
	}
	if sec.TotalTime > 0 {
		fmt.Printf("Time limit: %s remaining\n", formatSeconds(engine.Remaining()))
	}

	reader := bufio.NewReader(os.Stdin)
	for i, q := range questions {
		if engine.State() == quiz.StateExpired || engine.State() == quiz.StateTerminated {
			break
		}
		askQuestion(reader, engine, i, q)
	}

	if engine.State() == quiz.StateTerminated || engine.State() == quiz.StateExpired {
		<-expired
		fmt.Println("\nTime is up! Your answers were submitted automatically.")
		return nil
	}

	return confirmAndSubmit(cmd, reader, engine)
}

// watchExpiry returns a channel closed once an expired session has finished
// its automatic submission.
func watchExpiry(engine *quiz.Engine) <-chan struct{} {
	done := make(chan struct{})
	updates, cancel := engine.Subscribe()
	go func() {
		defer cancel()
		sawExpiry := false
		for snap := range updates {
			if snap.State == quiz.StateExpired.String() && !sawExpiry {
				sawExpiry = true
				fmt.Println("\n\nTime is up! Submitting your answers...")
			}
			if snap.State == quiz.StateTerminated.String() {
				close(done)
				return
			}
		}
	}()
	return done
}

func askQuestion(reader *bufio.Reader, engine *quiz.Engine, index int, q domain.Question) {
	fmt.Printf("\n%d) %s  [%d pts]\n", index+1, q.Statement, q.Score)
	if q.ImageURL != "" {
		fmt.Printf("   (image: %s)\n", q.ImageURL)
	}
	for i, opt := range q.Options {
		fmt.Printf("   %c) %s\n", 'a'+i, opt.Text)
	}

	for {
		if engine.Remaining() > 0 {
			fmt.Printf("[%s] ", formatSeconds(engine.Remaining()))
		}
		fmt.Print("Answer (letter, empty to skip): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		choice := strings.TrimSpace(strings.ToLower(line))
		if choice == "" {
			return
		}
		idx := int(choice[0] - 'a')
		if len(choice) != 1 || idx < 0 || idx >= len(q.Options) {
			fmt.Println("Pick one of the listed letters.")
			continue
		}
		engine.Select(q.ID, q.Options[idx].ID)
		return
	}
}

func confirmAndSubmit(cmd *cobra.Command, reader *bufio.Reader, engine *quiz.Engine) error {
	for {
		fmt.Print("\nSubmit your answers? Make sure you reviewed everything. [y/N] ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		answer := strings.TrimSpace(strings.ToLower(line))
		if answer != "y" && answer != "yes" {
			fmt.Println("Not submitted. Your countdown keeps running; rerun `take` to continue.")
			return nil
		}

		err = engine.Submit(cmd.Context())
		switch {
		case err == nil:
			fmt.Println("Answers submitted. See `results` for your dashboard.")
			return nil
		case errors.Is(err, domain.ErrSessionTerminated):
			fmt.Println("The session already submitted (time ran out).")
			return nil
		default:
			// Recoverable: countdown and selections are intact.
			fmt.Printf("Submission failed (%v). Try again? [y/N] ", err)
			line, readErr := reader.ReadString('\n')
			if readErr != nil {
				return err
			}
			if retry := strings.TrimSpace(strings.ToLower(line)); retry != "y" && retry != "yes" {
				return err
			}
		}
	}
}

func formatSeconds(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
