package gateway

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"aula-quiz-client/internal/domain"
)

// SaveUserAnswers submits the collected answers for scoring. The endpoint is
// not idempotent; the quiz engine guarantees it is called at most once per
// session.
func (c *Client) SaveUserAnswers(ctx context.Context, answers []domain.Answer) error {
	body := map[string][]domain.Answer{"answers": answers}
	return c.post(ctx, "/user_answer/SaveUserAnswer", body, nil)
}

// GetUserAnswersBySection reads back the user's submitted answers with the
// nested question scores and option correctness used by aggregation.
func (c *Client) GetUserAnswersBySection(ctx context.Context, userID, sectionID int) ([]domain.UserAnswer, error) {
	path := "/user_answer/GetUserAnswersBySection/" + strconv.Itoa(userID) + "/" + strconv.Itoa(sectionID)
	var answers []domain.UserAnswer
	if err := c.get(ctx, path, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// QuizMaterial fetches a section and its questions concurrently; the
// quiz-taking flow needs both before it can start the countdown.
func (c *Client) QuizMaterial(ctx context.Context, sectionID int) (domain.Section, []domain.Question, error) {
	var (
		sec       domain.Section
		questions []domain.Question
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sec, err = c.GetSection(gctx, sectionID)
		return err
	})
	g.Go(func() error {
		var err error
		questions, err = c.GetQuestionsBySection(gctx, sectionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Section{}, nil, err
	}
	return sec, questions, nil
}
