package gateway

import (
	"context"
	"strconv"

	"aula-quiz-client/internal/domain"
)

// OptionInput is one authored option.
type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionInput is the authoring payload for a question. For true/false
// questions the options must be the two synthetic Verdadero/Falso entries;
// TrueFalseOptions builds them.
type QuestionInput struct {
	SectionID int           `json:"sectionId"`
	Type      string        `json:"type"`
	Statement string        `json:"statement"`
	Score     int           `json:"score"`
	Options   []OptionInput `json:"options"`
}

// TrueFalseOptions returns the synthetic option pair with the given answer
// marked correct.
func TrueFalseOptions(answerIsTrue bool) []OptionInput {
	return []OptionInput{
		{Text: domain.OptionTextTrue, IsCorrect: answerIsTrue},
		{Text: domain.OptionTextFalse, IsCorrect: !answerIsTrue},
	}
}

func (c *Client) GetQuestionsBySection(ctx context.Context, sectionID int) ([]domain.Question, error) {
	var questions []domain.Question
	if err := c.get(ctx, "/question/GetQuestionBySection/"+strconv.Itoa(sectionID), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *Client) CreateQuestion(ctx context.Context, input QuestionInput) (domain.Question, error) {
	var q domain.Question
	if err := c.post(ctx, "/question/CreateQuestion", input, &q); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, questionID int, input QuestionInput) error {
	return c.put(ctx, "/question/UpdateQuestion/"+strconv.Itoa(questionID), input, nil)
}

func (c *Client) DeleteQuestion(ctx context.Context, questionID int) error {
	return c.delete(ctx, "/question/DeleteQuestion/"+strconv.Itoa(questionID))
}

func (c *Client) DeleteOption(ctx context.Context, optionID int) error {
	return c.delete(ctx, "/option/DeleteOption/"+strconv.Itoa(optionID))
}

// RemoveImage detaches the supplementary image from a question.
func (c *Client) RemoveImage(ctx context.Context, questionID int) error {
	return c.delete(ctx, "/question/RemoveImage/"+strconv.Itoa(questionID))
}
