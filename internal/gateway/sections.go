package gateway

import (
	"context"
	"net/http"
	"strconv"

	"aula-quiz-client/internal/domain"
)

// SectionInput is the authoring payload for a section. TotalTime is in
// minutes; zero leaves the section untimed.
type SectionInput struct {
	CourseID    int    `json:"courseId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoLink   string `json:"videoLink"`
	TotalTime   int    `json:"totalTime"`
}

func (c *Client) GetSection(ctx context.Context, sectionID int) (domain.Section, error) {
	var sec domain.Section
	err := c.get(ctx, "/section/GetSection/"+strconv.Itoa(sectionID), &sec)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.Status == http.StatusNotFound {
			return domain.Section{}, domain.ErrSectionNotFound
		}
		return domain.Section{}, err
	}
	return sec, nil
}

func (c *Client) GetSectionsByCourse(ctx context.Context, courseID int) ([]domain.Section, error) {
	var sections []domain.Section
	if err := c.get(ctx, "/section/GetSectionsByCourse/"+strconv.Itoa(courseID), &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *Client) CreateSection(ctx context.Context, input SectionInput) (domain.Section, error) {
	var sec domain.Section
	if err := c.post(ctx, "/section/CreateSection", input, &sec); err != nil {
		return domain.Section{}, err
	}
	return sec, nil
}

func (c *Client) UpdateSection(ctx context.Context, sectionID int, input SectionInput) error {
	return c.put(ctx, "/section/UpdateSection/"+strconv.Itoa(sectionID), input, nil)
}

func (c *Client) DeleteSection(ctx context.Context, sectionID int) error {
	return c.delete(ctx, "/section/DeleteSection/"+strconv.Itoa(sectionID))
}

// GetCourseIDBySection resolves the owning course, used by the results
// dashboard's way back to the course page.
func (c *Client) GetCourseIDBySection(ctx context.Context, sectionID int) (int, error) {
	var payload struct {
		CourseID int `json:"courseId"`
	}
	if err := c.get(ctx, "/section/GetCourseIdBySection/"+strconv.Itoa(sectionID), &payload); err != nil {
		return 0, err
	}
	return payload.CourseID, nil
}
