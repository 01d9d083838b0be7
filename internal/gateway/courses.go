package gateway

import (
	"context"
	"strconv"

	"aula-quiz-client/internal/domain"
)

// CourseInput is the authoring payload for creating or updating a course.
type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
	EndDate     string `json:"endDate"`
}

func (c *Client) GetPublicCourses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if err := c.get(ctx, "/course/GetPublicCourses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, courseID int) (domain.Course, error) {
	var course domain.Course
	if err := c.get(ctx, "/course/GetCourse/"+strconv.Itoa(courseID), &course); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

func (c *Client) CreateCourse(ctx context.Context, input CourseInput) (domain.Course, error) {
	var course domain.Course
	if err := c.post(ctx, "/course/CreateCourse", input, &course); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, courseID int, input CourseInput) error {
	return c.put(ctx, "/course/UpdateCourse/"+strconv.Itoa(courseID), input, nil)
}

func (c *Client) DeleteCourse(ctx context.Context, courseID int) error {
	return c.delete(ctx, "/course/DeleteCourse/"+strconv.Itoa(courseID))
}

// ToggleVisibility publishes or hides a course. Moderators flip courses
// private once their end date passes.
func (c *Client) ToggleVisibility(ctx context.Context, courseID int, isPublic bool) error {
	body := map[string]bool{"isPublic": isPublic}
	return c.patch(ctx, "/course/toggleVisibility/"+strconv.Itoa(courseID), body)
}

// Enroll inscribes the current user into a course.
func (c *Client) Enroll(ctx context.Context, courseID int) error {
	body := map[string]int{"courseId": courseID}
	return c.post(ctx, "/inscription/Enroll", body, nil)
}

func (c *Client) Unenroll(ctx context.Context, courseID int) error {
	return c.delete(ctx, "/inscription/Unenroll/"+strconv.Itoa(courseID))
}

// MyInscriptions lists the courses the current user is enrolled in.
func (c *Client) MyInscriptions(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if err := c.get(ctx, "/inscription/MyInscriptions", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
