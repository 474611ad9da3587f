package server

import (
	"time"

	"hirehub/internal/models"
	"hirehub/internal/repository"
	"hirehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// jobRequest is the JSON body shared by submit and update.
type jobRequest struct {
	Title               string     `json:"title"`
	Company             string     `json:"company"`
	Location            string     `json:"location"`
	Description         string     `json:"description"`
	JobType             string     `json:"job_type"`
	ExperienceLevel     string     `json:"experience_level"`
	SalaryMin           *float64   `json:"salary_min"`
	SalaryMax           *float64   `json:"salary_max"`
	SalaryCurrency      string     `json:"salary_currency"`
	Requirements        string     `json:"requirements"`
	Benefits            string     `json:"benefits"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	CategoryID          *uint      `json:"category_id"`
}

// GetJobs handles GET /api/jobs (public, approved and active postings only)
func (s *Server) GetJobs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	jobs, err := s.jobService.ListApproved(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(jobs)
}

// SearchJobs handles GET /api/jobs/search (public)
func (s *Server) SearchJobs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	filters := repository.JobSearchFilters{
		Keyword:         c.Query("q"),
		Location:        c.Query("location"),
		JobType:         c.Query("job_type"),
		ExperienceLevel: c.Query("experience_level"),
		Company:         c.Query("company"),
		CategoryID:      uint(c.QueryInt("category_id", 0)),
		SalaryMin:       c.QueryFloat("salary_min", 0),
		SalaryMax:       c.QueryFloat("salary_max", 0),
	}

	jobs, err := s.jobService.Search(c.UserContext(), filters, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(jobs)
}

// GetJob handles GET /api/jobs/:id (public detail view; owners and admins
// can also see their unlisted postings when authenticated)
func (s *Server) GetJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	job, svcErr := s.jobService.Get(c.UserContext(), jobID, viewerID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(job)
}

// SubmitJob handles POST /api/jobs (employer). New postings always start
// in review.
func (s *Server) SubmitJob(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req jobRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.Submit(c.UserContext(), service.SubmitJobInput{
		EmployerID:          userID,
		Title:               req.Title,
		Company:             req.Company,
		Location:            req.Location,
		Description:         req.Description,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		Requirements:        req.Requirements,
		Benefits:            req.Benefits,
		ApplicationDeadline: req.ApplicationDeadline,
		CategoryID:          req.CategoryID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// GetMyJobs handles GET /api/jobs/mine/list (employer's own postings,
// every status)
func (s *Server) GetMyJobs(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	jobs, err := s.jobService.ListMine(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(jobs)
}

// UpdateJob handles PUT /api/jobs/:id (owner or admin)
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req jobRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, svcErr := s.jobService.Update(c.UserContext(), service.UpdateJobInput{
		ActorID:             userID,
		JobID:               jobID,
		Title:               req.Title,
		Company:             req.Company,
		Location:            req.Location,
		Description:         req.Description,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		Requirements:        req.Requirements,
		Benefits:            req.Benefits,
		ApplicationDeadline: req.ApplicationDeadline,
		CategoryID:          req.CategoryID,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(job)
}

// DeleteJob handles DELETE /api/jobs/:id (owner or admin; applications go
// with the posting)
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.jobService.Delete(c.UserContext(), jobID, userID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Job posting deleted"})
}

// ToggleJobActive handles POST /api/jobs/:id/toggle-active (owner or admin)
func (s *Server) ToggleJobActive(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, svcErr := s.jobService.ToggleActive(c.UserContext(), jobID, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(job)
}

// GetJobApplications handles GET /api/jobs/:id/applications (posting owner
// or admin)
func (s *Server) GetJobApplications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	apps, svcErr := s.appService.ListForPosting(c.UserContext(), jobID, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(apps)
}
