package server

import (
	"mime/multipart"
	"path/filepath"
	"strconv"

	"hirehub/internal/models"
	"hirehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitApplication handles POST /api/applications (job seeker). The body is
// multipart form data so a resume file can ride along with the cover letter.
func (s *Server) SubmitApplication(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postingID, err := strconv.ParseUint(c.FormValue("job_posting_id"), 10, 32)
	if err != nil || postingID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid job_posting_id"))
	}

	in := service.ApplyInput{
		SeekerID:     userID,
		JobPostingID: uint(postingID),
		CoverLetter:  c.FormValue("cover_letter"),
	}

	// Resume is optional. When present it is validated before anything is
	// written, so a bad file leaves no partial state behind.
	var file multipart.File
	if fh, fhErr := c.FormFile("resume"); fhErr == nil && fh != nil {
		file, err = fh.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read uploaded resume"))
		}
		defer file.Close()
		in.Resume = file
		in.ResumeFileName = fh.Filename
		in.ResumeSize = fh.Size
	}

	app, svcErr := s.appService.Apply(c.UserContext(), in)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetMyApplications handles GET /api/applications/me (job seeker)
func (s *Server) GetMyApplications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	apps, err := s.appService.ListMine(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(apps)
}

// GetEmployerApplications handles GET /api/applications/employer (all
// applications across the employer's postings)
func (s *Server) GetEmployerApplications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	apps, err := s.appService.ListForEmployer(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(apps)
}

// GetApplication handles GET /api/applications/:id (seeker, posting owner,
// or admin)
func (s *Server) GetApplication(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	appID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	app, svcErr := s.appService.Get(c.UserContext(), appID, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(app)
}

// UpdateApplicationStatus handles PUT /api/applications/:id/status (posting
// owner or admin)
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	appID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.ApplicationStatus `json:"status"`
		Notes  string                   `json:"notes"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	app, svcErr := s.appService.UpdateStatus(c.UserContext(), service.UpdateApplicationStatusInput{
		ActorID:       userID,
		ApplicationID: appID,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(app)
}

// BulkUpdateApplicationStatus handles POST /api/applications/bulk-status
// (administrator only; only Rejected and Shortlisted are allowed)
func (s *Server) BulkUpdateApplicationStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ApplicationIDs []uint                   `json:"application_ids"`
		Status         models.ApplicationStatus `json:"status"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.appService.BulkUpdateStatus(c.UserContext(), userID, req.ApplicationIDs, req.Status)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// DownloadApplicationResume handles GET /api/applications/:id/resume
// (seeker, posting owner, or admin)
func (s *Server) DownloadApplicationResume(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	appID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rc, name, svcErr := s.appService.OpenResume(c.UserContext(), appID, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	// fasthttp closes the stream when the response is done.
	c.Attachment(filepath.Base(name))
	return c.SendStream(rc)
}
