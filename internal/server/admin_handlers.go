package server

import (
	"hirehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/admin/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	stats, err := s.adminService.Dashboard(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stats)
}

// GetReports handles GET /api/admin/reports?months=12
func (s *Server) GetReports(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)

	report, err := s.adminService.Reports(c.UserContext(), months)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(report)
}

// GetUsers handles GET /api/admin/users?role=employer
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	role := models.UserRole(c.Query("role"))

	users, err := s.adminService.ListUsers(c.UserContext(), role, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// ToggleUserActive handles POST /api/admin/users/:id/toggle-active
func (s *Server) ToggleUserActive(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, svcErr := s.adminService.ToggleUserActive(c.UserContext(), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(user)
}

// GetAllJobs handles GET /api/admin/jobs?status=Pending (every posting,
// every status)
func (s *Server) GetAllJobs(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	status := models.JobStatus(c.Query("status"))

	jobs, err := s.jobService.ListAll(c.UserContext(), status, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(jobs)
}

// ApproveJob handles POST /api/admin/jobs/:id/approve
func (s *Server) ApproveJob(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, svcErr := s.jobService.Approve(c.UserContext(), jobID, adminID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(job)
}

// RejectJob handles POST /api/admin/jobs/:id/reject
func (s *Server) RejectJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, svcErr := s.jobService.Reject(c.UserContext(), jobID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(job)
}

// GetAllApplications handles GET /api/admin/applications?status=Pending
func (s *Server) GetAllApplications(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	status := models.ApplicationStatus(c.Query("status"))

	apps, err := s.appService.ListAll(c.UserContext(), status, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(apps)
}

// GetCategories handles GET /api/categories (public, active categories only)
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.adminService.ListCategories(c.UserContext(), true)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(categories)
}

// GetAllCategories handles GET /api/admin/categories (inactive included)
func (s *Server) GetAllCategories(c *fiber.Ctx) error {
	categories, err := s.adminService.ListCategories(c.UserContext(), false)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(categories)
}

// CreateCategory handles POST /api/admin/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.adminService.CreateCategory(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/admin/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	catID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, svcErr := s.adminService.UpdateCategory(c.UserContext(), catID, req.Name, req.Description)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(category)
}

// ToggleCategory handles POST /api/admin/categories/:id/toggle
func (s *Server) ToggleCategory(c *fiber.Ctx) error {
	catID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, svcErr := s.adminService.ToggleCategory(c.UserContext(), catID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id. Postings keep
// their rows and lose the category reference.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	catID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.adminService.DeleteCategory(c.UserContext(), catID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// GetEmailStats handles GET /api/admin/email-stats
func (s *Server) GetEmailStats(c *fiber.Ctx) error {
	return c.JSON(s.mail.Stats())
}

// SendTestEmail handles POST /api/admin/test-email
func (s *Server) SendTestEmail(c *fiber.Ctx) error {
	var req struct {
		To string `json:"to"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.To == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Recipient address is required"))
	}

	if err := s.mail.Send(c.UserContext(), req.To,
		"HireHub Test Email", "<p>This is a test email from HireHub.</p>"); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"message": "Test email sent"})
}
