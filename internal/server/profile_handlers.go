package server

import (
	"hirehub/internal/models"
	"hirehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile. An empty profile is created on
// first access.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Bio             string `json:"bio"`
		CurrentPosition string `json:"current_position"`
		CurrentCompany  string `json:"current_company"`
		Location        string `json:"location"`
		Phone           string `json:"phone"`
		Website         string `json:"website"`
		LinkedIn        string `json:"linkedin"`
		GitHub          string `json:"github"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Update(c.UserContext(), service.UpdateProfileInput{
		UserID:          userID,
		Bio:             req.Bio,
		CurrentPosition: req.CurrentPosition,
		CurrentCompany:  req.CurrentCompany,
		Location:        req.Location,
		Phone:           req.Phone,
		Website:         req.Website,
		LinkedIn:        req.LinkedIn,
		GitHub:          req.GitHub,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UploadProfileResume handles POST /api/profile/resume (multipart form with
// a "resume" file)
func (s *Server) UploadProfileResume(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A resume file is required"))
	}

	file, err := fh.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded resume"))
	}
	defer file.Close()

	profile, svcErr := s.profileService.UploadResume(c.UserContext(), userID, fh.Filename, fh.Size, file)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(profile)
}

// AddSkill handles POST /api/profile/skills
func (s *Server) AddSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.UserSkill
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Skill name is required"))
	}

	skill, err := s.profileService.AddSkill(c.UserContext(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

// RemoveSkill handles DELETE /api/profile/skills/:id
func (s *Server) RemoveSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.profileService.RemoveSkill(c.UserContext(), userID, skillID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Skill removed"})
}

// AddEducation handles POST /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.UserEducation
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Institution == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Institution is required"))
	}

	edu, err := s.profileService.AddEducation(c.UserContext(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(edu)
}

// RemoveEducation handles DELETE /api/profile/education/:id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	eduID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.profileService.RemoveEducation(c.UserContext(), userID, eduID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Education entry removed"})
}

// AddExperience handles POST /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.UserExperience
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Company == "" || req.Position == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Company and position are required"))
	}

	exp, err := s.profileService.AddExperience(c.UserContext(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(exp)
}

// RemoveExperience handles DELETE /api/profile/experience/:id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	expID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.profileService.RemoveExperience(c.UserContext(), userID, expID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Experience entry removed"})
}

// SearchCandidates handles GET /api/candidates/search (employer)
func (s *Server) SearchCandidates(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	profiles, err := s.profileService.SearchCandidates(c.UserContext(),
		c.Query("q"), c.Query("location"), c.Query("skill"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profiles)
}
