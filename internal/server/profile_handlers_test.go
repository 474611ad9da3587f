package server

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"hirehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileOverHTTP(t *testing.T) {
	s, app, db := setupTestServer(t)
	seeker := createUser(t, db, "seeker@test.com", models.RoleJobSeeker)
	token := tokenFor(t, s, seeker)

	t.Run("first read creates an empty profile", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodGet, "/api/profile", nil), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.UserProfile
		decodeBody(t, resp, &profile)
		assert.Equal(t, seeker.ID, profile.UserID)
		assert.Empty(t, profile.Bio)
	})

	t.Run("update", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodPut, "/api/profile", map[string]string{
			"bio":              "Go developer",
			"current_position": "Backend Engineer",
			"location":         "Berlin",
		}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.UserProfile
		decodeBody(t, resp, &profile)
		assert.Equal(t, "Go developer", profile.Bio)
		assert.Equal(t, "Berlin", profile.Location)
	})

	t.Run("skills add and remove", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodPost, "/api/profile/skills", map[string]any{
			"name":                "Go",
			"proficiency_level":   "Expert",
			"years_of_experience": 5,
		}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var skill models.UserSkill
		decodeBody(t, resp, &skill)
		assert.Equal(t, "Go", skill.Name)

		req = authed(jsonRequest(http.MethodPost, "/api/profile/skills",
			map[string]any{"name": ""}), token)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		req = authed(jsonRequest(http.MethodDelete,
			fmt.Sprintf("/api/profile/skills/%d", skill.ID), nil), token)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("experience requires company and position", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodPost, "/api/profile/experience",
			map[string]any{"company": "Acme"}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("resume upload", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("resume", "cv.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 profile resume"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/profile/resume", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, respErr := app.Test(authed(req, token))
		require.NoError(t, respErr)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.UserProfile
		decodeBody(t, resp, &profile)
		assert.NotEmpty(t, profile.ResumePath)
	})
}

func TestSearchCandidatesOverHTTP(t *testing.T) {
	s, app, db := setupTestServer(t)

	employer := createUser(t, db, "employer@test.com", models.RoleEmployer)
	seeker := createUser(t, db, "seeker@test.com", models.RoleJobSeeker)
	seekerToken := tokenFor(t, s, seeker)

	// Build a findable profile through the API.
	req := authed(jsonRequest(http.MethodPut, "/api/profile", map[string]string{
		"bio":      "Distributed systems person",
		"location": "Berlin",
	}), seekerToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = authed(jsonRequest(http.MethodPost, "/api/profile/skills",
		map[string]any{"name": "Go"}), seekerToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("employer finds the candidate by skill", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodGet,
			"/api/candidates/search?skill=Go", nil), tokenFor(t, s, employer))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profiles []models.UserProfile
		decodeBody(t, resp, &profiles)
		require.Len(t, profiles, 1)
		assert.Equal(t, seeker.ID, profiles[0].UserID)
	})

	t.Run("seeker role is refused", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodGet,
			"/api/candidates/search?skill=Go", nil), seekerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
