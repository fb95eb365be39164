package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	githubUC "github.com/nghiatran/devconnect/internal/application/usecase/github"
	profileUC "github.com/nghiatran/devconnect/internal/application/usecase/profile"
	"github.com/nghiatran/devconnect/pkg/apperror"
)

type ProfileHandler struct {
	profileUseCase       *profileUC.ProfileUseCase
	experienceUseCase    *profileUC.ExperienceUseCase
	educationUseCase     *profileUC.EducationUseCase
	deleteAccountUseCase *profileUC.DeleteAccountUseCase
	listReposUseCase     *githubUC.ListReposUseCase
}

func NewProfileHandler(
	profileUC *profileUC.ProfileUseCase,
	experienceUC *profileUC.ExperienceUseCase,
	educationUC *profileUC.EducationUseCase,
	deleteAccountUC *profileUC.DeleteAccountUseCase,
	listReposUC *githubUC.ListReposUseCase,
) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase:       profileUC,
		experienceUseCase:    experienceUC,
		educationUseCase:     educationUC,
		deleteAccountUseCase: deleteAccountUC,
		listReposUseCase:     listReposUC,
	}
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	input := profileUC.UpsertProfileInput{
		OwnerID: userID,
		Update:  req.ToDomainUpdate(),
	}
	output, err := h.profileUseCase.ExecuteUpsert(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	c.JSON(status, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGet(c.Request.Context(), profileUC.GetProfileInput{OwnerID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ProfileDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToProfileDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	// A malformed id and a missing profile are the same thing to the caller.
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("profile", c.Param("user_id")))
		return
	}

	output, err := h.profileUseCase.ExecuteGet(c.Request.Context(), profileUC.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	if err := h.deleteAccountUseCase.Execute(c.Request.Context(), profileUC.DeleteAccountInput{UserID: userID}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	input := profileUC.AddExperienceInput{
		OwnerID:     userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        *req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	output, err := h.experienceUseCase.ExecuteAdd(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	expID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("experience", c.Param("exp_id")))
		return
	}

	output, err := h.experienceUseCase.ExecuteRemove(c.Request.Context(), profileUC.RemoveExperienceInput{
		OwnerID:      userID,
		ExperienceID: expID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	input := profileUC.AddEducationInput{
		OwnerID:      userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         *req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	output, err := h.educationUseCase.ExecuteAdd(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	eduID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("education", c.Param("edu_id")))
		return
	}

	output, err := h.educationUseCase.ExecuteRemove(c.Request.Context(), profileUC.RemoveEducationInput{
		OwnerID:     userID,
		EducationID: eduID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) ListGithubRepos(c *gin.Context) {
	output, err := h.listReposUseCase.Execute(c.Request.Context(), githubUC.ListReposInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToRepoDTOs(output.Repos))
}
