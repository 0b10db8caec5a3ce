package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/service"
)

// UserHandler handles profile, settings and profile image requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe godoc
// @Summary      Get my profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), authData.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update my profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "Profile"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), authData.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// DeleteMe godoc
// @Summary      Delete my account
// @Description  Removes the account together with its boards, settings and profile images
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse
// @Failure      401 {object} response.ErrorResponse
// @Router       /users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteMe(c.Request.Context(), authData.UserID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// GetSettings godoc
// @Summary      Get my settings
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.SettingsResponse}
// @Router       /users/me/settings [get]
func (h *UserHandler) GetSettings(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	settings, err := h.userService.GetSettings(c.Request.Context(), authData.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update my settings
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateSettingsRequest true "Settings"
// @Success      200 {object} response.SuccessResponse{data=dto.SettingsResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /users/me/settings [put]
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	settings, err := h.userService.UpdateSettings(c.Request.Context(), authData.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, settings)
}

// GenerateProfileImageURL godoc
// @Summary      Start a profile image upload
// @Description  Returns a presigned PUT URL; confirm the attachment once the upload finishes
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PresignedURLRequest true "File"
// @Success      200 {object} response.SuccessResponse{data=dto.PresignedURLResponse}
// @Failure      400 {object} response.ErrorResponse "Unsupported type or too large"
// @Failure      503 {object} response.ErrorResponse "Storage not configured"
// @Router       /users/me/profile-image/presigned-url [post]
func (h *UserHandler) GenerateProfileImageURL(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	resp, err := h.userService.CreateProfileImageUpload(c.Request.Context(), authData.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, resp)
}

// ConfirmProfileImage godoc
// @Summary      Confirm an uploaded profile image
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ConfirmProfileImageRequest true "Attachment"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse "Upload expired or already confirmed"
// @Failure      404 {object} response.ErrorResponse
// @Router       /users/me/profile-image [put]
func (h *UserHandler) ConfirmProfileImage(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.ConfirmProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.ConfirmProfileImage(c.Request.Context(), authData.UserID, req.AttachmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UploadProfileImage godoc
// @Summary      Upload a profile image through the API
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Image (jpeg, png, gif or webp, up to 5MB)"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse
// @Router       /users/me/profile-image/upload [post]
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "File is required")
		return
	}
	if fileHeader.Size > service.MaxProfileImageSize {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "File exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Could not read uploaded file")
		return
	}
	defer file.Close()

	user, err := h.userService.UploadProfileImage(
		c.Request.Context(),
		authData.UserID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// DeleteProfileImage godoc
// @Summary      Remove my profile image
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Router       /users/me/profile-image [delete]
func (h *UserHandler) DeleteProfileImage(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.userService.DeleteProfileImage(c.Request.Context(), authData.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}
