package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"coachpro-backend/config"
	"coachpro-backend/models"
	"coachpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	ClienteCodigo string `json:"clienteCodigo" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Country       string `json:"country"`
	Notes         string `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Country  *string `json:"country"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// CreateClient creates a new CRM client for the academy
func CreateClient(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input.ClienteCodigo = strings.ToUpper(strings.TrimSpace(input.ClienteCodigo))
	if !utils.ValidateClienteCodigo(input.ClienteCodigo) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client code format")
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Client codes are unique per academy
	var existing models.Client
	if err := config.DB.Where("academy_id = ? AND cliente_codigo = ?", academyUUID, input.ClienteCodigo).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Client with this code already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	createdBy, _ := uuid.Parse(userID.(string))
	client := models.Client{
		AcademyID:       academyUUID,
		CreatedByUserID: createdBy,
		ClienteCodigo:   input.ClienteCodigo,
		Name:            input.Name,
		Phone:           input.Phone,
		Email:           input.Email,
		Country:         input.Country,
		Notes:           input.Notes,
		IsActive:        true,
	}
	client.ID = uuid.New()

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients lists clients with pagination and optional search
func GetClients(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := config.DB.Model(&models.Client{}).Where("academy_id = ?", academyUUID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR cliente_codigo ILIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var clients []models.Client
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     clients,
		"page":     page,
		"pageSize": pageSize,
		"total":    total,
	})
}

// GetClient retrieves one client by ID
func GetClient(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Preload("Plans").Preload("Payments").
		Where("academy_id = ? AND id = ?", academyUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("academy_id = ? AND id = ?", academyUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Phone != nil && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Country != nil {
		client.Country = *input.Country
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func DeleteClient(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("academy_id = ? AND id = ?", academyUUID, clientUUID).
		Delete(&models.Client{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// academyFromContext pulls the academy UUID set by the auth middleware
func academyFromContext(c *gin.Context) (uuid.UUID, bool) {
	academyID, exists := c.Get("academyId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Academy ID not found in context")
		return uuid.Nil, false
	}
	academyUUID, err := uuid.Parse(academyID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid academy ID format")
		return uuid.Nil, false
	}
	return academyUUID, true
}
