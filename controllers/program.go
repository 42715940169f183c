// controllers/program.go
package controllers

import (
	"errors"
	"net/http"

	"coachpro-backend/config"
	"coachpro-backend/models"
	"coachpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingPresetInput defines one standard payment scheme for a program
type PricingPresetInput struct {
	Name              string  `json:"name" binding:"required"`
	InstallmentCount  int     `json:"installmentCount" binding:"required,min=1"`
	InstallmentAmount float64 `json:"installmentAmount" binding:"required,gt=0"`
}

// CreateProgramInput defines the expected JSON structure for creating a program
type CreateProgramInput struct {
	Name          string               `json:"name" binding:"required"`
	Description   string               `json:"description"`
	Price         float64              `json:"price" binding:"required,gt=0"`
	Currency      string               `json:"currency"`
	DurationWeeks int                  `json:"durationWeeks" binding:"min=0"`
	Presets       []PricingPresetInput `json:"presets"`
}

// UpdateProgramInput defines the expected JSON structure for updating a program
type UpdateProgramInput struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	Price         *float64              `json:"price"`
	Currency      *string               `json:"currency"`
	DurationWeeks *int                  `json:"durationWeeks"`
	IsActive      *bool                 `json:"isActive"`
	Presets       *[]PricingPresetInput `json:"presets"`
}

// CreateProgram creates a new coaching program with its pricing presets
func CreateProgram(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	var input CreateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	program := models.Program{
		ID:            uuid.New(),
		AcademyID:     academyUUID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Currency:      currency,
		DurationWeeks: input.DurationWeeks,
		IsActive:      true,
	}
	for _, p := range input.Presets {
		program.Presets = append(program.Presets, models.PricingPreset{
			Name:              p.Name,
			InstallmentCount:  p.InstallmentCount,
			InstallmentAmount: p.InstallmentAmount,
			IsActive:          true,
		})
	}

	if err := config.DB.Create(&program).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create program")
		return
	}

	c.JSON(http.StatusCreated, program)
}

// GetPrograms lists all programs for the academy
func GetPrograms(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	var programs []models.Program
	if err := config.DB.Preload("Presets").
		Where("academy_id = ?", academyUUID).
		Find(&programs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve programs")
		return
	}

	c.JSON(http.StatusOK, programs)
}

// GetProgram retrieves a specific program by ID
func GetProgram(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	programUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid program ID format")
		return
	}

	var program models.Program
	if err := config.DB.Preload("Presets").
		Where("academy_id = ? AND id = ?", academyUUID, programUUID).
		First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Program not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, program)
}

// UpdateProgram updates a program; presets, when sent, replace the old set
func UpdateProgram(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	programUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid program ID format")
		return
	}

	var input UpdateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var program models.Program
	if err := tx.Preload("Presets").
		Where("academy_id = ? AND id = ?", academyUUID, programUUID).
		First(&program).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Program not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		program.Name = *input.Name
	}
	if input.Description != nil {
		program.Description = *input.Description
	}
	if input.Price != nil {
		program.Price = *input.Price
	}
	if input.Currency != nil {
		program.Currency = *input.Currency
	}
	if input.DurationWeeks != nil {
		program.DurationWeeks = *input.DurationWeeks
	}
	if input.IsActive != nil {
		program.IsActive = *input.IsActive
	}

	if input.Presets != nil {
		if err := tx.Where("program_id = ?", program.ID).
			Delete(&models.PricingPreset{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing presets")
			return
		}
		program.Presets = nil
		for _, p := range *input.Presets {
			program.Presets = append(program.Presets, models.PricingPreset{
				ProgramID:         program.ID,
				Name:              p.Name,
				InstallmentCount:  p.InstallmentCount,
				InstallmentAmount: p.InstallmentAmount,
				IsActive:          true,
			})
		}
	}

	if err := tx.Save(&program).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update program")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, program)
}

// DeleteProgram soft deletes a program
func DeleteProgram(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	programUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid program ID format")
		return
	}

	result := config.DB.Where("academy_id = ? AND id = ?", academyUUID, programUUID).
		Delete(&models.Program{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete program")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Program not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Program deleted successfully"})
}
