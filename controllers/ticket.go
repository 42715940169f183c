// controllers/ticket.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"coachpro-backend/config"
	"coachpro-backend/models"
	"coachpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTicketInput defines the expected JSON structure for creating a ticket
type CreateTicketInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	ClientID    *uuid.UUID `json:"clientId"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTicketInput defines the expected JSON structure for updating a ticket
type UpdateTicketInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	ClientID    *uuid.UUID `json:"clientId"`
	DueDate     *time.Time `json:"dueDate"`
}

// MoveTicketInput moves a ticket to a board column/position
type MoveTicketInput struct {
	Status   string `json:"status" binding:"required,oneof=todo in_progress done"`
	Position int    `json:"position" binding:"min=0"`
}

// CreateTicket adds a card to the board (todo column, last position)
func CreateTicket(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	var lastPosition int
	config.DB.Model(&models.Ticket{}).
		Where("academy_id = ? AND status = ?", academyUUID, models.TicketTodo).
		Select("COALESCE(MAX(position), -1)").Scan(&lastPosition)

	createdBy, _ := uuid.Parse(userID.(string))
	ticket := models.Ticket{
		AcademyID:       academyUUID,
		CreatedByUserID: createdBy,
		Title:           input.Title,
		Description:     input.Description,
		Status:          models.TicketTodo,
		Priority:        priority,
		Position:        lastPosition + 1,
		AssigneeID:      input.AssigneeID,
		ClientID:        input.ClientID,
		DueDate:         input.DueDate,
	}

	if err := config.DB.Create(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// GetTickets returns the whole board grouped by column
func GetTickets(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	var tickets []models.Ticket
	if err := config.DB.Where("academy_id = ?", academyUUID).
		Order("status ASC, position ASC").
		Find(&tickets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tickets")
		return
	}

	board := gin.H{
		models.TicketTodo:       []models.Ticket{},
		models.TicketInProgress: []models.Ticket{},
		models.TicketDone:       []models.Ticket{},
	}
	for _, t := range tickets {
		if col, ok := board[t.Status].([]models.Ticket); ok {
			board[t.Status] = append(col, t)
		}
	}

	c.JSON(http.StatusOK, board)
}

// UpdateTicket edits card fields (not board placement)
func UpdateTicket(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	ticketUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	var input UpdateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var ticket models.Ticket
	if err := config.DB.Where("academy_id = ? AND id = ?", academyUUID, ticketUUID).
		First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Title != nil {
		ticket.Title = *input.Title
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		ticket.AssigneeID = input.AssigneeID
	}
	if input.ClientID != nil {
		ticket.ClientID = input.ClientID
	}
	if input.DueDate != nil {
		ticket.DueDate = input.DueDate
	}

	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// MoveTicket drags a card to a column/position; cards below shift down
func MoveTicket(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	ticketUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	var input MoveTicketInput
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

	var ticket models.Ticket
	if err := tx.Where("academy_id = ? AND id = ?", academyUUID, ticketUUID).
		First(&ticket).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Make room in the target column
	if err := tx.Model(&models.Ticket{}).
		Where("academy_id = ? AND status = ? AND position >= ? AND id <> ?",
			academyUUID, input.Status, input.Position, ticket.ID).
		Update("position", gorm.Expr("position + 1")).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder board")
		return
	}

	ticket.Status = input.Status
	ticket.Position = input.Position
	if err := tx.Save(&ticket).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to move ticket")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, ticket)
}

// DeleteTicket removes a card from the board
func DeleteTicket(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	ticketUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	result := config.DB.Where("academy_id = ? AND id = ?", academyUUID, ticketUUID).
		Delete(&models.Ticket{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}
