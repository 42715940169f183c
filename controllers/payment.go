// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"coachpro-backend/config"
	"coachpro-backend/models"
	"coachpro-backend/planner"
	"coachpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordPaymentInput defines the expected JSON structure for recording a payment
type RecordPaymentInput struct {
	ClienteCodigo string     `json:"clienteCodigo" binding:"required"`
	PlanCode      string     `json:"planCode"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Currency      string     `json:"currency"`
	Date          *time.Time `json:"date"`
	Status        string     `json:"status"`
	Method        string     `json:"method"`
	Reference     string     `json:"reference"`
	Notes         string     `json:"notes"`
}

// UpdatePaymentInput allows correcting a recorded payment
type UpdatePaymentInput struct {
	Amount    *float64   `json:"amount" binding:"omitempty,gt=0"`
	Date      *time.Time `json:"date"`
	Status    *string    `json:"status"`
	Method    *string    `json:"method"`
	Reference *string    `json:"reference"`
	Notes     *string    `json:"notes"`
}

// RecordPayment stores one payment-history record; paid records bump
// the client's lifetime totals
func RecordPayment(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("academy_id = ? AND cliente_codigo = ?", academyUUID, input.ClienteCodigo).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var planID *uuid.UUID
	if input.PlanCode != "" {
		var plan models.PaymentPlan
		if err := config.DB.Where("academy_id = ? AND plan_code = ?", academyUUID, input.PlanCode).
			First(&plan).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Plan not found")
			return
		}
		planID = &plan.ID
	}

	paidAt := time.Now()
	if input.Date != nil {
		paidAt = *input.Date
	}
	status := input.Status
	if status == "" {
		status = "pagado"
	}
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	recordedBy, _ := uuid.Parse(userID.(string))
	payment := models.Payment{
		AcademyID:        academyUUID,
		ClientID:         client.ID,
		PlanID:           planID,
		RecordedByUserID: recordedBy,
		Amount:           planner.Round2(input.Amount),
		Currency:         currency,
		Date:             paidAt,
		Status:           status,
		Method:           input.Method,
		Reference:        input.Reference,
		Notes:            input.Notes,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	if planner.IsPaidStatus(status) {
		if err := tx.Model(&models.Client{}).Where("id = ?", client.ID).
			Updates(map[string]interface{}{
				"total_paid":   gorm.Expr("total_paid + ?", payment.Amount),
				"last_payment": paidAt,
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client stats")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists payment records, filterable by client code and plan
func GetPayments(c *gin.Context) {
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

	query := config.DB.Model(&models.Payment{}).Where("payments.academy_id = ?", academyUUID)
	if code := c.Query("cliente_codigo"); code != "" {
		query = query.Joins("JOIN clients ON clients.id = payments.client_id").
			Where("clients.cliente_codigo = ?", code)
	}
	if planCode := c.Query("plan_code"); planCode != "" {
		query = query.Joins("JOIN payment_plans ON payment_plans.id = payments.plan_id").
			Where("payment_plans.plan_code = ?", planCode)
	}

	var total int64
	query.Count(&total)

	var payments []models.Payment
	if err := query.Order("payments.date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     payments,
		"page":     page,
		"pageSize": pageSize,
		"total":    total,
	})
}

// UpdatePayment corrects a recorded payment; client lifetime totals are
// adjusted when the paid amount or status changes
func UpdatePayment(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var input UpdatePaymentInput
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

	var payment models.Payment
	if err := tx.Where("academy_id = ? AND id = ?", academyUUID, paymentUUID).
		First(&payment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	wasPaid := planner.IsPaidStatus(payment.Status)
	oldAmount := payment.Amount

	if input.Amount != nil {
		payment.Amount = planner.Round2(*input.Amount)
	}
	if input.Date != nil {
		payment.Date = *input.Date
	}
	if input.Status != nil {
		payment.Status = *input.Status
	}
	if input.Method != nil {
		payment.Method = *input.Method
	}
	if input.Reference != nil {
		payment.Reference = *input.Reference
	}
	if input.Notes != nil {
		payment.Notes = *input.Notes
	}

	if err := tx.Save(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	isPaid := planner.IsPaidStatus(payment.Status)
	var delta float64
	switch {
	case wasPaid && isPaid:
		delta = payment.Amount - oldAmount
	case wasPaid && !isPaid:
		delta = -oldAmount
	case !wasPaid && isPaid:
		delta = payment.Amount
	}
	if delta != 0 {
		if err := tx.Model(&models.Client{}).Where("id = ?", payment.ClientID).
			Update("total_paid", gorm.Expr("total_paid + ?", delta)).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client stats")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, payment)
}

// DeletePayment voids a payment record
func DeletePayment(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var payment models.Payment
	if err := tx.Where("academy_id = ? AND id = ?", academyUUID, paymentUUID).
		First(&payment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Delete(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment")
		return
	}

	if planner.IsPaidStatus(payment.Status) {
		if err := tx.Model(&models.Client{}).Where("id = ?", payment.ClientID).
			Update("total_paid", gorm.Expr("total_paid - ?", payment.Amount)).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client stats")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
