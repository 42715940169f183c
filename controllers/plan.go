// controllers/plan.go
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

// InstallmentDetailInput is one explicit cuota posted by the admin UI
type InstallmentDetailInput struct {
	Date    time.Time `json:"date" binding:"required"`
	Amount  float64   `json:"amount" binding:"required,gt=0"`
	Type    string    `json:"type" binding:"omitempty,oneof=regular extra bono reserva"`
	Concept string    `json:"concept"`
}

// CreatePlanInput defines the expected JSON structure for creating a payment plan
type CreatePlanInput struct {
	ClienteCodigo    string     `json:"clienteCodigo" binding:"required"`
	ProgramID        *uuid.UUID `json:"programId"`
	PlanType         string     `json:"planType" binding:"required,oneof=contado cuotas excepcion_2_cuotas reserva"`
	TotalAmount      float64    `json:"totalAmount" binding:"required,gt=0"`
	InstallmentCount int        `json:"installmentCount"`
	Currency         string     `json:"currency"`
	Metodo           string     `json:"metodo"`
	StartDate        time.Time  `json:"startDate" binding:"required"`

	ReservationAmount float64    `json:"reservationAmount"`
	ReservationDate   *time.Time `json:"reservationDate"`

	Notes string `json:"notes"`

	// When present these override the generated schedule entirely.
	Details []InstallmentDetailInput `json:"details"`
}

// UpdatePlanInput defines plan-level fields editable after creation
type UpdatePlanInput struct {
	Metodo   *string `json:"metodo"`
	Currency *string `json:"currency"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// UpdateInstallmentInput edits one cuota
type UpdateInstallmentInput struct {
	Date    *time.Time `json:"date"`
	Amount  *float64   `json:"amount" binding:"omitempty,gt=0"`
	Type    *string    `json:"type" binding:"omitempty,oneof=regular extra bono reserva"`
	Concept *string    `json:"concept"`
}

// SplitInstallmentInput replaces one cuota with N parts
type SplitInstallmentInput struct {
	Parts int         `json:"parts" binding:"required,min=2"`
	Dates []time.Time `json:"dates"`
}

// RescheduleInput moves the first pending cuota to a new date
type RescheduleInput struct {
	NewDate time.Time `json:"newDate" binding:"required"`
}

// CreatePlan creates a payment plan with its initial installment details.
// When no explicit details are posted the schedule is built from the
// plan parameters (and the program's pricing preset, if one matches).
func CreatePlan(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreatePlanInput
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

	var entries []planner.Entry
	if len(input.Details) > 0 {
		for _, d := range input.Details {
			typ := d.Type
			if typ == "" {
				typ = planner.TypeRegular
			}
			entries = append(entries, planner.Entry{
				ID:      uuid.NewString(),
				Date:    d.Date,
				Amount:  planner.Round2(d.Amount),
				Type:    typ,
				Concept: d.Concept,
			})
		}
		entries = planner.Normalize(entries)
	} else {
		presetAmount := 0.0
		if input.PlanType == planner.PlanCuotas && input.ProgramID != nil {
			var preset models.PricingPreset
			if err := config.DB.Where("program_id = ? AND installment_count = ? AND is_active = true",
				*input.ProgramID, input.InstallmentCount).
				First(&preset).Error; err == nil {
				presetAmount = preset.InstallmentAmount
			}
		}

		reservationDate := time.Time{}
		if input.ReservationDate != nil {
			reservationDate = *input.ReservationDate
		}

		built, err := planner.Build(planner.BuildParams{
			PlanType:          input.PlanType,
			TotalAmount:       input.TotalAmount,
			InstallmentCount:  input.InstallmentCount,
			PresetAmount:      presetAmount,
			StartDate:         input.StartDate,
			ReservationAmount: input.ReservationAmount,
			ReservationDate:   reservationDate,
		})
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Failed to build schedule: "+err.Error())
			return
		}
		entries = built
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	createdBy, _ := uuid.Parse(userID.(string))
	plan := models.PaymentPlan{
		ID:                uuid.New(),
		AcademyID:         academyUUID,
		CreatedByUserID:   createdBy,
		ClientID:          client.ID,
		PlanType:          input.PlanType,
		Amount:            planner.PayableTotal(entries),
		Currency:          currency,
		Metodo:            input.Metodo,
		StartDate:         input.StartDate,
		ReservationAmount: input.ReservationAmount,
		ReservationDate:   input.ReservationDate,
		Notes:             input.Notes,
		IsActive:          true,
	}
	if input.ProgramID != nil {
		plan.ProgramID = *input.ProgramID
	}
	plan.PlanCode = "PLAN-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)

	for i, e := range entries {
		plan.Installments = append(plan.Installments, models.Installment{
			DetailCode:  e.ID,
			CuotaCodigo: e.CuotaCodigo,
			DueDate:     e.Date,
			Amount:      e.Amount,
			Type:        e.Type,
			Concept:     e.Concept,
			Position:    i,
		})
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&plan).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	if err := tx.Model(&models.Client{}).Where("id = ?", client.ID).
		Update("active_plans", gorm.Expr("active_plans + ?", 1)).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client stats")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, plan)
}

// GetPlans lists plans, optionally filtered by client code, paginated
func GetPlans(c *gin.Context) {
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

	query := config.DB.Model(&models.PaymentPlan{}).Where("payment_plans.academy_id = ?", academyUUID)
	if code := c.Query("cliente_codigo"); code != "" {
		query = query.Joins("JOIN clients ON clients.id = payment_plans.client_id").
			Where("clients.cliente_codigo = ?", code)
	}

	var total int64
	query.Count(&total)

	var plans []models.PaymentPlan
	if err := query.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("payment_plans.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&plans).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     plans,
		"page":     page,
		"pageSize": pageSize,
		"total":    total,
	})
}

// GetPlan retrieves a full plan with its installment details
func GetPlan(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	entries := entriesFromModel(plan.Installments)
	c.JSON(http.StatusOK, gin.H{
		"plan":             plan,
		"totalPayable":     planner.PayableTotal(entries),
		"totalWithBonuses": planner.TotalWithBonuses(entries),
	})
}

// UpdatePlan updates plan-level fields
func UpdatePlan(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	var input UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Metodo != nil {
		plan.Metodo = *input.Metodo
	}
	if input.Currency != nil {
		plan.Currency = *input.Currency
	}
	if input.Notes != nil {
		plan.Notes = *input.Notes
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// UpdateInstallment edits one cuota and renormalizes the schedule
func UpdateInstallment(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	var input UpdateInstallmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	detailCode := c.Param("detailCode")
	entries := entriesFromModel(plan.Installments)
	found := false
	for i := range entries {
		if entries[i].ID != detailCode {
			continue
		}
		found = true
		if input.Date != nil {
			entries[i].Date = *input.Date
		}
		if input.Amount != nil {
			entries[i].Amount = planner.Round2(*input.Amount)
		}
		if input.Type != nil {
			entries[i].Type = *input.Type
		}
		if input.Concept != nil {
			entries[i].Concept = *input.Concept
		}
		break
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Installment not found")
		return
	}

	savePlanSchedule(c, &plan, planner.Normalize(entries))
}

// AddInstallment appends one cuota to the plan
func AddInstallment(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	var input InstallmentDetailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	typ := input.Type
	if typ == "" {
		typ = planner.TypeRegular
	}

	entries := entriesFromModel(plan.Installments)
	entries = append(entries, planner.Entry{
		ID:      uuid.NewString(),
		Date:    input.Date,
		Amount:  planner.Round2(input.Amount),
		Type:    typ,
		Concept: input.Concept,
	})

	savePlanSchedule(c, &plan, planner.Normalize(entries))
}

// DeleteInstallment removes one cuota from the plan
func DeleteInstallment(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	detailCode := c.Param("detailCode")
	entries := entriesFromModel(plan.Installments)
	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.ID == detailCode {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Installment not found")
		return
	}

	savePlanSchedule(c, &plan, planner.Normalize(kept))
}

// SplitInstallment replaces one cuota with N dated parts
func SplitInstallment(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	var input SplitInstallmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entries := entriesFromModel(plan.Installments)
	split, err := planner.Split(entries, c.Param("detailCode"), input.Parts, input.Dates)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrEntryNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Installment not found")
		case errors.Is(err, planner.ErrDateAfterOriginal), errors.Is(err, planner.ErrSplitCount):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to split installment")
		}
		return
	}

	savePlanSchedule(c, &plan, split)
}

// ReschedulePlan shifts every pending cuota by the delta between the
// first pending cuota's date and the requested new date
func ReschedulePlan(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payments, err := paymentRecordsForPlan(plan)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load payment history")
		return
	}

	entries := entriesFromModel(plan.Installments)
	shifted, err := planner.Reschedule(entries, payments, input.NewDate, time.Now())
	if err != nil {
		if errors.Is(err, planner.ErrNoPending) {
			utils.RespondWithError(c, http.StatusBadRequest, "No pending installments to reschedule")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reschedule plan")
		}
		return
	}

	savePlanSchedule(c, &plan, shifted)
}

// GetPlanStatus returns the schedule reconciled against payment history
func GetPlanStatus(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	plan, ok := loadPlan(c, academyUUID, c.Param("planCode"))
	if !ok {
		return
	}

	payments, err := paymentRecordsForPlan(plan)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load payment history")
		return
	}

	entries := entriesFromModel(plan.Installments)
	statuses := planner.Reconcile(entries, payments, time.Now())

	type cuotaStatus struct {
		DetailCode  string    `json:"detailCode"`
		CuotaCodigo string    `json:"cuotaCodigo"`
		Date        time.Time `json:"date"`
		Amount      float64   `json:"amount"`
		Type        string    `json:"type"`
		Concept     string    `json:"concept"`
		Status      string    `json:"status,omitempty"`
	}

	var out []cuotaStatus
	var paidAmount, pendingAmount, overdueAmount float64
	for _, e := range entries {
		s := statuses[e.ID]
		switch s {
		case planner.StatusPaid:
			paidAmount += e.Amount
		case planner.StatusPending:
			pendingAmount += e.Amount
		case planner.StatusOverdue:
			overdueAmount += e.Amount
		}
		out = append(out, cuotaStatus{
			DetailCode:  e.ID,
			CuotaCodigo: e.CuotaCodigo,
			Date:        e.Date,
			Amount:      e.Amount,
			Type:        e.Type,
			Concept:     e.Concept,
			Status:      s,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"planCode":      plan.PlanCode,
		"installments":  out,
		"paidAmount":    planner.Round2(paidAmount),
		"pendingAmount": planner.Round2(pendingAmount),
		"overdueAmount": planner.Round2(overdueAmount),
		"totalPayable":  planner.PayableTotal(entries),
	})
}

// --- helpers ---

func loadPlan(c *gin.Context, academyUUID uuid.UUID, planCode string) (models.PaymentPlan, bool) {
	var plan models.PaymentPlan
	err := config.DB.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("academy_id = ? AND plan_code = ?", academyUUID, planCode).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return plan, false
	}
	return plan, true
}

func entriesFromModel(installments []models.Installment) []planner.Entry {
	entries := make([]planner.Entry, len(installments))
	for i, ins := range installments {
		entries[i] = planner.Entry{
			ID:          ins.DetailCode,
			CuotaCodigo: ins.CuotaCodigo,
			Date:        ins.DueDate,
			Amount:      ins.Amount,
			Type:        ins.Type,
			Concept:     ins.Concept,
		}
	}
	return entries
}

func paymentRecordsForPlan(plan models.PaymentPlan) ([]planner.PaymentRecord, error) {
	var payments []models.Payment
	if err := config.DB.Where("client_id = ? AND (plan_id IS NULL OR plan_id = ?)", plan.ClientID, plan.ID).
		Order("date ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	records := make([]planner.PaymentRecord, len(payments))
	for i, p := range payments {
		records[i] = planner.PaymentRecord{Amount: p.Amount, Date: p.Date, Status: p.Status}
	}
	return records, nil
}

// savePlanSchedule persists a recomputed schedule in one transaction:
// upserts by DetailCode, removes dropped cuotas and re-derives the plan
// amount from the non-bono entries.
func savePlanSchedule(c *gin.Context, plan *models.PaymentPlan, entries []planner.Entry) {
	existing := make(map[string]models.Installment, len(plan.Installments))
	for _, ins := range plan.Installments {
		existing[ins.DetailCode] = ins
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		seen[e.ID] = true
		if ins, ok := existing[e.ID]; ok {
			ins.CuotaCodigo = e.CuotaCodigo
			ins.DueDate = e.Date
			ins.Amount = e.Amount
			ins.Type = e.Type
			ins.Concept = e.Concept
			ins.Position = i
			if err := tx.Save(&ins).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update installment")
				return
			}
			continue
		}
		ins := models.Installment{
			PlanID:      plan.ID,
			DetailCode:  e.ID,
			CuotaCodigo: e.CuotaCodigo,
			DueDate:     e.Date,
			Amount:      e.Amount,
			Type:        e.Type,
			Concept:     e.Concept,
			Position:    i,
		}
		if err := tx.Create(&ins).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create installment")
			return
		}
	}

	for code, ins := range existing {
		if seen[code] {
			continue
		}
		if err := tx.Delete(&ins).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete installment")
			return
		}
	}

	plan.Amount = planner.PayableTotal(entries)
	plan.Installments = nil
	if err := tx.Save(plan).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	tx.Commit()

	// Return the fresh state
	var updated models.PaymentPlan
	if err := config.DB.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&updated, "id = ?", plan.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reload plan")
		return
	}
	c.JSON(http.StatusOK, updated)
}
