// services/overdue_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"coachpro-backend/models"
	"coachpro-backend/planner"
	"coachpro-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// OverdueService reconciles every active plan against its payment
// history once a day and notifies clients with overdue cuotas.
type OverdueService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewOverdueService(db *gorm.DB) *OverdueService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &OverdueService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *OverdueService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendOverdueReminders)

	c.Start()
	log.Println("Overdue reminder scheduler started")
}

func (s *OverdueService) SendOverdueReminders() {
	log.Println("Starting overdue reminder processing...")

	var academies []models.Academy
	if err := s.db.Find(&academies, "overdue_reminders = ?", true).Error; err != nil {
		log.Printf("Failed to fetch academies: %v", err)
		return
	}

	for _, academy := range academies {
		s.ProcessAcademy(academy.ID)
	}

	log.Println("Overdue reminder processing completed")
}

func (s *OverdueService) ProcessAcademy(academyID uuid.UUID) {
	var plans []models.PaymentPlan
	err := s.db.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("academy_id = ? AND is_active = true", academyID).Find(&plans).Error
	if err != nil {
		log.Printf("Academy %s: failed to fetch plans: %v", academyID, err)
		return
	}

	now := time.Now()
	for _, plan := range plans {
		overdue, err := s.overdueCuotas(plan, now)
		if err != nil {
			log.Printf("Plan %s: reconcile failed: %v", plan.PlanCode, err)
			continue
		}
		if len(overdue) == 0 {
			continue
		}

		// One reminder per day per plan, even with several overdue cuotas
		var already int64
		s.db.Model(&models.NotificationLog{}).
			Where("plan_id = ? AND type = 'overdue' AND sent_at >= ?", plan.ID, utils.StartOfDay(now)).
			Count(&already)
		if already > 0 {
			continue
		}

		s.sendReminder(plan, overdue)
	}
}

func (s *OverdueService) overdueCuotas(plan models.PaymentPlan, now time.Time) ([]planner.Entry, error) {
	var payments []models.Payment
	if err := s.db.Where("client_id = ? AND (plan_id IS NULL OR plan_id = ?)", plan.ClientID, plan.ID).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	records := make([]planner.PaymentRecord, len(payments))
	for i, p := range payments {
		records[i] = planner.PaymentRecord{Amount: p.Amount, Date: p.Date, Status: p.Status}
	}

	entries := make([]planner.Entry, len(plan.Installments))
	for i, ins := range plan.Installments {
		entries[i] = planner.Entry{
			ID:      ins.DetailCode,
			Date:    ins.DueDate,
			Amount:  ins.Amount,
			Type:    ins.Type,
			Concept: ins.Concept,
		}
	}

	statuses := planner.Reconcile(entries, records, now)
	var overdue []planner.Entry
	for _, e := range entries {
		if statuses[e.ID] == planner.StatusOverdue {
			overdue = append(overdue, e)
		}
	}
	return overdue, nil
}

func (s *OverdueService) sendReminder(plan models.PaymentPlan, overdue []planner.Entry) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", plan.ClientID).Error; err != nil {
		log.Printf("Plan %s: client not found: %v", plan.PlanCode, err)
		return
	}

	var total float64
	for _, e := range overdue {
		total += e.Amount
	}
	message := fmt.Sprintf(
		"Hola %s, tienes %d cuota(s) vencida(s) por un total de %.2f %s. Por favor regulariza tu pago.",
		client.Name, len(overdue), planner.Round2(total), plan.Currency)

	// WhatsApp when the phone is in E.164 format, SMS otherwise
	channel := "sms"
	to := client.Phone
	if strings.HasPrefix(client.Phone, "+") {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", client.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", client.Phone)
	}

	notificationLog := models.NotificationLog{
		AcademyID:    plan.AcademyID,
		ClientID:     client.ID,
		PlanID:       plan.ID,
		Type:         "overdue",
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&notificationLog).Error; err != nil {
		log.Printf("Failed to log reminder for client %s: %v", client.ID, err)
	}
}
