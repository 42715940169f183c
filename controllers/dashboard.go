package controllers

import (
	"fmt"
	"net/http"
	"time"

	"coachpro-backend/config"
	"coachpro-backend/models"
	"coachpro-backend/planner"
	"coachpro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardOverview struct {
	TotalClients     int64           `json:"totalClients"`
	ActivePlans      int64           `json:"activePlans"`
	MonthlyCollected float64         `json:"monthlyCollected"`
	OverdueCuotas    int             `json:"overdueCuotas"`
	OverdueAmount    float64         `json:"overdueAmount"`
	RecentPayments   []RecentPayment `json:"recentPayments"`
}

type RecentPayment struct {
	ClientName string  `json:"clientName"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	When       string  `json:"when"` // e.g. "Today", "3 days ago"
}

func GetDashboardOverview(c *gin.Context) {
	academyUUID, ok := academyFromContext(c)
	if !ok {
		return
	}

	var overview DashboardOverview

	config.DB.Model(&models.Client{}).
		Where("academy_id = ? AND is_active = true", academyUUID).
		Count(&overview.TotalClients)

	config.DB.Model(&models.PaymentPlan{}).
		Where("academy_id = ? AND is_active = true", academyUUID).
		Count(&overview.ActivePlans)

	// Collected this month (paid statuses only)
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.Payment{}).
		Where("academy_id = ? AND date >= ? AND LOWER(status) IN ('pagado','paid','completed','listo','aprobado')",
			academyUUID, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.MonthlyCollected)

	// Overdue cuotas come from reconciling each active plan against its
	// payment history; there is no stored paid flag to aggregate over.
	var plans []models.PaymentPlan
	config.DB.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("academy_id = ? AND is_active = true", academyUUID).Find(&plans)

	for _, plan := range plans {
		payments, err := paymentRecordsForPlan(plan)
		if err != nil {
			continue
		}
		entries := entriesFromModel(plan.Installments)
		for id, status := range planner.Reconcile(entries, payments, now) {
			if status != planner.StatusOverdue {
				continue
			}
			overview.OverdueCuotas++
			for _, e := range entries {
				if e.ID == id {
					overview.OverdueAmount += e.Amount
					break
				}
			}
		}
	}
	overview.OverdueAmount = planner.Round2(overview.OverdueAmount)

	// Recent payments (last 5)
	rows, err := config.DB.Raw(`
        SELECT c.name, p.amount, p.currency, p.date
        FROM payments p
        JOIN clients c ON c.id = p.client_id
        WHERE p.academy_id = ? AND p.deleted_at IS NULL
        ORDER BY p.date DESC
        LIMIT 5
    `, academyUUID).Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var rp RecentPayment
			var paidAt time.Time
			if err := rows.Scan(&rp.ClientName, &rp.Amount, &rp.Currency, &paidAt); err != nil {
				continue
			}
			rp.When = humanizeDaysAgo(paidAt, now)
			overview.RecentPayments = append(overview.RecentPayments, rp)
		}
	}

	c.JSON(http.StatusOK, overview)
}

func humanizeDaysAgo(t, now time.Time) string {
	days := utils.DaysBetween(t, now)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
