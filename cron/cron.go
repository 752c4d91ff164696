package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/utils"
)

// Start runs the background jobs: appointment reminders and the inventory
// status sweep. The returned cron can be stopped on shutdown.
func Start(conn *gorm.DB, mailer *utils.Mailer) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() { sendAppointmentReminders(conn, mailer) }); err != nil {
		return nil, fmt.Errorf("failed to add reminder job: %w", err)
	}
	if _, err := c.AddFunc("*/15 * * * *", func() { sweepInventoryStatus(conn) }); err != nil {
		return nil, fmt.Errorf("failed to add inventory sweep job: %w", err)
	}
	c.Start()
	log.Println("Cron job scheduler started")
	return c, nil
}

// sendAppointmentReminders emails patients whose confirmed appointment starts
// in roughly one hour. The date column may carry midnight with the slot time
// in the separate time field, so the query only narrows by day and the exact
// window check combines both fields.
func sendAppointmentReminders(conn *gorm.DB, mailer *utils.Mailer) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var appointments []models.Appointment
	err := conn.Preload("Patient").Preload("Dentist").
		Where("status = ? AND date BETWEEN ? AND ?", models.StatusConfirmed, dayStart, now.Add(65*time.Minute)).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if !dueForReminder(&appointment, now) {
			continue
		}
		if appointment.Patient.Email == "" {
			continue
		}
		if err := sendReminderEmail(mailer, &appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

var slotLayouts = []string{"15:04", "15:04:05", "3:04 PM"}

// appointmentStart combines the stored date with the slot time. A row whose
// date already carries the full timestamp (empty or unparseable time field)
// is used as-is.
func appointmentStart(appointment *models.Appointment) time.Time {
	d := appointment.Date
	for _, layout := range slotLayouts {
		if slot, err := time.Parse(layout, appointment.Time); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), slot.Hour(), slot.Minute(), 0, 0, d.Location())
		}
	}
	return d
}

// dueForReminder reports whether the appointment starts 55 to 65 minutes
// after now.
func dueForReminder(appointment *models.Appointment, now time.Time) bool {
	lead := appointmentStart(appointment).Sub(now)
	return lead >= 55*time.Minute && lead <= 65*time.Minute
}

func sendReminderEmail(mailer *utils.Mailer, appointment *models.Appointment) error {
	dentistName := "your dentist"
	if appointment.Dentist != nil {
		dentistName = appointment.Dentist.Name
	}
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Service)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Dentist:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>SmilePoint Dental Clinic</p>
	`, appointment.Patient.Name, appointment.Service, dentistName,
		appointment.Date.Format("2006-01-02"), appointment.Time)

	return mailer.Send(appointment.Patient.Email, subject, body)
}

// sweepInventoryStatus recomputes every item's stock status from its quantity
// against the configured minimum.
func sweepInventoryStatus(conn *gorm.DB) {
	var items []models.InventoryItem
	if err := conn.Find(&items).Error; err != nil {
		log.Printf("Error fetching inventory for status sweep: %v", err)
		return
	}

	for _, item := range items {
		status := models.StockStatusFor(item.Quantity, item.MinQuantity)
		if status == item.Status {
			continue
		}
		if err := conn.Model(&item).Update("status", status).Error; err != nil {
			log.Printf("Failed to update status for inventory item %d: %v", item.ID, err)
		}
	}
}
