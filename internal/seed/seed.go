package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/config"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
	"github.com/staysuite/staysuite-backend/pkg/logger"
	"github.com/staysuite/staysuite-backend/pkg/security"
)

// Summary reports how many rows the sample dataset inserted per entity.
type Summary struct {
	Properties      int
	Rooms           int
	Photos          int
	Bookings        int
	Tasks           int
	InventoryItems  int
	TeamMembers     int
	TeamSchedules   int
	Invoices        int
	LineItems       int
	Payments        int
	Expenses        int
	Reports         int
	Users           int
	UserPreferences int
}

// Apply inserts the sample dataset the dashboard boots with. It assumes an
// empty store; callers reset first when reseeding.
func Apply(ctx context.Context, conn *gorm.DB, passwordCfg config.PasswordConfig, logg *logger.Logger) (*Summary, error) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	summary := &Summary{}

	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		villa := &models.Property{
			ID:                 uuid.New(),
			Name:               "Seabright Villa",
			AddressLine:        "214 Seabright Ave",
			City:               "Santa Cruz",
			State:              "CA",
			ZipCode:            "95062",
			Country:            "US",
			PricePerNightCents: 28500,
			Bedrooms:           3,
			Bathrooms:          2,
			MaxGuests:          6,
		}
		cabin := &models.Property{
			ID:                 uuid.New(),
			Name:               "Ponderosa Cabin",
			AddressLine:        "18 Ridge Trail",
			City:               "Truckee",
			State:              "CA",
			ZipCode:            "96161",
			Country:            "US",
			PricePerNightCents: 19000,
			Bedrooms:           2,
			Bathrooms:          1,
			MaxGuests:          4,
		}
		for _, p := range []*models.Property{villa, cabin} {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("seed property: %w", err)
			}
			summary.Properties++
		}

		master := &models.Room{ID: uuid.New(), PropertyID: villa.ID, Name: "Master Suite", Type: "bedroom"}
		kitchen := &models.Room{ID: uuid.New(), PropertyID: villa.ID, Name: "Kitchen", Type: "kitchen"}
		loft := &models.Room{ID: uuid.New(), PropertyID: cabin.ID, Name: "Loft", Type: "bedroom"}
		for _, r := range []*models.Room{master, kitchen, loft} {
			if err := tx.Create(r).Error; err != nil {
				return fmt.Errorf("seed room: %w", err)
			}
			summary.Rooms++
		}

		caption := "Front elevation at sunset"
		photos := []*models.PropertyPhoto{
			{ID: uuid.New(), PropertyID: villa.ID, URL: "https://cdn.staysuite.dev/photos/seabright-front.jpg", Caption: &caption, Position: 1},
			{ID: uuid.New(), PropertyID: cabin.ID, URL: "https://cdn.staysuite.dev/photos/ponderosa-deck.jpg", Position: 1},
		}
		for _, p := range photos {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("seed photo: %w", err)
			}
			summary.Photos++
		}

		guestEmail := "dana@example.com"
		booking := &models.Booking{
			ID:           uuid.New(),
			PropertyID:   villa.ID,
			GuestName:    "Dana Whitfield",
			GuestEmail:   &guestEmail,
			GuestCount:   4,
			CheckInDate:  now.AddDate(0, 0, 10),
			CheckOutDate: now.AddDate(0, 0, 14),
			Status:       enums.BookingStatusConfirmed,
			TotalCents:   114000,
		}
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("seed booking: %w", err)
		}
		summary.Bookings++

		cleaner := &models.TeamMember{
			ID:              uuid.New(),
			Name:            "Luis Ortega",
			Email:           "luis@staysuite.dev",
			Role:            enums.TeamRoleCleaner,
			Active:          true,
			HourlyRateCents: 2500,
		}
		handyman := &models.TeamMember{
			ID:              uuid.New(),
			Name:            "Ana Petrova",
			Email:           "ana@staysuite.dev",
			Role:            enums.TeamRoleMaintenance,
			Active:          true,
			HourlyRateCents: 3200,
		}
		for _, m := range []*models.TeamMember{cleaner, handyman} {
			if err := tx.Create(m).Error; err != nil {
				return fmt.Errorf("seed team member: %w", err)
			}
			summary.TeamMembers++
		}

		turnover := &models.Task{
			ID:           uuid.New(),
			PropertyID:   villa.ID,
			RoomID:       &master.ID,
			AssignedToID: &cleaner.ID,
			Title:        "Turnover clean before Whitfield check-in",
			Status:       enums.TaskStatusPending,
			Priority:     enums.TaskPriorityHigh,
		}
		heater := &models.Task{
			ID:           uuid.New(),
			PropertyID:   cabin.ID,
			AssignedToID: &handyman.ID,
			Title:        "Service water heater",
			Status:       enums.TaskStatusInProgress,
			Priority:     enums.TaskPriorityMedium,
		}
		for _, task := range []*models.Task{turnover, heater} {
			if err := tx.Create(task).Error; err != nil {
				return fmt.Errorf("seed task: %w", err)
			}
			summary.Tasks++
		}

		shift := &models.TeamSchedule{
			ID:           uuid.New(),
			TeamMemberID: cleaner.ID,
			PropertyID:   villa.ID,
			TaskID:       &turnover.ID,
			StartTime:    now.AddDate(0, 0, 10).Add(-6 * time.Hour),
			EndTime:      now.AddDate(0, 0, 10).Add(-2 * time.Hour),
			Status:       enums.ScheduleStatusScheduled,
		}
		if err := tx.Create(shift).Error; err != nil {
			return fmt.Errorf("seed schedule: %w", err)
		}
		summary.TeamSchedules++

		items := []*models.InventoryItem{
			{ID: uuid.New(), PropertyID: villa.ID, RoomID: master.ID, Name: "King Mattress", Category: "furniture", Quantity: 1, Condition: enums.ItemConditionExcellent},
			{ID: uuid.New(), PropertyID: villa.ID, RoomID: kitchen.ID, Name: "Espresso Machine", Category: "appliances", Quantity: 1, Condition: enums.ItemConditionGood},
			{ID: uuid.New(), PropertyID: cabin.ID, RoomID: loft.ID, Name: "Wool Blankets", Category: "linens", Quantity: 4, Condition: enums.ItemConditionFair},
		}
		for _, item := range items {
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("seed inventory item: %w", err)
			}
			summary.InventoryItems++
		}

		invoice := &models.Invoice{
			ID:            uuid.New(),
			PropertyID:    villa.ID,
			BookingID:     &booking.ID,
			InvoiceNumber: "INV-2026-0001",
			Status:        enums.InvoiceStatusSent,
			IssueDate:     now,
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("seed invoice: %w", err)
		}
		summary.Invoices++

		lineItems := []*models.InvoiceLineItem{
			{ID: uuid.New(), InvoiceID: invoice.ID, Description: "4 nights at Seabright Villa", Quantity: 4, UnitPriceCents: 28500, AmountCents: 114000},
			{ID: uuid.New(), InvoiceID: invoice.ID, Description: "Cleaning fee", Quantity: 1, UnitPriceCents: 9500, AmountCents: 9500},
		}
		total := 0
		for _, item := range lineItems {
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("seed line item: %w", err)
			}
			total += item.AmountCents
			summary.LineItems++
		}
		if err := tx.Model(invoice).Update("total_cents", total).Error; err != nil {
			return fmt.Errorf("seed invoice total: %w", err)
		}

		payment := &models.Payment{
			ID:          uuid.New(),
			InvoiceID:   invoice.ID,
			AmountCents: 61750,
			Method:      "card",
			PaidAt:      now.AddDate(0, 0, 1),
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("seed payment: %w", err)
		}
		summary.Payments++

		expense := &models.Expense{
			ID:          uuid.New(),
			PropertyID:  &cabin.ID,
			Category:    "maintenance",
			Description: "Water heater anode rod",
			AmountCents: 6800,
			Status:      enums.ExpenseStatusApproved,
			IncurredAt:  now.AddDate(0, 0, -3),
		}
		if err := tx.Create(expense).Error; err != nil {
			return fmt.Errorf("seed expense: %w", err)
		}
		summary.Expenses++

		report := &models.FinancialReport{
			ID:            uuid.New(),
			Title:         "July portfolio summary",
			StartDate:     now.AddDate(0, -1, 0),
			EndDate:       now.AddDate(0, 0, -1),
			RevenueCents:  342000,
			ExpensesCents: 58100,
			NetCents:      283900,
		}
		if err := tx.Create(report).Error; err != nil {
			return fmt.Errorf("seed report: %w", err)
		}
		summary.Reports++

		hash, err := security.HashPassword("staysuite-demo", passwordCfg)
		if err != nil {
			return fmt.Errorf("seed user password: %w", err)
		}
		admin := &models.User{
			ID:           uuid.New(),
			Email:        "admin@staysuite.dev",
			Name:         "Priya Shah",
			Role:         enums.UserRoleAdmin,
			PasswordHash: hash,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		summary.Users++

		pref := &models.UserPreference{
			ID:                   uuid.New(),
			UserID:               admin.ID,
			Timezone:             "America/Los_Angeles",
			Locale:               "en-US",
			Theme:                "dark",
			NotificationsEnabled: true,
		}
		if err := tx.Create(pref).Error; err != nil {
			return fmt.Errorf("seed preference: %w", err)
		}
		summary.UserPreferences++

		return nil
	})
	if err != nil {
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "sample dataset seeded")
	}
	return summary, nil
}
