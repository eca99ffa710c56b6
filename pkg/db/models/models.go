package models

// All lists every entity in migration-safe order (parents before children).
func All() []any {
	return []any{
		&Property{},
		&Room{},
		&PropertyPhoto{},
		&TeamMember{},
		&Booking{},
		&Task{},
		&InventoryItem{},
		&TeamSchedule{},
		&Invoice{},
		&InvoiceLineItem{},
		&Payment{},
		&Expense{},
		&FinancialReport{},
		&User{},
		&UserPreference{},
	}
}
