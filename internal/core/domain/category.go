package domain

// Category tags obligations and cash-flow entries. A category is scoped to one
// flow direction: income categories never apply to expenses and vice versa.
type Category struct {
	CategoryID  string        `json:"categoryID"` // Primary Key (UUID)
	Name        string        `json:"name"`
	Direction   FlowDirection `json:"direction"`
	Description string        `json:"description"` // Nullable user description
	ColorHex    string        `json:"colorHex"`    // Optional display color, e.g. "#16A34A"
	AuditFields
}
