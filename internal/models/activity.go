package models

// ActivityState mirrors the wire values used by the backend.
type ActivityState string

const (
	StateDraft      ActivityState = "bozza"
	StateToConfirm  ActivityState = "da_confermare"
	StateConfirmed  ActivityState = "confermato"
	StatePostponed  ActivityState = "rimandata"
	StateInProgress ActivityState = "in_corso"
	StateCancelled  ActivityState = "annullato"
	StateCompleted  ActivityState = "completato"
)

type PaymentState string

const (
	PaymentDue      PaymentState = "da_effettuare"
	PaymentToVerify PaymentState = "da_verificare"
	PaymentSettled  PaymentState = "confermato"
)

type ActivityType struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type QualificationType struct {
	Name string `json:"name"`
}

// Requirement is a demand for Quantity people holding a qualification.
// AssignedCount is derived server-side.
type Requirement struct {
	ID                int64             `json:"id"`
	QualificationType QualificationType `json:"qualification_type"`
	Quantity          int               `json:"quantity"`
	AssignedCount     int               `json:"assigned_count"`
}

type Assignment struct {
	ID            int64   `json:"id"`
	RequirementID int64   `json:"requirement_id"`
	UserName      string  `json:"user_name"`
	RoleLabel     string  `json:"role_label"`
	Hours         float64 `json:"hours"`
}

// Activity as returned by /api/attivita and /api/attivita/{id}.
// CoveragePercentage is computed server-side; the client never recomputes it.
type Activity struct {
	ID                 int64         `json:"id"`
	Title              string        `json:"title"`
	ShortDescription   string        `json:"short_description"`
	Date               string        `json:"date"`       // YYYY-MM-DD
	StartTime          string        `json:"start_time"` // HH:MM
	EndTime            string        `json:"end_time"`
	ActivityType       *ActivityType `json:"activity_type"`
	State              ActivityState `json:"state"`
	CoveragePercentage float64       `json:"coverage_percentage"`
	TotalAssigned      int           `json:"total_assigned"`
	TotalRequired      int           `json:"total_required"`

	ParticipantsPlan   int    `json:"participants_plan"`
	ParticipantsActual int    `json:"participants_actual"`
	ParticipantsNotes  string `json:"participants_notes"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ContactName   string `json:"contact_name"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email"`

	PaymentAmount    *float64     `json:"payment_amount"`
	PaymentMethod    string       `json:"payment_method"`
	PaymentState     PaymentState `json:"payment_state"`
	PaymentDueDate   string       `json:"payment_due_date"`
	PaymentReference string       `json:"payment_reference"`
	PaymentNotes     string       `json:"payment_notes"`

	BillingName     string `json:"billing_name"`
	BillingVatOrCF  string `json:"billing_vat_or_cf"`
	BillingSdiOrPec string `json:"billing_sdi_or_pec"`
	BillingAddress  string `json:"billing_address"`

	UpdatedAt string `json:"updated_at"`

	Requirements []Requirement `json:"requirements"`
	Assignments  []Assignment  `json:"assignments"`
}

type Instructor struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Qualifications string `json:"qualifications"`
}

func (i Instructor) DisplayName() string {
	return i.FirstName + " " + i.LastName
}
