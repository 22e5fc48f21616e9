package dashboard

import (
	"fmt"
	"time"

	"github.com/asdclub/club-console/internal/itdate"
	"github.com/asdclub/club-console/internal/models"
)

// RequirementView is one row of the coverage tab: filled/required ratio,
// coverage-colored badge and the assignments fulfilling it.
type RequirementView struct {
	ID          int64
	Title       string
	Description string
	Ratio       string
	BadgeClass  string
	Assignments []AssignmentView
}

type AssignmentView struct {
	ID        int64
	UserName  string
	RoleLabel string
	Hours     string
}

// CoverageSummary is the overall badge at the top of the tab.
type CoverageSummary struct {
	Text       string
	BadgeClass string
}

func NewCoverageSummary(a models.Activity) CoverageSummary {
	return CoverageSummary{
		Text:       CoverageBadgeText(a.TotalAssigned, a.TotalRequired, a.CoveragePercentage),
		BadgeClass: CoverageClass(a.CoveragePercentage),
	}
}

func NewRequirementViews(a models.Activity) []RequirementView {
	out := make([]RequirementView, 0, len(a.Requirements))
	for _, r := range a.Requirements {
		pct := 0.0
		if r.Quantity > 0 {
			pct = float64(r.AssignedCount) / float64(r.Quantity) * 100
		}
		view := RequirementView{
			ID:          r.ID,
			Title:       r.QualificationType.Name,
			Description: fmt.Sprintf("Quantità richiesta: %d", r.Quantity),
			Ratio:       fmt.Sprintf("%d/%d", r.AssignedCount, r.Quantity),
			BadgeClass:  CoverageClass(pct),
		}
		for _, as := range a.Assignments {
			if as.RequirementID != r.ID {
				continue
			}
			av := AssignmentView{
				ID:       as.ID,
				UserName: as.UserName,
				Hours:    fmt.Sprintf("%sh", trimFloat(as.Hours)),
			}
			if as.RoleLabel != "" {
				av.RoleLabel = "(" + as.RoleLabel + ")"
			}
			view.Assignments = append(view.Assignments, av)
		}
		out = append(out, view)
	}
	return out
}

func trimFloat(f float64) string {
	return formatPercent(f)
}

// PaymentView is the read-only payment sub-tab, all fields formatted for
// display.
type PaymentView struct {
	Amount      string
	Method      string
	StateLabel  string
	StateClass  string
	DueDate     string
	Reference   string
	Notes       string
	BillingName string
	BillingVat  string
	BillingSdi  string
	BillingAddr string
	LastUpdate  string
}

func NewPaymentView(a models.Activity) PaymentView {
	v := PaymentView{
		Amount:      "€ 0.00",
		Method:      PaymentMethodLabel(a.PaymentMethod),
		StateLabel:  PaymentStateLabel(a.PaymentState),
		StateClass:  PaymentStateClass(a.PaymentState),
		DueDate:     orNA(a.PaymentDueDate),
		Reference:   orNA(a.PaymentReference),
		Notes:       a.PaymentNotes,
		BillingName: orNA(a.BillingName),
		BillingVat:  orNA(a.BillingVatOrCF),
		BillingSdi:  orNA(a.BillingSdiOrPec),
		BillingAddr: orNA(a.BillingAddress),
		LastUpdate:  "N/A",
	}
	if a.PaymentAmount != nil {
		v.Amount = fmt.Sprintf("€ %.2f", *a.PaymentAmount)
	}
	if a.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, a.UpdatedAt); err == nil {
			v.LastUpdate = itdate.FormatDateTime(t)
		} else {
			v.LastUpdate = a.UpdatedAt
		}
	}
	return v
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
