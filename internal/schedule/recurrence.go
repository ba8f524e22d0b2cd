package schedule

import (
	"fmt"

	"github.com/MKhiriev/go-family-finance/models"
)

// DueOccurrences projects a recurring template onto every month between its
// origin payment date and today, returning one draft per month whose
// occurrence date has been reached.
//
// There is no persisted "next due" cursor: the whole range is recomputed on
// each call and the store's (owner, template, period) key drops the months
// that already exist.
//
// Each draft copies the template, is stamped with TemplateID and Period, gets
// a " (MM/YYYY)" suffix and is registered today. Card templates have the
// occurrence date moved onto its statement date.
func DueOccurrences(template models.Transaction, today models.Date, billingDay int) []models.Transaction {
	origin := template.PaymentDate
	if origin.IsZero() {
		return nil
	}

	elapsed := MonthIndex(today) - MonthIndex(origin)
	if elapsed <= 0 {
		return nil
	}

	fixedDay := template.EffectiveFixedDay()
	templateID := template.ID

	occurrences := make([]models.Transaction, 0, elapsed)
	for k := 1; k <= elapsed; k++ {
		candidate := AddMonthsClamped(origin, k, fixedDay)
		if candidate.After(today) || !candidate.After(origin) {
			continue
		}

		period := candidate.Period()
		day := fixedDay

		o := template
		o.ID = 0
		o.Description = fmt.Sprintf("%s (%02d/%04d)", template.Description, int(candidate.Month()), candidate.Year())
		o.RegisteredOn = today
		o.PaymentDate = candidate
		if template.OnCard {
			o.PaymentDate = ShiftToBillingCycle(candidate, billingDay)
		}
		o.Recurring = true
		o.FixedDay = &day
		o.Status = models.StatusActive
		o.TemplateID = &templateID
		o.Period = &period

		occurrences = append(occurrences, o)
	}

	return occurrences
}
