package reporting

import (
	"time"
)

// SummaryReport summarizes payment activity over a collection of entries.
type SummaryReport struct {
	TotalPayments      int            `json:"totalPayments"`
	SuccessfulPayments int            `json:"successfulPayments"`
	FailedPayments     int            `json:"failedPayments"`
	FlaggedForReview   int            `json:"flaggedForReview"`
	TotalAmountCharged float64        `json:"totalAmountCharged"` // successful payments only
	ErrorBreakdown     map[string]int `json:"errorBreakdown"`     // count of each error message for failures
	FirstPaymentAt     time.Time      `json:"firstPaymentAt"`
	LastPaymentAt      time.Time      `json:"lastPaymentAt"`
	WindowDuration     time.Duration  `json:"windowDuration"`
}

// Summarizer generates summary reports from recorded entries.
type Summarizer struct{}

// NewSummarizer creates a new Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize analyzes a slice of entries and produces a SummaryReport. An
// empty or nil slice yields a zero report with initialized maps.
func (s *Summarizer) Summarize(entries []Entry) (*SummaryReport, error) {
	report := &SummaryReport{
		ErrorBreakdown: make(map[string]int),
	}
	if len(entries) == 0 {
		return report, nil
	}

	report.FirstPaymentAt = entries[0].Timestamp
	report.LastPaymentAt = entries[0].Timestamp

	for _, e := range entries {
		report.TotalPayments++

		if e.Timestamp.Before(report.FirstPaymentAt) {
			report.FirstPaymentAt = e.Timestamp
		}
		if e.Timestamp.After(report.LastPaymentAt) {
			report.LastPaymentAt = e.Timestamp
		}
		if e.FlaggedForReview {
			report.FlaggedForReview++
		}

		switch e.Status {
		case StatusSuccess:
			report.SuccessfulPayments++
			report.TotalAmountCharged += e.Amount
		case StatusFailure:
			report.FailedPayments++
			if e.ErrorMessage != "" {
				report.ErrorBreakdown[e.ErrorMessage]++
			}
		}
	}

	report.WindowDuration = report.LastPaymentAt.Sub(report.FirstPaymentAt)
	return report, nil
}
