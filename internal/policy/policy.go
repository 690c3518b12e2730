// Package policy evaluates advisory review rules over completed payments.
// Decisions annotate receipts and reports; they never change the outcome of
// a charge.
package policy

import (
	"fmt"
	"sort"

	"github.com/Knetic/govaluate"

	"github.com/yourorg/payment-adapter/internal/gateway"
)

// ReviewRule pairs a govaluate expression with the metadata applied when it
// matches. Expressions see three parameters: amount and latencyMs (numbers)
// and token (a string).
type ReviewRule struct {
	ID         string
	Expression string
	Priority   int    // lower evaluates first
	Reason     string // human-readable reason attached to the decision
}

// ReviewDecision is the outcome of evaluating the rule set for one receipt.
// The zero value means no rule matched and no review is needed.
type ReviewDecision struct {
	FlagForReview bool
	RuleID        string
	Reason        string
}

type compiledRule struct {
	rule ReviewRule
	expr *govaluate.EvaluableExpression
}

// ReviewPolicyEnforcer holds the compiled rule set. Rules compile once at
// construction and evaluate in priority order; the first match wins.
type ReviewPolicyEnforcer struct {
	rules []compiledRule
}

// NewReviewPolicyEnforcer compiles the given rules. A rule with an empty or
// malformed expression fails construction; an empty or nil rule set is valid
// and flags nothing.
func NewReviewPolicyEnforcer(rules []ReviewRule) (*ReviewPolicyEnforcer, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.Expression == "" {
			return nil, fmt.Errorf("review rule ID '%s' has an empty expression", r.ID)
		}
		expr, err := govaluate.NewEvaluableExpression(r.Expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule ID '%s': %w", r.ID, err)
		}
		compiled = append(compiled, compiledRule{rule: r, expr: expr})
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].rule.Priority < compiled[j].rule.Priority
	})
	return &ReviewPolicyEnforcer{rules: compiled}, nil
}

// Evaluate runs the rule set over a receipt. The first rule whose expression
// evaluates to true produces a flagged decision; when none match, the zero
// decision is returned.
func (e *ReviewPolicyEnforcer) Evaluate(receipt gateway.Receipt) (ReviewDecision, error) {
	// govaluate compares numbers as float64 only; ints would not coerce.
	params := map[string]interface{}{
		"amount":    receipt.Amount,
		"token":     receipt.Token,
		"latencyMs": float64(receipt.LatencyMs),
	}

	for _, cr := range e.rules {
		result, err := cr.expr.Evaluate(params)
		if err != nil {
			return ReviewDecision{}, fmt.Errorf("failed to evaluate rule ID '%s': %w", cr.rule.ID, err)
		}
		matched, ok := result.(bool)
		if !ok {
			return ReviewDecision{}, fmt.Errorf("rule ID '%s' did not evaluate to a boolean", cr.rule.ID)
		}
		if matched {
			return ReviewDecision{
				FlagForReview: true,
				RuleID:        cr.rule.ID,
				Reason:        cr.rule.Reason,
			}, nil
		}
	}
	return ReviewDecision{}, nil
}
