// Package category labels transactions by keyword matching on their
// description.
package category

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/example/statement-analyzer/pkg/transaction"
)

// DefaultCategory is used when no rule matches
const DefaultCategory = "Others"

// Rule assigns Category to descriptions containing any of Keywords
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules is the built-in rule set. Earlier rules take precedence.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Cash Withdrawal", Keywords: []string{"atm", "cash", "withdrawal"}},
		{Category: "Mobile Recharge", Keywords: []string{"ncell", "ntc", "recharge", "topup"}},
		{Category: "Shopping", Keywords: []string{"shopping", "daraz", "store", "mall", "pos"}},
		{Category: "Utilities", Keywords: []string{"utility", "electricity", "water", "bill", "nepal electricity"}},
		{Category: "Food & Dining", Keywords: []string{"food", "restaurant", "cafe", "hotel"}},
		{Category: "Loan Payment", Keywords: []string{"loan", "emi", "interest"}},
		{Category: "Insurance", Keywords: []string{"insurance", "premium"}},
		{Category: "Transfers", Keywords: []string{"transfer", "fund", "send", "receive", "trf", "mos:", "fps:", "ibft"}},
	}
}

// Categorizer matches every keyword of every rule in a single pass over the
// description. It is immutable after construction.
type Categorizer struct {
	matcher  *ahocorasick.Matcher
	ruleOf   []int // keyword index -> rule index
	rules    []Rule
	fallback string
}

// New builds a Categorizer. An empty fallback means DefaultCategory.
func New(rules []Rule, fallback string) *Categorizer {
	if fallback == "" {
		fallback = DefaultCategory
	}
	c := &Categorizer{rules: rules, fallback: fallback}

	var keywords []string
	for i, r := range rules {
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
			c.ruleOf = append(c.ruleOf, i)
		}
	}
	if len(keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(keywords)
	}
	return c
}

// Categorize returns the category of the first rule with a keyword contained
// in description, case-insensitively
func (c *Categorizer) Categorize(description string) string {
	if c.matcher == nil {
		return c.fallback
	}

	best := -1
	for _, idx := range c.matcher.MatchThreadSafe([]byte(strings.ToLower(description))) {
		if r := c.ruleOf[idx]; best == -1 || r < best {
			best = r
		}
	}
	if best == -1 {
		return c.fallback
	}
	return c.rules[best].Category
}

// Apply sets Category on every transaction in tl
func (c *Categorizer) Apply(tl *transaction.TransactionList) {
	for i := range tl.Transactions {
		tl.Transactions[i].Category = c.Categorize(tl.Transactions[i].Description)
	}
}
