package assistant

// Topic is one canned answer with the keywords that select it
type Topic struct {
	Name       string
	Keywords   []string
	Response   string
	Sources    []string
	Confidence float64
}

// defaultTopics are matched in order, so more specific keywords come first
func defaultTopics() []Topic {
	return []Topic{
		{
			Name:     "NPS",
			Keywords: []string{"80ccd", "nps", "national pension"},
			Response: `Section 80CCD(1B) allows an extra deduction of up to ₹50,000 for your own NPS contribution.

• It sits on top of the ₹1,50,000 Section 80C limit
• Tier I accounts are locked in until age 60
• At maturity 60% of the corpus can be withdrawn tax-free

Note: the 80CCD(1B) deduction is only available in the old tax regime.`,
			Sources:    []string{"Section 80CCD(1B) Guide", "Retirement Planning"},
			Confidence: 0.9,
		},
		{
			Name:     "Section 80C",
			Keywords: []string{"80c", "ppf", "elss"},
			Response: `Section 80C provides a deduction of up to ₹1,50,000 per year for specified investments:

• PPF (Public Provident Fund): 15-year lock-in, tax-free returns
• ELSS mutual funds: 3-year lock-in, market-linked returns
• EPF: deducted from salary automatically
• NSC: 5-year fixed income
• Life insurance premiums
• Home loan principal repayment

Note: this deduction is only available in the old tax regime.`,
			Sources:    []string{"Section 80C Guide", "Investment Planning"},
			Confidence: 0.9,
		},
		{
			Name:     "Section 80D",
			Keywords: []string{"80d", "health insurance", "medical insurance"},
			Response: `Section 80D allows a deduction for health insurance premiums:

• Self, spouse and children: up to ₹25,000 (₹50,000 if a senior citizen)
• Parents: an additional ₹25,000 (₹50,000 if senior citizens)
• Preventive health check-ups: up to ₹5,000 within these limits

Note: available only in the old tax regime.`,
			Sources:    []string{"Section 80D Guide", "Health Insurance"},
			Confidence: 0.9,
		},
		{
			Name:     "HRA",
			Keywords: []string{"hra", "house rent"},
			Response: `The HRA exemption is the lowest of three amounts:

1. Actual HRA received from the employer
2. 50% of basic salary in metro cities (40% elsewhere)
3. Rent paid minus 10% of basic salary

Keep rent receipts and the rental agreement. The landlord's PAN is needed when annual rent exceeds ₹1,00,000. The exemption is only available in the old tax regime.`,
			Sources:    []string{"HRA Calculation Guide", "Salary Exemptions"},
			Confidence: 0.9,
		},
		{
			Name:     "Section 24",
			Keywords: []string{"section 24", "home loan", "housing loan"},
			Response: `Section 24(b) allows a deduction of up to ₹2,00,000 per year for interest on a loan for a self-occupied house.

• Principal repayment counts separately under Section 80C
• Get an interest certificate from your lender each year

Note: the self-occupied property deduction is only available in the old tax regime.`,
			Sources:    []string{"Section 24 Guide", "Home Loan Benefits"},
			Confidence: 0.85,
		},
		{
			Name:     "New Regime",
			Keywords: []string{"new regime"},
			Response: `New tax regime slabs (AY 2024-25):

• ₹0 - ₹3,00,000: 0%
• ₹3,00,000 - ₹6,00,000: 5%
• ₹6,00,000 - ₹9,00,000: 10%
• ₹9,00,000 - ₹12,00,000: 15%
• ₹12,00,000 - ₹15,00,000: 20%
• Above ₹15,00,000: 30%

Only the ₹50,000 standard deduction is allowed. There is no 80C, 80D, HRA or home loan interest benefit. It suits taxpayers with few tax-saving investments.`,
			Sources:    []string{"New Tax Regime Guide", "Tax Planning"},
			Confidence: 0.9,
		},
		{
			Name:     "Old Regime",
			Keywords: []string{"old regime"},
			Response: `Old tax regime slabs (AY 2024-25):

• ₹0 - ₹2,50,000: 0%
• ₹2,50,000 - ₹5,00,000: 5%
• ₹5,00,000 - ₹10,00,000: 20%
• Above ₹10,00,000: 30%

Major deductions: Section 80C (₹1,50,000), Section 80D (₹25,000), home loan interest (₹2,00,000), NPS under 80CCD(1B) (₹50,000) and the ₹50,000 standard deduction. It suits taxpayers with substantial investments and home loans.`,
			Sources:    []string{"Old Tax Regime Guide", "Deduction Planning"},
			Confidence: 0.9,
		},
		{
			Name:     "Tax Regimes",
			Keywords: []string{"regime"},
			Response: `There are two tax regimes for individuals:

• Old regime: higher rates with deductions under 80C, 80D, 24, HRA and more
• New regime: lower rates with only the standard deduction

Salaried taxpayers can choose each year. Compare both with your own figures; the old regime usually wins when deductions are large.`,
			Sources:    []string{"Tax Regimes Overview"},
			Confidence: 0.85,
		},
		{
			Name:     "TDS",
			Keywords: []string{"tds", "advance tax", "tax deducted"},
			Response: `TDS is tax your employer or bank deducts before paying you. It appears in Form 16 and Form 26AS.

• If total TDS and advance tax exceed your liability, you get a refund
• If they fall short, the balance is payable with your return
• Advance tax is due in instalments when the balance exceeds ₹10,000`,
			Sources:    []string{"TDS Guide", "Advance Tax"},
			Confidence: 0.85,
		},
		{
			Name:     "ITR Filing",
			Keywords: []string{"itr", "document", "filing", "form 16"},
			Response: `Documents for ITR filing:

• Form 16 and salary slips from your employer
• Investment proofs: PPF, ELSS, insurance premium receipts
• Bank interest certificates and statements
• Home loan interest certificate
• Rent receipts and rental agreement for HRA
• Capital gains statements

Check Form 26AS and the AIS before filing.`,
			Sources:    []string{"ITR Filing Guide", "Document Requirements"},
			Confidence: 0.8,
		},
	}
}

var fallbackTopic = Topic{
	Name: "General",
	Response: `I can help you with:

• Tax regime comparison (old vs new)
• Deduction optimization (80C, 80D, HRA, NPS)
• ITR filing requirements
• TDS and advance tax

Try asking "Should I choose old or new tax regime?" or "How much can I save under Section 80C?"`,
	Sources:    []string{"General Tax Guide"},
	Confidence: 0.7,
}
