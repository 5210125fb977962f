// Package category holds the static catalog of transaction categories.
// The catalog is process-wide, immutable display metadata; stored records
// reference it by value string only, so lookups always have a fallback.
package category

// Descriptor is display metadata for one category identifier.
type Descriptor struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var expenseCategories = []Descriptor{
	{Value: "food", Label: "Food & Dining", Color: "#ef4444", Icon: "🍽️"},
	{Value: "transport", Label: "Transportation", Color: "#3b82f6", Icon: "🚗"},
	{Value: "shopping", Label: "Shopping", Color: "#8b5cf6", Icon: "🛍️"},
	{Value: "entertainment", Label: "Entertainment", Color: "#f59e0b", Icon: "🎬"},
	{Value: "health", Label: "Health & Fitness", Color: "#10b981", Icon: "🏥"},
	{Value: "utilities", Label: "Bills & Utilities", Color: "#6b7280", Icon: "⚡"},
	{Value: "education", Label: "Education", Color: "#06b6d4", Icon: "📚"},
	{Value: "other", Label: "Other", Color: "#64748b", Icon: "📦"},
}

var incomeCategories = []Descriptor{
	{Value: "salary", Label: "Salary", Color: "#22c55e", Icon: "💼"},
	{Value: "freelance", Label: "Freelance", Color: "#3b82f6", Icon: "💻"},
	{Value: "investment", Label: "Investment", Color: "#8b5cf6", Icon: "📈"},
	{Value: "other", Label: "Other Income", Color: "#64748b", Icon: "💰"},
}

// Expense returns the expense catalog. Callers must not mutate it.
func Expense() []Descriptor { return expenseCategories }

// Income returns the income catalog. Callers must not mutate it.
func Income() []Descriptor { return incomeCategories }

// ExpenseValues returns the expense category identifiers in catalog order.
func ExpenseValues() []string {
	out := make([]string, len(expenseCategories))
	for i, d := range expenseCategories {
		out[i] = d.Value
	}
	return out
}

// All returns the union of both catalogs. On identifier collision the
// income entry wins, so "other" resolves to "Other Income".
func All() []Descriptor {
	seen := make(map[string]int, len(expenseCategories))
	out := make([]Descriptor, 0, len(expenseCategories)+len(incomeCategories))
	for _, d := range expenseCategories {
		seen[d.Value] = len(out)
		out = append(out, d)
	}
	for _, d := range incomeCategories {
		if i, ok := seen[d.Value]; ok {
			out[i] = d
			continue
		}
		out = append(out, d)
	}
	return out
}

// Lookup finds a descriptor by identifier, expense catalog first.
func Lookup(value string) (Descriptor, bool) {
	for _, d := range expenseCategories {
		if d.Value == value {
			return d, true
		}
	}
	for _, d := range incomeCategories {
		if d.Value == value {
			return d, true
		}
	}
	return Descriptor{}, false
}

// LookupOrDefault resolves a descriptor with a guaranteed fallback:
// unknown or legacy identifiers render with the raw value as label and a
// generic icon/color, never an error.
func LookupOrDefault(value string) Descriptor {
	if d, ok := Lookup(value); ok {
		return d
	}
	return Descriptor{Value: value, Label: value, Color: "#64748b", Icon: "📦"}
}
