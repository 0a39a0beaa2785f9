package config

import "github.com/theirongolddev/dompet/internal/model"

// expenseCategories and incomeCategories are ordered as they appear in forms;
// the first entry of each is the form default.
var expenseCategories = []model.Category{
	{ID: "food", Name: "Food & Drinks", Color: "#ef4444", Kind: model.Expense},
	{ID: "transport", Name: "Transport", Color: "#f97316", Kind: model.Expense},
	{ID: "shopping", Name: "Shopping", Color: "#eab308", Kind: model.Expense},
	{ID: "housing", Name: "Housing", Color: "#84cc16", Kind: model.Expense},
	{ID: "utilities", Name: "Bills & Utilities", Color: "#06b6d4", Kind: model.Expense},
	{ID: "health", Name: "Health", Color: "#ec4899", Kind: model.Expense},
	{ID: "entertainment", Name: "Entertainment", Color: "#8b5cf6", Kind: model.Expense},
	{ID: "other", Name: "Other", Color: "#64748b", Kind: model.Expense},
}

var incomeCategories = []model.Category{
	{ID: "salary", Name: "Salary", Color: "#22c55e", Kind: model.Income},
	{ID: "bonus", Name: "Bonus", Color: "#10b981", Kind: model.Income},
	{ID: "investment", Name: "Investment", Color: "#3b82f6", Kind: model.Income},
	{ID: "other_income", Name: "Other", Color: "#64748b", Kind: model.Income},
}

// NotePalette holds the background/text pairs offered by the note editor.
// The first entry is the default.
var NotePalette = []model.NoteColor{
	{Name: "white", Background: "#ffffff", Text: "#1e293b"},
	{Name: "yellow", Background: "#fef08a", Text: "#854d0e"},
	{Name: "green", Background: "#bbf7d0", Text: "#14532d"},
	{Name: "blue", Background: "#bfdbfe", Text: "#1e3a8a"},
	{Name: "pink", Background: "#fbcfe8", Text: "#831843"},
	{Name: "gray", Background: "#e2e8f0", Text: "#0f172a"},
	{Name: "dark", Background: "#1e293b", Text: "#f8fafc"},
}

// fallbackCategoryColor is used for category ids missing from the registry.
const fallbackCategoryColor = "#cbd5e1"

// Categories returns the categories for kind, in display order.
func Categories(kind model.Kind) []model.Category {
	src := expenseCategories
	if kind == model.Income {
		src = incomeCategories
	}
	out := make([]model.Category, len(src))
	copy(out, src)
	return out
}

// DefaultCategory returns the first category of kind.
func DefaultCategory(kind model.Kind) model.Category {
	if kind == model.Income {
		return incomeCategories[0]
	}
	return expenseCategories[0]
}

// LookupCategory finds id in the list for kind.
func LookupCategory(kind model.Kind, id string) (model.Category, bool) {
	src := expenseCategories
	if kind == model.Income {
		src = incomeCategories
	}
	for _, c := range src {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// ValidCategory reports whether id belongs to the list for kind.
func ValidCategory(kind model.Kind, id string) bool {
	_, ok := LookupCategory(kind, id)
	return ok
}

// CategoryOrRaw returns the registered category, or a placeholder that keeps the
// raw id as its name when the id is unknown.
func CategoryOrRaw(kind model.Kind, id string) model.Category {
	if c, ok := LookupCategory(kind, id); ok {
		return c
	}
	return model.Category{ID: id, Name: id, Color: fallbackCategoryColor, Kind: kind}
}

// AllCategoryIDs returns every registered id, expense first. Used to constrain
// automatic categorisation.
func AllCategoryIDs() []string {
	ids := make([]string, 0, len(expenseCategories)+len(incomeCategories))
	for _, c := range expenseCategories {
		ids = append(ids, c.ID)
	}
	for _, c := range incomeCategories {
		ids = append(ids, c.ID)
	}
	return ids
}

// KindOfCategory returns the kind a registered id belongs to.
func KindOfCategory(id string) (model.Kind, bool) {
	if ValidCategory(model.Expense, id) {
		return model.Expense, true
	}
	if ValidCategory(model.Income, id) {
		return model.Income, true
	}
	return model.Expense, false
}

// LookupNoteColor finds a palette entry by name.
func LookupNoteColor(name string) (model.NoteColor, bool) {
	for _, c := range NotePalette {
		if c.Name == name {
			return c, true
		}
	}
	return model.NoteColor{}, false
}
