package model

// Categories is the closed set of labels an expense may carry.
var Categories = []string{
	"🍔 Food & Dining",
	"🏠 Housing",
	"🚗 Transportation",
	"🛍️ Shopping",
	"💊 Healthcare",
	"🎮 Entertainment",
	"📱 Utilities",
	"📚 Education",
	"✈️ Travel",
	"🎁 Gifts",
	"💰 Income",
	"📦 Other",
}

// DefaultCategory is used when no category was chosen.
const DefaultCategory = "📦 Other"

// IsCategory reports whether s is a member of the category set.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
