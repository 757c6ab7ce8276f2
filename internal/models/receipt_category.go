package models

// Suggested receipt categories
const (
	CategoryFood          = "食費"
	CategoryTransport     = "交通費"
	CategoryDailyGoods    = "日用品"
	CategoryMedical       = "医療費"
	CategoryCommunication = "通信費"
	CategoryUtilities     = "光熱費"
	CategorySocial        = "交際費"
	CategoryClothing      = "衣服・美容"
	CategoryEducation     = "教育・書籍"
	CategoryHobby         = "娯楽・趣味"
	CategoryHousing       = "住居費"
	CategoryInsurance     = "保険"
	CategoryTax           = "税金"
	CategoryMisc          = "雑費"
	CategoryOther         = "その他"
)

// CategoryUncategorized labels receipts without a category in summaries
const CategoryUncategorized = "未分類"

// SuggestedCategories returns the categories offered to users, in display order
func SuggestedCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryDailyGoods,
		CategoryMedical,
		CategoryCommunication,
		CategoryUtilities,
		CategorySocial,
		CategoryClothing,
		CategoryEducation,
		CategoryHobby,
		CategoryHousing,
		CategoryInsurance,
		CategoryTax,
		CategoryMisc,
		CategoryOther,
	}
}

// IsSuggestedCategory reports whether category is one of the suggested ones.
// Free-form categories are still accepted everywhere.
func IsSuggestedCategory(category string) bool {
	for _, suggested := range SuggestedCategories() {
		if category == suggested {
			return true
		}
	}
	return false
}
