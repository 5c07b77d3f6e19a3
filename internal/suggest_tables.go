package internal

// Routine groups used to keep suggestions within one domain
const (
	GroupSkincare  = "skincare"
	GroupHaircare  = "haircare"
	GroupMakeup    = "makeup"
	GroupFragrance = "fragrance"
	GroupMens      = "mens"
	GroupOther     = "other"
)

// KeywordCategory maps a routine keyword to the catalogue categories it implies
type KeywordCategory struct {
	Keyword    string
	Categories []string
}

// KeywordCategories is scanned in order; the order fixes suggestion order
var KeywordCategories = []KeywordCategory{
	// skincare
	{"cleanser", []string{"cleanser"}},
	{"face wash", []string{"cleanser"}},
	{"micellar", []string{"cleanser"}},
	{"moisturizer", []string{"moisturizer"}},
	{"moisturize", []string{"moisturizer"}},
	{"lotion", []string{"moisturizer"}},
	{"cream", []string{"moisturizer"}},
	{"serum", []string{"skincare"}},
	{"vitamin c", []string{"skincare"}},
	{"retinol", []string{"skincare"}},
	{"niacinamide", []string{"skincare"}},
	{"sunscreen", []string{"suncare", "skincare"}},
	{"spf", []string{"suncare", "skincare"}},
	{"toner", []string{"skincare"}},
	{"exfoliant", []string{"skincare"}},
	{"scrub", []string{"skincare"}},
	{"peel", []string{"skincare"}},
	{"mask", []string{"skincare"}},
	{"eye", []string{"skincare"}},
	{"eye cream", []string{"skincare"}},
	{"treatment", []string{"skincare", "moisturizer"}},

	// haircare
	{"shampoo", []string{"haircare"}},
	{"conditioner", []string{"haircare"}},
	{"hair", []string{"haircare", "hair styling", "hair color"}},
	{"scalp", []string{"haircare"}},
	{"hairspray", []string{"hair styling"}},
	{"styling", []string{"hair styling"}},
	{"hair mask", []string{"haircare"}},
	{"hair color", []string{"hair color"}},

	// makeup
	{"mascara", []string{"makeup"}},
	{"foundation", []string{"makeup"}},
	{"lipstick", []string{"makeup"}},
	{"eyeshadow", []string{"makeup"}},
	{"makeup", []string{"makeup"}},

	{"fragrance", []string{"fragrance"}},
	{"perfume", []string{"fragrance"}},
	{"shave", []string{"men's grooming", "skincare"}},
	{"after shave", []string{"men's grooming"}},
}

// SkincareCategories are the exact category names classified as skincare
var SkincareCategories = []string{
	"cleanser",
	"moisturizer",
	"skincare",
	"suncare",
	"toner",
	"exfoliant",
	"mask",
	"serum",
	"treatment",
	"eye",
}
