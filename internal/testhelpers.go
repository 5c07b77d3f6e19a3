package internal

// CreateTestTranscript creates a transcript with a short routine exchange
func CreateTestTranscript(id string) *Transcript {
	messages := []ConversationMessage{
		{Role: RoleUser, Content: "Requested routine using 2 selected product(s)."},
		{Role: RoleAssistant, Content: "1. **Cleanser** (AM/PM): massage onto damp skin.\n2. Moisturizer (AM): apply after cleansing."},
	}
	t := CreateTestTranscriptWithMessages(id, messages)
	t.Selected = []SelectedProduct{
		{ID: "1", Name: "Foaming Cleanser", Brand: "CeraVe", Category: "cleanser"},
		{ID: "2", Name: "Daily Lotion", Brand: "CeraVe", Category: "moisturizer"},
	}
	t.Metadata.SelectedCount = len(t.Selected)
	return t
}

// CreateTestTranscriptWithMessages creates a transcript with custom messages and no selection
func CreateTestTranscriptWithMessages(id string, messages []ConversationMessage) *Transcript {
	return &Transcript{
		ID:       id,
		Messages: messages,
		Selected: []SelectedProduct{},
		Metadata: TranscriptMetadata{
			CatalogSource: "products.json",
			ExportedAt:    "2025-01-01T00:00:00Z",
			MessageCount:  len(messages),
		},
	}
}

// CreateTestProducts returns a small mixed-domain catalogue
func CreateTestProducts() []Product {
	return []Product{
		{ID: "1", Name: "Foaming Cleanser", Brand: "CeraVe", Category: "cleanser", Description: "Gentle foaming cleanser for normal to oily skin"},
		{ID: "2", Name: "Daily Lotion", Brand: "CeraVe", Category: "moisturizer", Description: "Lightweight moisturizer with ceramides"},
		{ID: "3", Name: "Lash Paradise", Brand: "L'Oréal Paris", Category: "makeup", Description: "Volumizing mascara"},
		{ID: "4", Name: "Elvive Shampoo", Brand: "L'Oréal Paris", Category: "haircare", Description: "Repairing shampoo for damaged hair"},
		{ID: "5", Name: "Anthelios SPF 50", Brand: "La Roche-Posay", Category: "suncare", Description: "Broad spectrum sunscreen"},
		{ID: "6", Name: "Revitalift Serum", Brand: "L'Oréal Paris", Category: "skincare", Description: "Vitamin C serum"},
		{ID: "7", Name: "Elnett Hairspray", Brand: "L'Oréal Paris", Category: "hair styling", Description: "Flexible hold hairspray"},
		{ID: "8", Name: "Eau de Parfum", Brand: "YSL", Category: "fragrance", Description: "Floral perfume"},
	}
}
