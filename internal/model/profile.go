package model

// TranslationProfile is a named bundle of style rules that biases translation
// output. Built-in profiles are immutable and cannot be deleted.
type TranslationProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
	IsDefault   bool     `json:"isDefault"`
	CanDelete   bool     `json:"canDelete"`
}
