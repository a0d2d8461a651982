package deepl

type translateResponse struct {
	Translations []apiTranslation `json:"translations"`
}

type apiTranslation struct {
	DetectedSourceLanguage string `json:"detected_source_language"`
	Text                   string `json:"text"`
}

type usageResponse struct {
	CharacterCount int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

type errorResponse struct {
	Message string `json:"message"`
}
