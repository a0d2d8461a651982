package domain

import "strings"

// Language is an uppercase translation-provider language code, e.g. "EN" or "EN-US".
type Language string

// Languages supported by the translation provider.
const (
	LangAR     Language = "AR"
	LangBG     Language = "BG"
	LangCS     Language = "CS"
	LangDA     Language = "DA"
	LangDE     Language = "DE"
	LangEL     Language = "EL"
	LangEN     Language = "EN"
	LangENGB   Language = "EN-GB"
	LangENUS   Language = "EN-US"
	LangES     Language = "ES"
	LangET     Language = "ET"
	LangFI     Language = "FI"
	LangFR     Language = "FR"
	LangHU     Language = "HU"
	LangID     Language = "ID"
	LangIT     Language = "IT"
	LangJA     Language = "JA"
	LangKO     Language = "KO"
	LangLT     Language = "LT"
	LangLV     Language = "LV"
	LangNB     Language = "NB"
	LangNL     Language = "NL"
	LangPL     Language = "PL"
	LangPT     Language = "PT"
	LangPTBR   Language = "PT-BR"
	LangPTPT   Language = "PT-PT"
	LangRO     Language = "RO"
	LangRU     Language = "RU"
	LangSK     Language = "SK"
	LangSL     Language = "SL"
	LangSV     Language = "SV"
	LangTR     Language = "TR"
	LangUK     Language = "UK"
	LangZH     Language = "ZH"
	LangZHHANS Language = "ZH-HANS"
	LangZHHANT Language = "ZH-HANT"
)

var knownLanguages = map[Language]struct{}{
	LangAR: {}, LangBG: {}, LangCS: {}, LangDA: {}, LangDE: {}, LangEL: {},
	LangEN: {}, LangENGB: {}, LangENUS: {}, LangES: {}, LangET: {}, LangFI: {},
	LangFR: {}, LangHU: {}, LangID: {}, LangIT: {}, LangJA: {}, LangKO: {},
	LangLT: {}, LangLV: {}, LangNB: {}, LangNL: {}, LangPL: {}, LangPT: {},
	LangPTBR: {}, LangPTPT: {}, LangRO: {}, LangRU: {}, LangSK: {}, LangSL: {},
	LangSV: {}, LangTR: {}, LangUK: {}, LangZH: {}, LangZHHANS: {}, LangZHHANT: {},
}

// IsKnownLanguage reports whether code (any case) is in the provider catalog.
func IsKnownLanguage(code string) bool {
	_, ok := knownLanguages[Language(strings.ToUpper(code))]
	return ok
}

// String implements fmt.Stringer.
func (l Language) String() string { return string(l) }

// Translation is the provider's answer to a translate request.
type Translation struct {
	Text           string
	DetectedSource Language
}

// Usage is the provider's character usage for the current billing period.
type Usage struct {
	CharacterCount int64
	CharacterLimit int64
}
