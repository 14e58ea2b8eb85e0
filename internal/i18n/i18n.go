// Package i18n holds the Ukrainian/English copy tables for every user-facing
// surface. Layout never depends on the active language; only labels do.
package i18n

// Lang is one of the two supported language codes.
type Lang string

const (
	UA Lang = "ua"
	EN Lang = "en"
)

// Parse maps a raw code to a supported language, defaulting to Ukrainian.
func Parse(code string) Lang {
	if code == string(EN) {
		return EN
	}
	return UA
}

// Other returns the opposite language, used for dataset warmup and toggles.
func (l Lang) Other() Lang {
	if l == EN {
		return UA
	}
	return EN
}

// Text is a single bilingual string.
type Text struct {
	UA string
	EN string
}

// For resolves the text for a language.
func (t Text) For(lang Lang) string {
	if lang == EN {
		return t.EN
	}
	return t.UA
}

var (
	HeroTitle = Text{
		UA: "Ваш компас у світі ШІ сервісів",
		EN: "Your compass through the AI service landscape",
	}
	HeroSubtitle = Text{
		UA: "Відкривайте перевірені платформи для бізнесу, творчості й автоматизації.",
		EN: "Discover trusted platforms for business, creativity, and automation.",
	}
	HeroBadge = Text{UA: "AI Compass", EN: "AI Compass"}
	Banner    = Text{
		UA: "Бібліотека перевірених AI сервісів для маркетингу, автоматизації та аналітики.",
		EN: "Curated AI tools for marketing, automation, and analytics teams.",
	}
	MapHeading = Text{
		UA: "Мапа категорій AI‑сервісів",
		EN: "Map of AI service categories",
	}
	ListHeading = Text{
		UA: "Альтернативний перелік сервісів",
		EN: "Alternative service list",
	}
	SearchPlaceholder = Text{UA: "Пошук сервісів…", EN: "Search services…"}
	InfoNote          = Text{
		UA: "Клікніть категорію, щоб побачити сервіси. Натисніть на вузол — відкриється картка з описом і добіркою посилань.",
		EN: "Click a category to reveal services. Select any node to open a detail card with the description and curated links.",
	}
	ViewMap      = Text{UA: "Мапа", EN: "Map"}
	ViewList     = Text{UA: "Список", EN: "List"}
	Loading      = Text{UA: "Завантаження…", EN: "Loading…"}
	LoadError    = Text{UA: "Не вдалося завантажити дані", EN: "Failed to load data"}
	NoResults    = Text{UA: "Немає результатів за запитом", EN: "No results for this query"}
	DetailsEmpty = Text{
		UA: "Оберіть сервіс на мапі або в списку, щоб побачити опис і корисні матеріали.",
		EN: "Pick a service on the map or list to see its description and helpful resources.",
	}
	DetailsPrimary    = Text{UA: "Відкрити сайт", EN: "Open website"}
	DetailsTagsLabel  = Text{UA: "Теги", EN: "Tags"}
	DetailsLinksLabel = Text{UA: "Корисні посилання", EN: "Helpful links"}
	DetailsClose      = Text{UA: "Закрити картку", EN: "Close card"}
	FooterRights      = Text{UA: "Усі права захищені · 2024", EN: "All rights reserved · 2024"}
)
