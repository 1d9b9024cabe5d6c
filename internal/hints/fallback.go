package hints

// Generic, city-agnostic hints used when the completion endpoint is
// unavailable. Deliberately lower quality than generated hints; indexed
// by cycling so a long round never runs out.
var fallbackHints = map[string][]string{
	"en": {
		"This city is located on a continent with diverse cultures and languages.",
		"The climate here features distinct seasonal changes throughout the year.",
		"This urban area has historical significance dating back centuries.",
		"Water plays an important role in the geography of this location.",
		"The local cuisine has distinctive flavors and ingredients.",
		"Unique architectural styles define the city's skyline.",
		"The city has been featured in many famous creative works.",
		"A notable transportation system is used by locals and tourists.",
		"An iconic landmark can be seen from many points in the city.",
		"The city hosts a well-known annual event that attracts visitors.",
	},
	"ru": {
		"Этот город расположен на континенте с разнообразными культурами и языками.",
		"Климат здесь отличается выраженной сменой времён года.",
		"Эта городская территория имеет многовековую историю.",
		"Вода играет важную роль в географии этого места.",
		"Местная кухня известна характерными вкусами и продуктами.",
		"Силуэт города определяют узнаваемые архитектурные стили.",
		"Город не раз появлялся в известных произведениях искусства.",
		"Местные жители и туристы пользуются примечательной транспортной системой.",
		"Знаковую достопримечательность видно из многих точек города.",
		"В городе проходит известное ежегодное событие, привлекающее гостей.",
	},
}

// Fallback returns the deterministic generic hint for the given 1-based
// index and locale. Unknown locales fall back to English. Never fails.
func Fallback(locale string, index int) string {
	list, ok := fallbackHints[locale]
	if !ok {
		list = fallbackHints["en"]
	}
	if index < 1 {
		index = 1
	}
	return list[(index-1)%len(list)]
}
