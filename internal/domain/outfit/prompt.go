package outfit

import "fmt"

const promptTemplate = `Sen bir moda uzmanısın. %[1]s için hava durumu: %[2]s°C, %[3]s, rüzgar %[4]s km/h.

Sabah, öğlen ve akşam için kıyafet önerileri ver. Her biri için:
- short: Kısa başlık
- detail: 3-4 cümlelik detaylı açıklama
- reason: 2-3 cümlelik gerekçe
- alternatives: 3 alternatif (her biri title ve description içermeli)

SADECE JSON formatında yanıt ver:
{
    "morning": {
        "short": "Örnek",
        "detail": "Detaylı açıklama",
        "reason": "Gerekçe",
        "alternatives": [
            {"title": "Alt 1", "description": "Açıklama 1"},
            {"title": "Alt 2", "description": "Açıklama 2"},
            {"title": "Alt 3", "description": "Açıklama 3"}
        ]
    },
    "afternoon": {},
    "evening": {}
}`

// BuildPrompt renders the generation prompt for a query. The output depends only
// on the four query values.
func BuildPrompt(q WeatherQuery) string {
	return fmt.Sprintf(promptTemplate, q.Location, q.Temperature, q.Description, q.Wind)
}
