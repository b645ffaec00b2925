package outfit

// Normalize returns a copy of plan that carries every period and a non-empty
// alternatives list for each. Missing or malformed periods are replaced by the
// placeholder recommendation; a period with no usable alternatives only gets the
// generic alternatives filled in. Other fields are never repaired, and extra keys
// pass through untouched.
func Normalize(plan DayPlan) DayPlan {
	out := make(DayPlan, len(plan)+len(Periods))
	for key, value := range plan {
		out[key] = value
	}

	for _, period := range Periods {
		entry, ok := out[period].(map[string]any)
		if !ok {
			out[period] = placeholderRecommendation().value()
			continue
		}
		if hasAlternatives(entry) {
			continue
		}
		repaired := make(map[string]any, len(entry)+1)
		for key, value := range entry {
			repaired[key] = value
		}
		repaired["alternatives"] = alternativeValues(defaultAlternatives())
		out[period] = repaired
	}
	return out
}

func hasAlternatives(entry map[string]any) bool {
	items, ok := entry["alternatives"].([]any)
	return ok && len(items) > 0
}

func placeholderRecommendation() Recommendation {
	return Recommendation{
		Short:  "Standart Kıyafet",
		Detail: "Bu zaman dilimi için öneriler hazırlanıyor.",
		Reason: "Hava koşullarına göre en uygun seçim.",
		Alternatives: []Alternative{
			{Title: "Klasik", Description: "Zamansız şık parçalar."},
			{Title: "Sporty", Description: "Hareket özgürlüğü sunan parçalar."},
			{Title: "Casual", Description: "Günlük kullanım için rahat stil."},
		},
	}
}

func defaultAlternatives() []Alternative {
	return []Alternative{
		{Title: "Klasik Şık", Description: "Zamansız ve şık parçalarla kombinasyon."},
		{Title: "Spor Rahat", Description: "Aktif yaşam için konforlu seçim."},
		{Title: "Modern Casual", Description: "Günlük stil sahibi görünüm."},
	}
}
