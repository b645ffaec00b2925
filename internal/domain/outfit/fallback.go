package outfit

import "fmt"

// FallbackPlan returns the deterministic plan served when the model output is
// unusable. It depends only on the query's location and temperature.
func FallbackPlan(q WeatherQuery) DayPlan {
	loc, temp := q.Location, q.Temperature
	return DayPlan{
		PeriodMorning: Recommendation{
			Short:  "Hafif Kazak ve Kot Pantolon",
			Detail: fmt.Sprintf("%s için sabah serinliğinde %s°C sıcaklıkta pamuklu bir t-shirt üzerine ince bir kazak ideal. Kot pantolon ile kombinlendiğinde hem şık hem rahat bir görünüm elde edilir. Katmanlama sayesinde gün ısındıkça kazağı çıkarabilirsiniz.", loc, temp),
			Reason: fmt.Sprintf("Sabah saatlerinde %s°C gibi orta sıcaklıklarda katmanlı giyim en iyi termal konforu sağlar. Kazak rüzgardan korur, pamuk nefes alır.", temp),
			Alternatives: []Alternative{
				{Title: "Spor Şık", Description: "Sweatshirt ve jogger pantolon kombinasyonu. Rahat ve modern görünüm için ideal."},
				{Title: "Klasik Stil", Description: "Gömlek ve chino pantolon. İş toplantıları için uygun profesyonel görünüm."},
				{Title: "Günlük Rahat", Description: "Polo t-shirt ve kargo pantolon. Günlük aktiviteler için pratik seçim."},
			},
		}.value(),
		PeriodAfternoon: Recommendation{
			Short:  "T-shirt ve Hafif Pantolon",
			Detail: fmt.Sprintf("Öğlen güneşi için %s°C sıcaklıkta nefes alabilen pamuklu t-shirt tercih edin. Açık renkli chino veya keten pantolon serin tutar. Hafif bir ceket yanınızda bulundurabilirsiniz.", temp),
			Reason: fmt.Sprintf("Gün ortası sıcaklık %s°C civarında olduğunda hava sirkülasyonu önemli. Pamuk ve keten gibi doğal kumaşlar en iyi seçim.", temp),
			Alternatives: []Alternative{
				{Title: "Yazlık Rahat", Description: "Keten gömlek ve şort. Yaz ayları için ideal serin kombinasyon."},
				{Title: "Modern Casual", Description: "Grafik t-shirt ve slim pantolon. Günlük şehir gezileri için mükemmel."},
				{Title: "Aktif Stil", Description: "Tank top ve spor şort. Spor aktiviteleri için uygun nem emici kumaşlar."},
			},
		}.value(),
		PeriodEvening: Recommendation{
			Short:  "Gömlek ve Blazer",
			Detail: fmt.Sprintf("Akşam serinliği için %s°C sıcaklıkta uzun kollu gömlek ve üzerine blazer ceket ideal. Koyu renkli chino pantolon şıklık katar. Deri ayakkabı ile kombinasyon tamamlanır.", temp),
			Reason: fmt.Sprintf("Akşam %s°C'ye düşebilir. Katmanlı giyim ve blazer hem şık hem koruyucu. Koyu renkler akşam ortamlarına daha uygun.", temp),
			Alternatives: []Alternative{
				{Title: "Smart Casual", Description: "Kazak ve jean kombinasyonu. Akşam buluşmaları için rahat şıklık."},
				{Title: "Zarif Minimal", Description: "Boğazlı kazak ve koyu pantolon. Sofistike minimalist görünüm."},
				{Title: "Rahat Akşam", Description: "Hoodie ve jogger. Günlük akşam aktiviteleri için konforlu seçim."},
			},
		}.value(),
	}
}
