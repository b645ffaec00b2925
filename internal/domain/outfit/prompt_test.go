package outfit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptEmbedsQuery(t *testing.T) {
	q := WeatherQuery{Temperature: "5", Description: "Yağmurlu", Wind: "20", Location: "İstanbul"}

	prompt := BuildPrompt(q)
	require.True(t, strings.HasPrefix(prompt, "Sen bir moda uzmanısın."))
	require.Contains(t, prompt, "İstanbul için hava durumu: 5°C, Yağmurlu, rüzgar 20 km/h.")
	for _, key := range []string{`"morning"`, `"afternoon"`, `"evening"`, `"short"`, `"detail"`, `"reason"`, `"alternatives"`, `"title"`, `"description"`} {
		require.Contains(t, prompt, key)
	}
	require.Contains(t, prompt, "SADECE JSON")
	require.NotContains(t, prompt, "%!")
}

func TestBuildPromptDeterministic(t *testing.T) {
	q := ParseQuery(nil)
	require.Equal(t, BuildPrompt(q), BuildPrompt(q))
	require.NotEqual(t, BuildPrompt(q), BuildPrompt(WeatherQuery{Temperature: "30", Description: "Güneşli", Wind: "5", Location: "İzmir"}))
}
