package outfit

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(nil)
	require.Equal(t, WeatherQuery{
		Temperature: "20",
		Description: "Açık",
		Wind:        "10",
		Location:    "Bilinmiyor",
	}, q)
}

func TestParseQueryTakesFirstValue(t *testing.T) {
	values, err := url.ParseQuery("temp=5&temp=9&description=Ya%C4%9Fmurlu&wind=20&location=%C4%B0stanbul&unused=x")
	require.NoError(t, err)

	q := ParseQuery(values)
	require.Equal(t, "5", q.Temperature)
	require.Equal(t, "Yağmurlu", q.Description)
	require.Equal(t, "20", q.Wind)
	require.Equal(t, "İstanbul", q.Location)
}

func TestParseQueryEmptyValuesFallBack(t *testing.T) {
	values, err := url.ParseQuery("temp=&wind=&wind=12&location=")
	require.NoError(t, err)

	q := ParseQuery(values)
	require.Equal(t, DefaultTemperature, q.Temperature)
	require.Equal(t, "12", q.Wind)
	require.Equal(t, DefaultLocation, q.Location)
	require.Equal(t, DefaultDescription, q.Description)
}

func TestParseQueryKeepsRawText(t *testing.T) {
	q := ParseQuery(map[string][]string{"temp": {"sıcak"}, "wind": {"-3.5"}})
	require.Equal(t, "sıcak", q.Temperature)
	require.Equal(t, "-3.5", q.Wind)
}
