package outfit

// Query string keys accepted by the recommendation endpoint.
const (
	ParamTemperature = "temp"
	ParamDescription = "description"
	ParamWind        = "wind"
	ParamLocation    = "location"
)

// ParseQuery builds a WeatherQuery from decoded query values. The first non-empty
// value of each key wins; missing or empty keys fall back to the defaults.
func ParseQuery(values map[string][]string) WeatherQuery {
	return WeatherQuery{
		Temperature: firstValue(values, ParamTemperature, DefaultTemperature),
		Description: firstValue(values, ParamDescription, DefaultDescription),
		Wind:        firstValue(values, ParamWind, DefaultWind),
		Location:    firstValue(values, ParamLocation, DefaultLocation),
	}
}

func firstValue(values map[string][]string, key, fallback string) string {
	for _, v := range values[key] {
		if v != "" {
			return v
		}
	}
	return fallback
}
