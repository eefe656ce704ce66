package weather_hold

// WeatherHoldRequest HTTP request model
type WeatherHoldRequest struct {
	Reason string `json:"reason"`
}
