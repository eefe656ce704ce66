package weather

import "time"

// Условия на воде по оценке погодного сервиса
const (
	ConditionSafe      = "safe"
	ConditionCaution   = "caution"
	ConditionDangerous = "dangerous"
)

// Assessment оценка погодных условий на время выхода
type Assessment struct {
	Condition     string    `json:"condition"`
	WindSpeedKts  float64   `json:"wind_speed_kts"`
	WaveHeightM   float64   `json:"wave_height_m"`
	Summary       string    `json:"summary"`
	AssessedAt    time.Time `json:"assessed_at"`
}

// ErrorResponse модель ошибки от погодного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
