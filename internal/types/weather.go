package types

import (
	"encoding/json"
	"math"
)

// WeatherDay keeps provider temperatures unrounded; they are rounded only when serialized.
type WeatherDay struct {
	Date          string  `json:"date"`
	Condition     string  `json:"condition"`
	ConditionIcon string  `json:"condition_icon,omitempty"`
	MaxTempC      float64 `json:"max_temp_c"`
	MinTempC      float64 `json:"min_temp_c"`
	ChanceOfRain  int     `json:"chance_of_rain"`
}

func (w WeatherDay) MarshalJSON() ([]byte, error) {
	type wire struct {
		Date          string `json:"date"`
		Condition     string `json:"condition"`
		ConditionIcon string `json:"condition_icon,omitempty"`
		MaxTempC      int    `json:"max_temp_c"`
		MinTempC      int    `json:"min_temp_c"`
		ChanceOfRain  int    `json:"chance_of_rain"`
	}
	return json.Marshal(wire{
		Date:          w.Date,
		Condition:     w.Condition,
		ConditionIcon: w.ConditionIcon,
		MaxTempC:      int(math.Round(w.MaxTempC)),
		MinTempC:      int(math.Round(w.MinTempC)),
		ChanceOfRain:  w.ChanceOfRain,
	})
}

type WeatherForecast struct {
	Location string       `json:"location"`
	Region   string       `json:"region,omitempty"`
	Country  string       `json:"country,omitempty"`
	Forecast []WeatherDay `json:"forecast"`
}

// WeatherResponse is returned by GET /api/weather/{location}.
type WeatherResponse struct {
	Success bool            `json:"success"`
	Weather WeatherForecast `json:"weather"`
}
