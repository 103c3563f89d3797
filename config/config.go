package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const ModeProduction = "production"

type ProviderConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	APIKey  string        `mapstructure:"apiKey"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort     string        `mapstructure:"HTTPPort"`
		Timeout      time.Duration `mapstructure:"HTTPTimeout"`
		ReadTimeout  time.Duration `mapstructure:"readTimeout"`
		WriteTimeout time.Duration `mapstructure:"writeTimeout"`
		IdleTimeout  time.Duration `mapstructure:"idleTimeout"`
	} `mapstructure:"server"`
	Providers struct {
		TomTom  ProviderConfig `mapstructure:"tomtom"`
		Weather struct {
			ProviderConfig  `mapstructure:",squash"`
			MaxForecastDays int `mapstructure:"maxForecastDays"`
		} `mapstructure:"weather"`
		Pixabay       ProviderConfig `mapstructure:"pixabay"`
		Travelpayouts struct {
			FlightsURL string        `mapstructure:"flightsURL"`
			HotelsURL  string        `mapstructure:"hotelsURL"`
			APIKey     string        `mapstructure:"apiKey"`
			Timeout    time.Duration `mapstructure:"timeout"`
		} `mapstructure:"travelpayouts"`
	} `mapstructure:"providers"`
	LLM struct {
		Provider     string        `mapstructure:"provider"`
		Timeout      time.Duration `mapstructure:"timeout"`
		MaxTokens    int           `mapstructure:"maxTokens"`
		TokensPerDay int           `mapstructure:"tokensPerDay"` // itinerary budget grows per trip day
		TokenCeiling int           `mapstructure:"tokenCeiling"`
		Temperature  float32       `mapstructure:"temperature"`
		OpenRouter   struct {
			BaseURL string `mapstructure:"baseURL"`
			APIKey  string `mapstructure:"apiKey"`
			Model   string `mapstructure:"model"`
		} `mapstructure:"openrouter"`
		Gemini struct {
			APIKey string `mapstructure:"apiKey"`
			Model  string `mapstructure:"model"`
		} `mapstructure:"gemini"`
	} `mapstructure:"llm"`
	Itinerary struct {
		AttractionLimit       int           `mapstructure:"attractionLimit"`
		PromptAttractionLimit int           `mapstructure:"promptAttractionLimit"`
		PhotoLimit            int           `mapstructure:"photoLimit"`
		DisplayAttractions    int           `mapstructure:"displayAttractions"`
		DisplayImages         int           `mapstructure:"displayImages"`
		MaxTripDays           int           `mapstructure:"maxTripDays"`
		AggregatorTimeout     time.Duration `mapstructure:"aggregatorTimeout"`
	} `mapstructure:"itinerary"`
	RateLimit struct {
		RequestsPerMinute int `mapstructure:"requestsPerMinute"`
		Burst             int `mapstructure:"burst"`
	} `mapstructure:"rateLimit"`
	Cache struct {
		TTL     time.Duration `mapstructure:"ttl"`
		Cleanup time.Duration `mapstructure:"cleanup"`
	} `mapstructure:"cache"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

// IsProduction reports whether diagnostic details must be hidden from clients.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Mode, ModeProduction)
}

// legacyEnv maps the environment variable names used by the original deployment
// onto their config keys.
var legacyEnv = map[string]string{
	"mode":                           "APP_ENV",
	"server.HTTPPort":                "PORT",
	"providers.tomtom.apiKey":        "TOMTOM_API_KEY",
	"providers.weather.apiKey":       "WEATHER_API_KEY",
	"providers.pixabay.apiKey":       "PIXABAY_API_KEY",
	"providers.travelpayouts.apiKey": "TRAVELPAYOUTS_API_KEY",
	"llm.openrouter.apiKey":          "OPENROUTER_API_KEY",
	"llm.gemini.apiKey":              "GOOGLE_GEMINI_API_KEY",
	"llm.provider":                   "LLM_PROVIDER",
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
