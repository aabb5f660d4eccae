package installer

// Settings collects everything the wizard asks for. The env tags drive
// the .env rendering in the persistence step; zero values are omitted
// so unset options fall back to the runtime defaults.
type Settings struct {
	OpenWeatherKey string `env:"OPENWEATHER_API_KEY"`
	OpenAIKey      string `env:"OPENAI_API_KEY"`
	Model          string `env:"OPENAI_MODEL"`
	DefaultCity    string `env:"SKYCAST_DEFAULT_CITY"`
	Units          string `env:"SKYCAST_UNITS"`
	EnableTelegram bool   `env:"SKYCAST_ENABLE_TELEGRAM"`
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramOwner  string `env:"TELEGRAM_OWNER_ID"`
	Debug          string `env:"SKYCAST_DEBUG"`
}

type InstallState struct {
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
