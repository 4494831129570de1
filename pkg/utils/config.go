package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Line        LineConfig
	Redis       RedisConfig
	Queue       QueueConfig
	Reservation ReservationConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret           string
	AccessTTLMinutes int
	RefreshTTLDays   int
}

// LineConfig holds the LINE Login channel credentials. The channel secret
// doubles as the HS256 key LINE signs ID tokens with.
type LineConfig struct {
	ChannelID     string
	ChannelSecret string
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CacheTTLSeconds int
}

type QueueConfig struct {
	URL      string
	Exchange string
}

type ReservationConfig struct {
	MaxActive int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_ACCESS_TTL_MINUTES", 15)
	viper.SetDefault("JWT_REFRESH_TTL_DAYS", 30)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 30)
	viper.SetDefault("QUEUE_EXCHANGE", "notifications")
	viper.SetDefault("RESERVATION_LIMIT", 3)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:           viper.GetString("JWT_SECRET"),
			AccessTTLMinutes: viper.GetInt("JWT_ACCESS_TTL_MINUTES"),
			RefreshTTLDays:   viper.GetInt("JWT_REFRESH_TTL_DAYS"),
		},
		Line: LineConfig{
			ChannelID:     viper.GetString("LINE_CHANNEL_ID"),
			ChannelSecret: viper.GetString("LINE_CHANNEL_SECRET"),
		},
		Redis: RedisConfig{
			Addr:            viper.GetString("REDIS_ADDR"),
			Password:        viper.GetString("REDIS_PASSWORD"),
			DB:              viper.GetInt("REDIS_DB"),
			CacheTTLSeconds: viper.GetInt("CACHE_TTL_SECONDS"),
		},
		Queue: QueueConfig{
			URL:      viper.GetString("RABBITMQ_URL"),
			Exchange: viper.GetString("QUEUE_EXCHANGE"),
		},
		Reservation: ReservationConfig{
			MaxActive: viper.GetInt("RESERVATION_LIMIT"),
		},
	}

	return config, nil
}
