package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	ObjectKey  string
}

type Config struct {
	GraphAPIBase     string
	PexelsAPIBase    string
	SearchQuery      string
	SearchPageSize   int
	CaptionTemplate  string
	ScheduleHour     int
	ScheduleMinute   int
	ScheduleTimezone string
	MaxPostsPerRun   int
	PollInterval     time.Duration
	PollMaxAttempts  int
	SweepInterval    string
	StorageBackend   string
	StorageFile      string
	PostgresURI      string
	RedisURI         string
	R2               R2
}

const defaultCaption = "✨ Luxury Lifestyle ✨\n\n\U0001F4F9 Video by {attribution}\n\n#luxury #lifestyle #luxurylifestyle #wealth #success #motivation"

func LoadConfig() *Config {
	return &Config{
		GraphAPIBase:     getEnv("GRAPH_API_BASE", "https://graph.facebook.com/v18.0"),
		PexelsAPIBase:    getEnv("PEXELS_API_BASE", "https://api.pexels.com"),
		SearchQuery:      getEnv("SEARCH_QUERY", "luxury lifestyle"),
		SearchPageSize:   getEnvInt("SEARCH_PAGE_SIZE", 30),
		CaptionTemplate:  getEnv("CAPTION_TEMPLATE", defaultCaption),
		ScheduleHour:     getEnvInt("SCHEDULE_HOUR", 10),
		ScheduleMinute:   getEnvInt("SCHEDULE_MINUTE", 0),
		ScheduleTimezone: getEnv("SCHEDULE_TIMEZONE", "UTC"),
		MaxPostsPerRun:   getEnvInt("MAX_POSTS_PER_RUN", 7),
		PollInterval:     getEnvDuration("POLL_INTERVAL", 2*time.Second),
		PollMaxAttempts:  getEnvInt("POLL_MAX_ATTEMPTS", 30),
		SweepInterval:    getEnv("SWEEP_INTERVAL", "@every 00h01m00s"),
		StorageBackend:   getEnv("STORAGE_BACKEND", "file"),
		StorageFile:      getEnv("STORAGE_FILE", "scheduled-posts.json"),
		PostgresURI:      getEnv("POSTGRES_URI", ""),
		RedisURI:         getEnv("REDIS_URI", ""),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			ObjectKey:  getEnv("R2_OBJECT_KEY", "scheduled-posts.json"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
