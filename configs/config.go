package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBNameTest     string
	RedisHost      string
	RedisPort      int
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins string
	ListenPort     int
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	// Token lifetime in minutes, one hour when unset.
	ttlMinutes, err := strconv.Atoi(os.Getenv("TOKEN_TTL_MINUTES"))
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 60
	}

	listenPort, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		listenPort = 3004
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "*"
	}

	return Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         dbPort,
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBNameTest:     os.Getenv("DB_NAME_TEST"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      redisPort,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       time.Duration(ttlMinutes) * time.Minute,
		AllowedOrigins: origins,
		ListenPort:     listenPort,
	}
}
