package config

import (
	"errors"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingSecret is returned when JWT_SECRET is not set.
	ErrMissingSecret = errors.New("JWT_SECRET must be set")
	// ErrMissingMongoURI is returned when MONGO_URI is not set.
	ErrMissingMongoURI = errors.New("MONGO_URI must be set")
)

// Config holds all runtime configuration. It is built once in main and passed
// explicitly into the components that need it, so there is no ambient global
// secret or salt anywhere in the codebase.
type Config struct {
	Host        string
	Port        int
	MongoURI    string
	JWTSecret   string
	BcryptCost  int
	AllowOrigin string
	// AMQPURL is optional. When empty, lifecycle events are disabled.
	AMQPURL string
}

// Load reads configuration from environment variables. Callers are expected
// to have loaded a .env file beforehand (see cmd/main).
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return nil, ErrMissingMongoURI
	}

	port := 5000
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("PORT must be a number")
		}
		port = p
	}

	cost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("BCRYPT_COST must be a number")
		}
		cost = c
	}

	origin := os.Getenv("ORIGIN")
	if origin == "" {
		origin = "http://localhost:8080"
	}

	return &Config{
		Host:        os.Getenv("HOST"),
		Port:        port,
		MongoURI:    mongoURI,
		JWTSecret:   secret,
		BcryptCost:  cost,
		AllowOrigin: origin,
		AMQPURL:     os.Getenv("AMQP_URL"),
	}, nil
}
