package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The database pool knobs bound how many
// connections the service may hold open at once; once the pool is exhausted
// further requests wait for a free connection subject to their request
// deadline.
type Config struct {
	Env                string // application environment (e.g. "dev", "prod")
	Port               string // HTTP port to listen on
	DBUser             string // database username
	DBPass             string // database password (optional)
	DBHost             string // database host address
	DBPort             string // database port number
	DBName             string // database name
	DBMaxOpenConns     int    // maximum open connections in the pool
	DBMaxIdleConns     int    // maximum idle connections kept around
	DBConnLifetimeMins int    // maximum connection lifetime in minutes
	AMQPURL            string // RabbitMQ URL for purchase events (optional; empty disables)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Pool sizing is
// optional and falls back to conservative defaults.
func Load() Config {
	return Config{
		Env:                must("APP_ENV"),                       // environment (dev/test/prod)
		Port:               must("APP_PORT"),                      // port to bind the HTTP server
		DBUser:             must("DB_USER"),                       // database user
		DBPass:             os.Getenv("DB_PASS"),                  // database password (empty allowed)
		DBHost:             must("DB_HOST"),                       // database host
		DBPort:             must("DB_PORT"),                       // database port
		DBName:             must("DB_NAME"),                       // database name
		DBMaxOpenConns:     intOr("DB_MAX_OPEN_CONNS", 25),        // pool upper bound
		DBMaxIdleConns:     intOr("DB_MAX_IDLE_CONNS", 25),        // idle connections retained
		DBConnLifetimeMins: intOr("DB_CONN_MAX_LIFETIME_MIN", 30), // recycle connections after this long
		AMQPURL:            os.Getenv("RABBITMQ_URL"),             // broker URL (empty disables eventing)
	}
}

// Addr returns the listen address derived from the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr retrieves an optional integer environment variable, returning def
// when the variable is unset.  A present but malformed value is fatal so
// misconfiguration is caught at startup rather than at query time.
func intOr(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
