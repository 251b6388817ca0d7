package cmd

import (
	"fmt"
	"time"
)

// Config carries everything the process reads from its environment. The
// handoff secret has no default: two instances signing with different
// secrets would mint tokens the other cannot verify.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	HandoffSecret string

	CommandTimeout    time.Duration
	PickupWaitTimeout time.Duration
}

// PostgresDSN renders the database connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
