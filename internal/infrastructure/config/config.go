// Package config loads the flat key-value booking properties file. It
// only reads bytes into a map; all rule checking belongs to the domain
// validator.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/irctc-booker/internal/domain/booking"
)

// DefaultPath is where the book and validate commands look for the
// booking properties unless told otherwise.
const DefaultPath = "booking.properties"

// Environment overrides for the credential keys, so secrets can stay
// out of the properties file.
const (
	EnvUsername = "IRCTC_USERNAME"
	EnvPassword = "IRCTC_PASSWORD"
)

// Load reads the properties file into the raw key-value map the
// validator consumes. Credential env vars, when set, override the file.
func Load(path string) (map[string]string, error) {
	raw, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read booking properties %s: %w", path, err)
	}
	if v := strings.TrimSpace(os.Getenv(EnvUsername)); v != "" {
		raw[booking.KeyUsername] = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPassword)); v != "" {
		raw[booking.KeyPassword] = v
	}
	return raw, nil
}
