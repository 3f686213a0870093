package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// dotEnvFiles are loaded in order when present. Earlier files win, and the
// process environment wins over all of them.
var dotEnvFiles = []string{".env.local", ".env"}

func loadDotEnv() error {
	for _, name := range dotEnvFiles {
		err := godotenv.Load(name)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}
