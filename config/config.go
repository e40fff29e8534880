package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	// Environment variables take precedence over the .env file.
	_ = godotenv.Load()
}

// Get reads an environment variable, falling back to def when unset or empty.
func Get(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Addr() string {
	return Get("ADDR", ":8080")
}

func MongoURI() string {
	return Get("MONGO_URI", "mongodb://localhost:27017")
}

func MongoDatabase() string {
	return Get("MONGO_DB", "studybuddy")
}

// DetectorCommand is the command line used to spawn the frame-analysis
// process, one process per detection connection.
func DetectorCommand() []string {
	return strings.Fields(Get("DETECTOR_CMD", "python -u detector/face_detector.py"))
}

// GuestStateDir is where per-user tracker state blobs are persisted.
func GuestStateDir() string {
	return Get("GUEST_STATE_DIR", "data/state")
}

// JWTSecret returns the configured signing key, or a random one per boot
// when none is configured (tokens then expire on restart).
func JWTSecret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return GenerateRandomKey()
}

func GenerateRandomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
