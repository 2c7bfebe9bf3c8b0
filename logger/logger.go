package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// L is the shared application logger. Setup must run before first use;
// the zero value falls back to logrus defaults.
var L = logrus.New()

// Setup configures the shared logger from LOG_LEVEL and LOG_FORMAT.
// Unknown values fall back to info/text.
func Setup() {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	L.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		L.SetFormatter(&logrus.JSONFormatter{})
	} else {
		L.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	L.SetOutput(os.Stdout)
}
