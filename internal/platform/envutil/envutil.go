// Package envutil reads typed settings from the environment, falling back to
// a default when a variable is unset or cannot be parsed.
package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

func String(key, def string, log *logger.Logger) string {
	log = withKey(log, key)
	val, ok := lookup(key)
	if !ok {
		debug(log, "Environment variable not found, using default", "default", def)
		return def
	}
	debug(log, "Environment variable found, using environment", "value", val)
	return val
}

func Int(key string, def int, log *logger.Logger) int {
	log = withKey(log, key)
	raw, ok := lookup(key)
	if !ok {
		debug(log, "Environment variable not found, using default", "default", def)
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		debug(log, "Environment variable could not be parsed as int, using default", "providedVal", raw, "defaultVal", def, "error", err)
		return def
	}
	return i
}

func Bool(key string, def bool, log *logger.Logger) bool {
	log = withKey(log, key)
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	debug(log, "Environment variable could not be parsed as bool, using default", "providedVal", raw, "defaultVal", def)
	return def
}

// Seconds reads an integer number of seconds.
func Seconds(key string, def time.Duration, log *logger.Logger) time.Duration {
	secs := Int(key, int(def/time.Second), log)
	return time.Duration(secs) * time.Second
}

// List splits a comma-separated variable, dropping empty items.
func List(key string, def []string, log *logger.Logger) []string {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	debug(withKey(log, key), "Environment variable found, using list", "count", len(out))
	return out
}

func lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	val = strings.TrimSpace(val)
	return val, val != ""
}

func withKey(log *logger.Logger, key string) *logger.Logger {
	if log == nil {
		return nil
	}
	return log.With("env_var", key)
}

func debug(log *logger.Logger, msg string, kv ...interface{}) {
	if log != nil {
		log.Debug(msg, kv...)
	}
}
