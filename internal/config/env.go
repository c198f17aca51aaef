package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// env reads typed environment variables with defaults and remembers every
// malformed value, so Load can report them all at once.
type env struct {
	errs []error
}

func (e *env) str(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func (e *env) bool(k string, d bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	e.errs = append(e.errs, fmt.Errorf("invalid bool for %s: %q", k, v))
	return d
}

func (e *env) int(k string, d int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid int for %s: %q", k, v))
		return d
	}
	return n
}

func (e *env) int64(k string, d int64) int64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid int for %s: %q", k, v))
		return d
	}
	return n
}

func (e *env) dur(k string, d time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid duration for %s: %q", k, v))
		return d
	}
	return dur
}

// list splits a comma separated value, dropping empty entries.
func (e *env) list(k, d string) []string {
	var out []string
	for _, p := range strings.Split(e.str(k, d), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (e *env) err() error { return errors.Join(e.errs...) }
