package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// pgpassPath returns the platform-appropriate .pgpass file path.
func pgpassPath() string {
	if custom := os.Getenv("PGPASSFILE"); custom != "" {
		return custom
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "postgresql", "pgpass.conf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pgpass")
}

// lookupPgpass resolves a password from the .pgpass file, following the
// PostgreSQL format: host:port:database:username:password, one entry per
// line, '*' matching any value, backslash escaping ':' and '\'.
// Returns "" when the file is missing or nothing matches.
func lookupPgpass(host string, port int, database, username string) string {
	path := pgpassPath()
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	portStr := fmt.Sprintf("%d", port)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitPgpassLine(line)
		if len(fields) != 5 {
			continue
		}

		if pgpassFieldMatches(fields[0], host) &&
			pgpassFieldMatches(fields[1], portStr) &&
			pgpassFieldMatches(fields[2], database) &&
			pgpassFieldMatches(fields[3], username) {
			return fields[4]
		}
	}
	return ""
}

// splitPgpassLine splits on unescaped colons and unescapes the fields.
func splitPgpassLine(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

func pgpassFieldMatches(field, value string) bool {
	return field == "*" || field == value
}
