package collection

import (
	"fmt"
	"strings"
)

// Config describes one managed collection.
type Config struct {
	// Name is the logical collection name used in snapshots and the API.
	Name string

	// Table is the database table backing the collection. Currently always
	// equal to Name; kept separate so an alias could diverge later.
	Table string

	// Identifier, when non-empty, overrides key inference on restore.
	Identifier string

	// AssignMissingIDs backfills UUIDs into records with an empty
	// identifier. Implied by an explicit Identifier.
	AssignMissingIDs bool
}

// ParseList parses the flat collections config string: a comma-separated
// list of "table" or "table:identifier" entries.
func ParseList(raw string) ([]Config, error) {
	var configs []Config
	seen := map[string]struct{}{}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("collections entry %q: empty table name", entry)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("collections entry %q: duplicate table", entry)
		}
		seen[name] = struct{}{}

		cfg := Config{Name: name, Table: name}
		if len(parts) == 2 {
			cfg.Identifier = strings.TrimSpace(parts[1])
			if cfg.Identifier == "" {
				return nil, fmt.Errorf("collections entry %q: empty identifier", entry)
			}
			// An explicit identifier marks a collection whose key is
			// application-assigned, so missing keys get backfilled.
			cfg.AssignMissingIDs = true
		}
		configs = append(configs, cfg)
	}

	if len(configs) == 0 {
		return nil, fmt.Errorf("collections config is empty")
	}
	return configs, nil
}

// Find returns the config for the named collection.
func Find(configs []Config, name string) (Config, bool) {
	for _, c := range configs {
		if c.Name == name {
			return c, true
		}
	}
	return Config{}, false
}
