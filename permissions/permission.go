// Package permissions holds the route table that maps each API endpoint to
// the roles allowed to call it.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission is one route entry. An empty Permissions list admits any
// authenticated caller; Skip admits anonymous callers too.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the entry for a route pattern, or the zero entry
// when none exists. Trailing slashes and method case are not significant.
// HEAD falls back to the GET entry.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path, method = trimSlash(path), strings.ToUpper(method)

	for _, candidate := range []string{method, http.MethodGet} {
		idx := slices.IndexFunc(r.Endpoints, func(p Permission) bool {
			return trimSlash(p.Path) == path && strings.EqualFold(p.Method, candidate)
		})

		if idx != -1 {
			return r.Endpoints[idx]
		}

		if method != http.MethodHead {
			break
		}
	}

	return Permission{}
}

// Get decodes the embedded route table. It returns nil when the file is
// malformed, which leaves every route closed to non-skipped callers.
func Get() *PermissionData {
	data, err := parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("embedded permissions loaded")

	return data
}

func parse(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	seen := make(map[string]struct{}, len(data.Endpoints))

	for i, endpoint := range data.Endpoints {
		if endpoint.Path == "" || endpoint.Method == "" {
			return nil, fmt.Errorf("endpoint %d: path and method are required", i)
		}

		key := strings.ToUpper(endpoint.Method) + " " + trimSlash(endpoint.Path)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("endpoint %s is declared twice", key)
		}

		seen[key] = struct{}{}
	}

	return &data, nil
}

func trimSlash(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}
