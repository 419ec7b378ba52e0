// Package keys builds the flat store key that addresses a whole collection.
package keys

import "strings"

// Namespace is the key segment reserved for every collection this library owns.
// External code must not write under it.
const Namespace = "_redis_collections"

// Name joins prefix, the library namespace, the collection type and the
// collection id into one dot-separated key. Empty components are dropped;
// type and id are lower-cased so equal identities always map to equal keys.
func Name(prefix, typeName, id string) string {
	components := []string{
		prefix,
		Namespace,
		"_" + strings.ToLower(typeName),
		strings.ToLower(id),
	}
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if c == "" || c == "_" {
			continue
		}
		parts = append(parts, c)
	}
	return strings.Join(parts, ".")
}
