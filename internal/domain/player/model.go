package player

import (
	"regexp"
	"strings"
)

var keyPattern = regexp.MustCompile(`/jugador/(\d+)/`)

// Identity is one row of the player master table. ID is the stable player URL.
type Identity struct {
	ID   string
	Name string
}

// KeyFromURL extracts the numeric key from a ".../jugador/<n>/..." URL.
func KeyFromURL(url string) (string, bool) {
	m := keyPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// KeyFromFilename reads the key prefix of "<key>_<Name>.csv".
func KeyFromFilename(name string) string {
	key, _, _ := strings.Cut(name, "_")
	return strings.TrimSpace(key)
}

// UnknownID is the placeholder id used for a key absent from the master table.
func UnknownID(key string) string {
	return "desconocido_" + key
}

// Directory maps numeric keys to identities. The first identity seen for a key wins.
type Directory struct {
	byKey map[string]Identity
	byID  map[string]Identity
}

func NewDirectory(identities []Identity) *Directory {
	d := &Directory{
		byKey: make(map[string]Identity, len(identities)),
		byID:  make(map[string]Identity, len(identities)),
	}
	for _, ident := range identities {
		if ident.ID == "" {
			continue
		}
		if _, ok := d.byID[ident.ID]; !ok {
			d.byID[ident.ID] = ident
		}
		if key, ok := KeyFromURL(ident.ID); ok {
			if _, exists := d.byKey[key]; !exists {
				d.byKey[key] = ident
			}
		}
	}
	return d
}

// ResolveKey returns the stable id for a filename key, or UnknownID(key).
func (d *Directory) ResolveKey(key string) string {
	if d != nil {
		if ident, ok := d.byKey[key]; ok {
			return ident.ID
		}
	}
	return UnknownID(key)
}

// Name returns the display name for a stable id, empty when unknown.
func (d *Directory) Name(id string) string {
	if d == nil {
		return ""
	}
	return d.byID[id].Name
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byID)
}
