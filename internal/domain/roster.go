package domain

import "strconv"

// CanonicalIDThreshold separates externally issued IDs from short numeric tokens.
const CanonicalIDThreshold int64 = 100000000

// RosterEntry maps a canonical game ID to a nickname chosen by bot users.
type RosterEntry struct {
	GokID int64  `json:"gokid" yaml:"gokid"`
	Name  string `json:"name" yaml:"name"`
}

// IDString returns the canonical ID in the form the stats API expects.
func (e RosterEntry) IDString() string {
	return strconv.FormatInt(e.GokID, 10)
}

// ToMap converts the entry into template data.
func (e RosterEntry) ToMap() map[string]any {
	return map[string]any{
		"gokid": e.GokID,
		"name":  e.Name,
	}
}
