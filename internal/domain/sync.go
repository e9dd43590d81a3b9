package domain

// Storage keys shared by every store adapter. They match the keys the
// browser dashboard keeps in localStorage, so exported data loads as is.
const (
	LedgerKey     = "familyWeightHistory"
	SyncConfigKey = "supabaseConfig"
)

// SyncConfig is the recorded cloud endpoint. It is reported as a status
// indicator only; nothing is ever sent to the endpoint.
type SyncConfig struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Configured reports whether both the endpoint and the key are set.
func (c SyncConfig) Configured() bool {
	return c.URL != "" && c.Key != ""
}

// SyncStatus is the user-visible sync indicator.
type SyncStatus struct {
	Configured bool   `json:"configured"`
	Endpoint   string `json:"endpoint,omitempty"`
	Mode       string `json:"mode"`
}
