package models

// KeyProfile is a weighted candidate key for rendering
type KeyProfile struct {
	KeyID       string  `json:"key_id"`
	Tonic       string  `json:"tonic"`
	Mode        Mode    `json:"mode"`
	DisplayName string  `json:"display_name"`
	Weight      float64 `json:"weight"`
}

// Key is a concrete tonic/mode pair
type Key struct {
	Tonic string `json:"tonic"`
	Mode  Mode   `json:"mode"`
}

// String renders the key as e.g. "C major"
func (k Key) String() string {
	return k.Tonic + " " + string(k.Mode)
}
