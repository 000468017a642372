package machines

import "time"

// Machine is a reusable gym equipment definition, selectable when logging
// an exercise. Image is a base64 data URL, as sent by the client.
type Machine struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}
