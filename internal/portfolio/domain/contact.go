package domain

import "strings"

// ContactMessage is a visitor message relayed to the portfolio owner.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Missing lists the blank fields in declaration order.
func (m ContactMessage) Missing() []string {
	var out []string
	for _, f := range []struct{ name, v string }{
		{"name", m.Name},
		{"email", m.Email},
		{"subject", m.Subject},
		{"message", m.Message},
	} {
		if strings.TrimSpace(f.v) == "" {
			out = append(out, f.name)
		}
	}
	return out
}
