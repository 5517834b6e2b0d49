package kernel

import "strings"

type Email string

func NewEmail(v string) Email   { return Email(strings.ToLower(strings.TrimSpace(v))) }
func (e Email) String() string  { return string(e) }
func (e Email) IsEmpty() bool   { return string(e) == "" }

// IsValid performs a shallow shape check; real validation happens on delivery.
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

type Username string

func NewUsername(v string) Username { return Username(strings.TrimSpace(v)) }
func (u Username) String() string   { return string(u) }
func (u Username) IsEmpty() bool    { return string(u) == "" }

type FirstName string

func (n FirstName) String() string { return string(n) }

type LastName string

func (n LastName) String() string { return string(n) }
