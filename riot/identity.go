package riot

import (
	"fmt"
	"strings"
)

// Identity es el Riot ID de una cuenta: nombre de juego y tagline.
type Identity struct {
	Name string
	Tag  string
}

func (id Identity) String() string {
	return id.Name + "#" + id.Tag
}

// ParseIdentity interpreta "Nombre#tag". Exige exactamente un '#' y ambas partes no vacías.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, "#") != 1 {
		return Identity{}, fmt.Errorf("%q: %w", s, ErrMalformedInput)
	}
	name, tag, _ := strings.Cut(s, "#")
	name = strings.TrimSpace(name)
	tag = strings.TrimSpace(tag)
	if name == "" || tag == "" {
		return Identity{}, fmt.Errorf("%q: %w", s, ErrMalformedInput)
	}
	return Identity{Name: name, Tag: tag}, nil
}
