package format

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// NeutralColor es el azul que usan los embeds sin personalizar
const NeutralColor = 0x3498db

// Accent es el estilo visual del embed de un jugador
type Accent struct {
	Color        int    `yaml:"color"`
	ThumbnailURL string `yaml:"thumbnail_url"`
	Footer       string `yaml:"footer"`
}

// Accents asigna un estilo por nombre de jugador (sin distinguir mayúsculas).
type Accents struct {
	Default Accent            `yaml:"default"`
	Players map[string]Accent `yaml:"players"`
}

func DefaultAccents() Accents {
	return Accents{
		Default: Accent{Color: NeutralColor},
		Players: map[string]Accent{},
	}
}

// For devuelve el estilo del jugador o el neutro si no tiene uno.
func (a Accents) For(playerName string) Accent {
	if accent, ok := a.Players[strings.ToLower(strings.TrimSpace(playerName))]; ok {
		return accent
	}
	return a.Default
}

// LoadAccents lee el YAML de estilos. Si el archivo no existe devuelve los neutros.
func LoadAccents(path string) (Accents, error) {
	if path == "" {
		return DefaultAccents(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultAccents(), nil
	}
	if err != nil {
		return Accents{}, fmt.Errorf("error leyendo %s: %w", path, err)
	}
	return ParseAccents(data)
}

func ParseAccents(data []byte) (Accents, error) {
	var raw Accents
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Accents{}, fmt.Errorf("error decodificando estilos: %w", err)
	}

	accents := DefaultAccents()
	if raw.Default != (Accent{}) {
		accents.Default = raw.Default
	}
	for name, accent := range raw.Players {
		accents.Players[strings.ToLower(strings.TrimSpace(name))] = accent
	}
	return accents, nil
}
