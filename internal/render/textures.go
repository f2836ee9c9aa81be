package render

import (
	"fmt"
	"path/filepath"
)

// TextureSet is a fixed TextureProvider backed by a map.
type TextureSet map[TextureKind]Texture

// Texture implements TextureProvider.
func (s TextureSet) Texture(kind TextureKind) (Texture, bool) {
	t, ok := s[kind]
	return t, ok && t != nil
}

// TextureFile returns the file name a texture kind is stored under.
func TextureFile(kind TextureKind) string {
	return kind.String() + ".png"
}

// LoadTextureSet loads every texture kind from dir. Files that fail to load
// are reported together; the kinds that loaded are still returned.
func LoadTextureSet(loader ResourceLoader, dir string) (TextureSet, error) {
	set := make(TextureSet, len(TextureKinds))
	var failed []string
	for _, kind := range TextureKinds {
		tex, err := loader.LoadTexture(filepath.Join(dir, TextureFile(kind)))
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", kind, err))
			continue
		}
		set[kind] = tex
	}
	if len(failed) > 0 {
		return set, fmt.Errorf("failed to load textures from %s: %v", dir, failed)
	}
	return set, nil
}
