package storage

import (
	"context"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/seva-empresas/seva-admin/internal/domain/repository"
)

var _ repository.ClientStorage = (*File)(nil)

// fileDocument formato en disco. Con passphrase solo se llenan Salt y Sealed.
type fileDocument struct {
	Entries map[string]string `json:"entries,omitempty"`
	Salt    []byte            `json:"salt,omitempty"`
	Sealed  []byte            `json:"sealed,omitempty"`
}

// File persiste las claves en un archivo JSON. Si se indica una passphrase, el contenido
// se cifra con XChaCha20-Poly1305 y una clave derivada con argon2id.
type File struct {
	path       string
	passphrase string

	mu   sync.Mutex
	data map[string]string
	salt []byte
	aead cipher.AEAD // derivado una sola vez por sal
}

// NewFile abre (o inicializa) el archivo en path. Falla si existe pero no se puede leer o descifrar.
func NewFile(path, passphrase string) (*File, error) {
	f := &File{path: path, passphrase: passphrase, data: make(map[string]string)}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("leer %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		return nil
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decodificar %s: %w", f.path, err)
	}
	if doc.Sealed == nil {
		if f.passphrase != "" && len(doc.Entries) > 0 {
			return fmt.Errorf("%s no está cifrado pero se configuró STORAGE_PASSPHRASE", f.path)
		}
		if doc.Entries != nil {
			f.data = doc.Entries
		}
		return nil
	}
	if f.passphrase == "" {
		return fmt.Errorf("%s está cifrado: falta STORAGE_PASSPHRASE", f.path)
	}
	aead, err := deriveAEAD(f.passphrase, doc.Salt)
	if err != nil {
		return err
	}
	plain, err := open(aead, doc.Sealed)
	if err != nil {
		return err
	}
	entries := make(map[string]string)
	if err := json.Unmarshal(plain, &entries); err != nil {
		return fmt.Errorf("decodificar contenido descifrado: %w", err)
	}
	f.data = entries
	f.salt, f.aead = doc.Salt, aead
	return nil
}

// sealer devuelve el AEAD de la sal actual, creando sal y clave la primera vez.
func (f *File) sealer() (cipher.AEAD, error) {
	if f.aead != nil {
		return f.aead, nil
	}
	if f.salt == nil {
		salt, err := newSalt()
		if err != nil {
			return nil, err
		}
		f.salt = salt
	}
	aead, err := deriveAEAD(f.passphrase, f.salt)
	if err != nil {
		return nil, err
	}
	f.aead = aead
	return aead, nil
}

// flush escribe a un temporal y renombra; el llamador tiene el lock.
func (f *File) flush() error {
	var doc fileDocument
	if f.passphrase == "" {
		doc.Entries = f.data
	} else {
		aead, err := f.sealer()
		if err != nil {
			return err
		}
		plain, err := json.Marshal(f.data)
		if err != nil {
			return err
		}
		sealed, err := seal(aead, plain)
		if err != nil {
			return err
		}
		doc.Salt, doc.Sealed = f.salt, sealed
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("crear directorio de almacenamiento: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("escribir %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("reemplazar %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.data[key]
	f.data[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := f.data[k]; ok {
			removed[k] = v
			delete(f.data, k)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := f.flush(); err != nil {
		for k, v := range removed {
			f.data[k] = v
		}
		return err
	}
	return nil
}
