package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"qshield/internal/domain"
	"qshield/internal/util/memzero"
)

const (
	// The current supported version of the sealed value format.
	sealFormatVersion = 1

	// saltKey holds the KDF parameters next to the sealed values.
	saltKey = "seal-params"
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or a sealed value has been
	// modified / corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted data")
)

// kdfParams is the JSON record holding the salt and scrypt parameters.
type kdfParams struct {
	V    int    `json:"v"`
	Salt []byte `json:"salt"`
	N    int    `json:"scrypt_N"`
	R    int    `json:"scrypt_r"`
	P    int    `json:"scrypt_p"`
}

// sealed is the stored form of one value.
type sealed struct {
	V      int    `json:"v"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// SealedStore encrypts values with ChaCha20-Poly1305 under a
// key derived once from a passphrase. The key name is bound as associated
// data, so sealed values cannot be swapped between keys.
type SealedStore struct {
	inner domain.KeyValueStore
	key   []byte
}

// NewSealedStore derives the sealing key for passphrase, creating and
// persisting fresh KDF parameters in inner on first use.
func NewSealedStore(inner domain.KeyValueStore, passphrase string) (*SealedStore, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase required")
	}
	params, err := loadOrCreateParams(inner)
	if err != nil {
		return nil, err
	}
	pw := []byte(passphrase)
	defer memzero.Zero(pw)
	key, err := scrypt.Key(pw, params.Salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return &SealedStore{inner: inner, key: key}, nil
}

// Get opens the value stored under key.
func (s *SealedStore) Get(key string) ([]byte, bool, error) {
	b, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	var sv sealed
	if err := json.Unmarshal(b, &sv); err != nil {
		return nil, false, fmt.Errorf("decode sealed %s: %w", key, err)
	}
	if sv.V > sealFormatVersion {
		return nil, false, fmt.Errorf("unsupported seal version %d", sv.V)
	}
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, false, err
	}
	// Plaintext written before sealing was enabled decodes with no version.
	if sv.V < 1 || len(sv.Nonce) != aead.NonceSize() {
		return nil, false, fmt.Errorf("%w: %s is not a sealed value", ErrWrongPassphrase, key)
	}
	pt, err := aead.Open(nil, sv.Nonce, sv.Cipher, []byte(key))
	if err != nil {
		return nil, false, ErrWrongPassphrase
	}
	return pt, true, nil
}

// Set seals value and stores it under key.
func (s *SealedStore) Set(key string, value []byte) error {
	if key == saltKey {
		return fmt.Errorf("key %q is reserved", key)
	}
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	b, err := json.Marshal(sealed{
		V:      sealFormatVersion,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, value, []byte(key)),
	})
	if err != nil {
		return err
	}

	return s.inner.Set(key, b)
}

// Delete removes key from the underlying store.
func (s *SealedStore) Delete(key string) error { return s.inner.Delete(key) }

// Close wipes the sealing key and closes the wrapped store if it holds
// resources. The store must not be used afterwards.
func (s *SealedStore) Close() error {
	memzero.Zero(s.key)
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func loadOrCreateParams(inner domain.KeyValueStore) (kdfParams, error) {
	b, ok, err := inner.Get(saltKey)
	if err != nil {
		return kdfParams{}, err
	}
	if ok {
		var p kdfParams
		if err := json.Unmarshal(b, &p); err != nil {
			return kdfParams{}, fmt.Errorf("decode seal params: %w", err)
		}
		if p.V > sealFormatVersion {
			return kdfParams{}, fmt.Errorf("unsupported seal version %d", p.V)
		}
		return p, nil
	}

	N, r, p := scryptParamsDefault()
	params := kdfParams{V: sealFormatVersion, Salt: make([]byte, 16), N: N, R: r, P: p}
	if _, err := rand.Read(params.Salt); err != nil {
		return kdfParams{}, err
	}
	b, err = json.Marshal(params)
	if err != nil {
		return kdfParams{}, err
	}
	if err := inner.Set(saltKey, b); err != nil {
		return kdfParams{}, err
	}
	return params, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// Compile-time assertion that SealedStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*SealedStore)(nil)
