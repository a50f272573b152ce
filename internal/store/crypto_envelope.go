package store

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"ptjobs/internal/util/memzero"
)

const (
	// The current supported version of the sealed value format.
	sealFormatVersion = 1
)

// ScryptParams tunes key derivation for sealed values.
type ScryptParams struct {
	N, R, P int
}

// DefaultScryptParams matches the interactive-login recommendation.
func DefaultScryptParams() ScryptParams { return ScryptParams{N: 1 << 15, R: 8, P: 1} }

// sealed is the JSON structure stored (base64-wrapped) in place of a value.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw, binding it to ad.
func seal(passphrase string, ad, raw []byte, params ScryptParams) (string, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is single-use
	ct := aead.Seal(nil, nonce[:], raw, append(salt[:], ad...))

	b, err := json.Marshal(sealed{
		V:      sealFormatVersion,
		Salt:   salt[:],
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Cipher: ct,
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// unseal reverses seal. Every decoding or authentication failure is ErrCorrupted.
func unseal(passphrase string, ad []byte, value string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: not a sealed value", ErrCorrupted)
	}
	var sl sealed
	if err := json.Unmarshal(b, &sl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if sl.V > sealFormatVersion {
		return nil, fmt.Errorf("%w: unsupported seal version %d", ErrCorrupted, sl.V)
	}

	key, err := scrypt.Key([]byte(passphrase), sl.Salt, sl.N, sl.R, sl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], sl.Cipher, append(sl.Salt, ad...))
	if err != nil {
		return nil, fmt.Errorf("%w: wrong passphrase or tampered value", ErrCorrupted)
	}
	return pt, nil
}
