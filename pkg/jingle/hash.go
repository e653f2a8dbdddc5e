// Copyright 2026 The parley Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jingle

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// XEP-0300 hash algorithm names.
const (
	HashSHA1       = "sha-1"
	HashSHA256     = "sha-256"
	HashSHA512     = "sha-512"
	HashSHA3256    = "sha3-256"
	HashSHA3512    = "sha3-512"
	HashBLAKE2b256 = "blake2b-256"
	HashBLAKE2b512 = "blake2b-512"
)

// ErrUnsupportedHash is returned for an unknown hash algorithm.
var ErrUnsupportedHash = errors.New("jingle: unsupported hash algorithm")

// strongest first
var hashPreference = []string{
	HashBLAKE2b512,
	HashSHA3512,
	HashSHA512,
	HashBLAKE2b256,
	HashSHA3256,
	HashSHA256,
	HashSHA1,
}

var hashFuncs = map[string]func() hash.Hash{
	// compatibility digest, not a security boundary
	HashSHA1:       sha1.New,
	HashSHA256:     sha256.New,
	HashSHA512:     sha512.New,
	HashSHA3256:    sha3.New256,
	HashSHA3512:    sha3.New512,
	HashBLAKE2b256: newBLAKE2b256,
	HashBLAKE2b512: newBLAKE2b512,
}

func newBLAKE2b256() hash.Hash {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	return h
}

func newBLAKE2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}

// HashValue is a digest tagged with its algorithm.
type HashValue struct {
	Algo string
	Sum  []byte
}

func newHash(algo string) (hash.Hash, error) {
	fn, ok := hashFuncs[algo]
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedHash, algo)
	}
	return fn(), nil
}

// strongestHash picks the strongest supported digest out of hs.
func strongestHash(hs []HashValue) (HashValue, bool) {
	for _, algo := range hashPreference {
		for _, h := range hs {
			if h.Algo == algo && len(h.Sum) > 0 {
				return h, true
			}
		}
	}
	return HashValue{}, false
}

func digest(r io.Reader, algo string) ([]byte, error) {
	h, err := newHash(algo)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
