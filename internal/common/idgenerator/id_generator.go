// Package idgenerator produces the string ids attached to events and requests.
// Ids are time-ordered so that log lines and broker records sort naturally.
package idgenerator

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=id_generator.go -destination=mock/id_generator_mock.go -package=mock

type Generator interface {
	Generate(prefixes ...string) string
}

type IDGenerator struct{}

func New() Generator {
	return &IDGenerator{}
}

// Generate returns "<prefix>-<uuidv7>" where the prefixes are joined with "-".
// Without a prefix the bare uuid is returned.
func (g *IDGenerator) Generate(prefixes ...string) string {
	id := newUUID().String()

	prefix := strings.Join(prefixes, "-")
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// Short is a compact url-safe rendering, used for request ids in headers.
func Short() string {
	id := newUUID()
	return base64.RawURLEncoding.EncodeToString(id[:])
}

func newUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
