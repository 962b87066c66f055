package utils

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewObjectID generates a 24-character hex identifier: a 4-byte unix
// timestamp prefix followed by 8 random bytes, so identifiers sort roughly
// by creation time.
func NewObjectID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// IsValidObjectID reports whether id has the 24-character hex shape.
// A malformed id is a client error, not a lookup miss.
func IsValidObjectID(id string) bool {
	return objectIDPattern.MatchString(id)
}
