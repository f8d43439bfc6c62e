package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// State holds an account's decoded identity secret, used to sign mobile
// confirmation requests. It keeps no clock of its own; callers supply the
// timestamp so a signature can be reproduced exactly.
type State struct {
	identitySecret []byte
}

func NewState(identitySecret string) (*State, error) {
	identityKey, err := base64.StdEncoding.DecodeString(identitySecret)
	if err != nil {
		return nil, fmt.Errorf("error decoding identity secret: %s", err)
	}

	return &State{identitySecret: identityKey}, nil
}

// GenerateConfirmationKey computes the base64 HMAC-SHA1 over the big-endian
// unix timestamp followed by the tag bytes. Steam ignores tag bytes past 32.
func (s State) GenerateConfirmationKey(useTime time.Time, tag string) (string, error) {
	tagBytes := []byte(tag)
	if len(tagBytes) > 32 {
		tagBytes = tagBytes[:32]
	}

	buffer := make([]byte, 8+len(tagBytes))
	binary.BigEndian.PutUint64(buffer, uint64(useTime.Unix()))
	copy(buffer[8:], tagBytes)

	hmacHash := hmac.New(sha1.New, s.identitySecret)
	if _, err := hmacHash.Write(buffer); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(hmacHash.Sum(nil)), nil
}

// GetDeviceID derives the stable android device identifier Steam expects
// alongside a confirmation key: the hex SHA-1 of the steam id, grouped
// 8-4-4-4-12.
func GetDeviceID(steamID string) string {
	checksum := sha1.Sum([]byte(steamID))
	hexed := hex.EncodeToString(checksum[:])
	return fmt.Sprintf(
		"android:%s-%s-%s-%s-%s",
		hexed[:8], hexed[8:12], hexed[12:16], hexed[16:20], hexed[20:32],
	)
}
