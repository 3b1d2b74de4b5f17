package utils

import (
  "crypto/rand"
  "encoding/hex"
)

// IssueToken returns an opaque, unguessable token for assessment links and
// invitations. Uniqueness is enforced by the unique column constraint on the
// owning row; on a collision the insert fails and the caller retries with a
// fresh token.
func IssueToken() string {
  buf := make([]byte, 24)
  if _, err := rand.Read(buf); err != nil {
    // crypto/rand never fails on supported platforms
    panic(err)
  }
  return hex.EncodeToString(buf)
}
