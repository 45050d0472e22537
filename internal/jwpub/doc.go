// Package jwpub extracts schedules from JWPUB containers.
//
// A JWPUB is a ZIP whose "contents" member is itself a ZIP holding an
// SQLite database; each Document row stores its HTML AES-128-CBC encrypted
// and DEFLATE compressed. The key and IV derive deterministically from the
// Publication row, so the whole pipeline runs without external key input.
// The derivation recipe is a format constant shared by every reader, not a
// secret.
package jwpub
