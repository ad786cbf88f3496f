// Package cli provides the interactive gate client.
//
// It wires configuration, the local pass cache, the directory client, the
// connectivity monitor and the verification facade behind a small REPL.
// Typical flow: restore the saved session, probe the directory, start the
// monitor (which fills an empty cache as soon as the device is online) and
// serve guard commands.
//
// Key features:
//   - Plate, id and QR lookups answered from the cache, online or not
//   - Manual sync, refused while offline
//   - Status line with mode, cached pass count and last sync time
//   - Directory administration: issue and revoke passes, create users
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
