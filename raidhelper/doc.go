// Package raidhelper fetches Raid-Helper event payloads and renders their
// signups as plain text.
package raidhelper
