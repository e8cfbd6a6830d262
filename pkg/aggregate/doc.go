// Package aggregate groups provider entries by provider_slug. The first
// qualifying entry of a slug supplies the group's base fields; every
// qualifying entry, the first included, is appended to data_points in load
// order. Entries whose build flag is falsy are dropped.
package aggregate
