// Package format names the text formats tomledit reads and writes.
//
// TOML is the native format of edited documents; JSON and YAML are offered
// for import and export.
//
// # Related Packages
//
//   - github.com/signadot/tomledit/parse - Parse text to IR
//   - github.com/signadot/tomledit/encode - Encode IR to text
package format
