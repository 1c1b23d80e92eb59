// Package encode encodes IR nodes to TOML text.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "title":  ir.FromString("My App"),
//	    "server": ir.FromMap(map[string]*ir.Node{"port": ir.FromInt(8080)}),
//	})
//	err := encode.Encode(node, os.Stdout)
//
// writes
//
//	title = "My App"
//
//	[server]
//	port = 8080
//
// Output is deterministic: keys are sorted, the non-table entries of a table
// come before its sub-tables, and every table gets a header.
//
//	// Export as JSON or YAML
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
// # Related Packages
//
//   - github.com/signadot/tomledit/ir - IR representation
//   - github.com/signadot/tomledit/parse - Parse text to IR
package encode
