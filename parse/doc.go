// Package parse parses TOML text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse([]byte("title = \"My App\"\n[server]\nport = 8080\n"))
//	if err != nil {
//	    return err
//	}
//
//	// Import JSON or YAML instead
//	node, err := parse.Parse(data, parse.ParseFormat(format.YAMLFormat))
//
// Only the TOML subset the IR can hold is accepted. Dates, times and arrays
// of tables produce a *GapError wrapping ErrUnsupported; malformed input
// produces an error wrapping ErrParse.
//
// # Related Packages
//
//   - github.com/signadot/tomledit/ir - IR representation
//   - github.com/signadot/tomledit/encode - Encode IR to text
package parse
