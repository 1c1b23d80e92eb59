package document

import "strings"

const ReadyStatus = "Ready."

type StatusClass string

const (
	StatusNone StatusClass = ""
	StatusOK   StatusClass = "ok"
	StatusErr  StatusClass = "err"
)

var (
	okPrefixes  = []string{"Loaded", "Saved"}
	errPrefixes = []string{"Error", "File not found", "Install", "No path", "Unknown command"}
)

// ClassifyStatus reports whether a status message announces success or
// failure. Other messages are StatusNone.
func ClassifyStatus(s string) StatusClass {
	if s == ReadyStatus {
		return StatusOK
	}
	for _, p := range okPrefixes {
		if strings.HasPrefix(s, p) {
			return StatusOK
		}
	}
	for _, p := range errPrefixes {
		if strings.HasPrefix(s, p) {
			return StatusErr
		}
	}
	return StatusNone
}
