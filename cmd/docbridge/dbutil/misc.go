package dbutil

import "os"

// CanReadFromStandardInput returns whether there is data to be read
// in stdin.
func CanReadFromStandardInput() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	m := fi.Mode()
	return (m & os.ModeNamedPipe) != 0
}
