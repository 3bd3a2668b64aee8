// Package banner renders the CLI startup banner.
package banner

import "fmt"

const art = `
   ____ ____  ____  __  __ __  __
  / ___/ ___||  _ \|  \/  |  \/  |
 | |  _\___ \| | | | |\/| | |\/| |
 | |_| |___) | |_| | |  | | |  | |
  \____|____/|____/|_|  |_|_|  |_|
`

// Banner returns the startup banner with the version string.
func Banner(version string) string {
	return fmt.Sprintf("%s\n  short text clustering  %s\n\n", art, version)
}
