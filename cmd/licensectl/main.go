// Command licensectl administers the plugin license of a running bkap server,
// dismisses admin notices and issues vendor dashboard tokens.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
