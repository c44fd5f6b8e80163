package display

import (
	"fmt"
	"os"

	"github.com/backmassage/shardset/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____  _                   _ ____       _
/ ___|| |__   __ _ _ __ __| / ___|  ___| |_
\___ \| '_ \ / _`+"`"+` | '__/ _`+"`"+` \___ \ / _ \ __|
 ___) | | | | (_| | | | (_| |___) |  __/ |_
|____/|_| |_|\__,_|_|  \__,_|____/ \___|\__|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
