// Command courseplan renders course plans from the command line.
//
//	courseplan render plan.md --locale en --format html
//	courseplan sections - < plan.md
//	courseplan annotate "a) Vidéo d'expert, 3'23"
//	courseplan course 42
package main

import (
	"os"
)

func main() {
	cli := newCommandLine(os.Stdin, os.Stdout, os.Stderr)
	if err := cli.execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
