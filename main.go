package main

import (
	"os"
)

func main() {
	d := newDriver()
	if err := d.Drive(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
