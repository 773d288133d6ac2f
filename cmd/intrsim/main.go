// Command intrsim replays an interrupt/FORK/EXEC trace and writes the
// execution timeline and the system status snapshots it produces.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
