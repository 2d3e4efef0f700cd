package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/prettycat/pkg/pipeline"
)

func main() {
	// The pager may kill us mid-render; scratch directories must not
	// outlive the process either way.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-interrupts
		pipeline.ReleaseAll()
		os.Exit(130)
	}()

	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
