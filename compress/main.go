package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/billbird/arith32"
)

var prof = flag.Bool("profile", false, "write a CPU profile to the current directory")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] < input > output\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *prof {
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
		defer p.Stop()
	}

	if err := arith32.Compress(os.Stdout, os.Stdin, arith32.TextModel()); err != nil {
		log.Fatalf("%+v", err)
	}
}
