package main

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/billbird/arith32"
)

func main() {
	flag.Parse()
	if err := arith32.Decompress(os.Stdout, os.Stdin, arith32.TextModel()); err != nil {
		log.Fatalf("%+v", err)
	}
}
