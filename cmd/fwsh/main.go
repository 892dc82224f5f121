package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/embedsim/fwcore/pkg/config"
	"github.com/embedsim/fwcore/pkg/shell"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the firmware configuration file.")
}

func main() {
	flag.Parse()
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatalln(err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalln(err)
	}
	shell.New(shell.NewRig(cfg)).Run(flag.Args()...)
}
