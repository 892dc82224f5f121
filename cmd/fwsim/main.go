package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/embedsim/fwcore/pkg/config"
	"github.com/embedsim/fwcore/pkg/mempool"
	"github.com/embedsim/fwcore/pkg/protocol"
	"github.com/embedsim/fwcore/pkg/protocol/gen"
	"github.com/embedsim/fwcore/pkg/run"
	"github.com/embedsim/fwcore/pkg/system"
	"github.com/embedsim/fwcore/pkg/transport/mqttlink"
	"github.com/embedsim/fwcore/pkg/worker"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the firmware configuration file.")
}

func main() {
	flag.Parse()
	code := firmwareMain()
	glog.Flush()
	os.Exit(code)
}

func firmwareMain() int {
	fmt.Println("=== Embedded System Firmware ===")
	fmt.Printf("Version: %s\n", system.Version)
	fmt.Printf("Build type: %s\n", system.BuildType)

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			glog.Errorf("load config: %v", err)
			return 1
		}
	}
	if err := config.Validate(cfg); err != nil {
		glog.Errorf("invalid config: %v", err)
		return 1
	}

	pool := mempool.New(cfg.Firmware.PoolCapacity)
	sys := system.New(pool)
	if err := sys.ApplyConfig(cfg); err != nil {
		glog.Errorf("apply config: %v", err)
		return 1
	}
	fmt.Printf("Device: %s\n", sys.DeviceID())

	if err := sys.Init(); err != nil {
		glog.Errorf("system initialization failed: %v", err)
		return 1
	}

	dispatcher := protocol.New()
	if brokerURL := cfg.Firmware.Transport.MQTTURL; brokerURL != "" {
		t, err := mqttlink.NewFromURL(brokerURL)
		if err != nil {
			glog.Errorf("protocol transport failed: %v", err)
			sys.Shutdown()
			return 1
		}
		defer t.Close()
		dispatcher.Transport = t
	}
	dispatcher.Init(gen.Table())

	err := run.NewRunner().
		HandleSignals().
		Go(worker.New(pool, dispatcher)).
		Wait()

	dispatcher.Cleanup()
	sys.Shutdown()

	if err != nil {
		glog.Errorf("worker failed: %v", err)
		return 1
	}
	fmt.Println("Firmware exited successfully")
	return 0
}
