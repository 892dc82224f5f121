// Package shell provides the ishell backed console for poking one
// simulated firmware instance.
package shell

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/embedsim/fwcore/pkg/config"
	"github.com/embedsim/fwcore/pkg/drivers"
	"github.com/embedsim/fwcore/pkg/mempool"
	"github.com/embedsim/fwcore/pkg/protocol"
	"github.com/embedsim/fwcore/pkg/protocol/gen"
	"github.com/embedsim/fwcore/pkg/system"
)

// Rig bundles the components the console operates on.
type Rig struct {
	Pool       *mempool.Pool
	System     *system.System
	Dispatcher *protocol.Dispatcher
	UART       *drivers.UART
	SPI        *drivers.SPI
}

// NewRig builds a rig from the configuration.
func NewRig(cfg *config.Config) *Rig {
	pool := mempool.New(cfg.Firmware.PoolCapacity)
	sys := system.New(pool)
	return &Rig{
		Pool:       pool,
		System:     sys,
		Dispatcher: protocol.New(),
		UART:       drivers.NewUART(sys, cfg.Firmware.UART.BaudRate),
		SPI:        drivers.NewSPI(sys, cfg.Firmware.SPI.ClockHz, drivers.Mode(cfg.Firmware.SPI.Mode)),
	}
}

// Up runs the firmware bring-up sequence.
func (r *Rig) Up() error {
	if err := r.System.Init(); err != nil {
		return err
	}
	r.Dispatcher.Init(gen.Table())
	return nil
}

// Down runs the teardown sequence. Safe in any state.
func (r *Rig) Down() {
	r.UART.Close()
	r.SPI.Close()
	r.Dispatcher.Cleanup()
	r.System.Shutdown()
}

// Shell wraps ishell around a rig.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell *ishell.Shell
	Rig   *Rig
}

const (
	shellKey = "$shell"
	prompt   = "fw > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell over rig.
func New(rig *Rig) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell: ishell.New(),
		Rig:   rig,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// RigFrom gets the rig from ishell context.
func RigFrom(c *ishell.Context) *Rig {
	return ShellFrom(c).Rig
}

// printResult prints v either as JSON or with the plain formatter.
func printResult(c *ishell.Context, v interface{}, plain func()) {
	if ShellFrom(c).OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	plain()
}

// Run runs the shell, either processing args in eval mode or
// interactively.
func (s *Shell) Run(args ...string) {
	defer s.Rig.Down()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}
