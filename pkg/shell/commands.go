package shell

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/embedsim/fwcore/pkg/protocol"
	"github.com/embedsim/fwcore/pkg/transport/uartlink"
)

var commands = []*ishell.Cmd{
	&StatusCmd,
	&InitCmd,
	&ShutdownCmd,
	&MemCmd,
	&AllocCmd,
	newUARTCmd(),
	newSPICmd(),
	&SendCmd,
	&HandleCmd,
	&LinkCmd,
}

type statusInfo struct {
	Status    string `json:"status"`
	DeviceID  string `json:"device_id"`
	Protocol  bool   `json:"protocol_initialized"`
	Used      int    `json:"mem_used"`
	Available int    `json:"mem_available"`
}

var (
	// StatusCmd reports the lifecycle and memory state.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			r := RigFrom(c)
			info := statusInfo{
				Status:    r.System.Status().String(),
				DeviceID:  r.System.DeviceID(),
				Protocol:  r.Dispatcher.Initialized(),
				Used:      r.Pool.Used(),
				Available: r.Pool.Available(),
			}
			printResult(c, info, func() {
				c.Printf("system:   %s\n", info.Status)
				c.Printf("device:   %s\n", info.DeviceID)
				c.Printf("protocol: initialized=%v\n", info.Protocol)
				c.Printf("memory:   used=%d available=%d\n", info.Used, info.Available)
			})
		},
	}

	// InitCmd runs the bring-up sequence.
	InitCmd = ishell.Cmd{
		Name: "init",
		Help: "",
		Func: func(c *ishell.Context) {
			if err := RigFrom(c).Up(); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// ShutdownCmd runs the teardown sequence.
	ShutdownCmd = ishell.Cmd{
		Name: "shutdown",
		Help: "",
		Func: func(c *ishell.Context) {
			RigFrom(c).Down()
			c.Println("OK")
		},
	}

	// MemCmd reports pool usage.
	MemCmd = ishell.Cmd{
		Name: "mem",
		Help: "",
		Func: func(c *ishell.Context) {
			pool := RigFrom(c).Pool
			info := map[string]int{
				"capacity":  pool.Capacity(),
				"used":      pool.Used(),
				"available": pool.Available(),
			}
			printResult(c, info, func() {
				c.Printf("capacity=%d used=%d available=%d\n",
					info["capacity"], info["used"], info["available"])
			})
		},
	}

	// AllocCmd allocates from the pool.
	AllocCmd = ishell.Cmd{
		Name: "alloc",
		Help: "SIZE",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("size expected"))
				return
			}
			size, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			pool := RigFrom(c).Pool
			if _, err := pool.Alloc(size); err != nil {
				c.Err(err)
				return
			}
			c.Printf("OK used=%d\n", pool.Used())
		},
	}

	// SendCmd submits a message through Dispatcher.Send.
	SendCmd = ishell.Cmd{
		Name: "send",
		Help: "KIND ID [HEXPAYLOAD]",
		Func: func(c *ishell.Context) {
			msg, err := messageFromArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err := RigFrom(c).Dispatcher.Send(msg); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// HandleCmd routes a message through Dispatcher.Handle.
	HandleCmd = ishell.Cmd{
		Name: "handle",
		Help: "KIND ID [HEXPAYLOAD]",
		Func: func(c *ishell.Context) {
			msg, err := messageFromArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			code, err := RigFrom(c).Dispatcher.Handle(msg)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("OK code=%d\n", code)
		},
	}

	// LinkCmd selects the outbound transport of the dispatcher.
	LinkCmd = ishell.Cmd{
		Name: "link",
		Help: "uart|none",
		Func: func(c *ishell.Context) {
			r := RigFrom(c)
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("uart or none expected"))
				return
			}
			switch c.Args[0] {
			case "uart":
				r.Dispatcher.Transport = uartlink.New(r.UART)
			case "none":
				r.Dispatcher.Transport = nil
			default:
				c.Err(fmt.Errorf("uart or none expected"))
				return
			}
			c.Println("OK")
		},
	}
)

func messageFromArgs(args []string) (*protocol.Message, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("kind and id expected")
	}
	kind, err := protocol.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return nil, err
	}
	msg := &protocol.Message{Kind: kind, ID: uint32(id)}
	if len(args) > 2 {
		if msg.Payload, err = hex.DecodeString(args[2]); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

func newUARTCmd() *ishell.Cmd {
	cmd := &ishell.Cmd{
		Name: "uart",
		Help: "init|send|recv",
	}
	cmd.AddCmd(&ishell.Cmd{
		Name: "init",
		Help: "",
		Func: func(c *ishell.Context) {
			if !RigFrom(c).UART.Init() {
				c.Err(fmt.Errorf("uart init refused: system not ready"))
				return
			}
			c.Println("OK")
		},
	})
	cmd.AddCmd(&ishell.Cmd{
		Name: "send",
		Help: "TEXT",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("text expected"))
				return
			}
			n := RigFrom(c).UART.SendString(c.Args[0])
			if n < 0 {
				c.Err(fmt.Errorf("uart not initialized"))
				return
			}
			c.Printf("sent %d bytes\n", n)
		},
	})
	cmd.AddCmd(&ishell.Cmd{
		Name: "recv",
		Help: "",
		Func: func(c *ishell.Context) {
			buf := make([]byte, 1)
			n := RigFrom(c).UART.Receive(buf)
			if n < 0 {
				c.Err(fmt.Errorf("uart not initialized"))
				return
			}
			c.Printf("received %d bytes: %s\n", n, hex.EncodeToString(buf[:n]))
		},
	})
	return cmd
}

func newSPICmd() *ishell.Cmd {
	cmd := &ishell.Cmd{
		Name: "spi",
		Help: "init|xfer|cs",
	}
	cmd.AddCmd(&ishell.Cmd{
		Name: "init",
		Help: "",
		Func: func(c *ishell.Context) {
			if !RigFrom(c).SPI.Init() {
				c.Err(fmt.Errorf("spi init refused: system not ready"))
				return
			}
			c.Println("OK")
		},
	})
	cmd.AddCmd(&ishell.Cmd{
		Name: "xfer",
		Help: "HEXDATA",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("hex data expected"))
				return
			}
			tx, err := hex.DecodeString(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			rx := RigFrom(c).SPI.Transfer(tx)
			if len(rx) == 0 && len(tx) > 0 {
				c.Err(fmt.Errorf("spi not initialized"))
				return
			}
			c.Printf("rx: %s\n", hex.EncodeToString(rx))
		},
	})
	cmd.AddCmd(&ishell.Cmd{
		Name: "cs",
		Help: "on|off",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 || (c.Args[0] != "on" && c.Args[0] != "off") {
				c.Err(fmt.Errorf("on or off expected"))
				return
			}
			RigFrom(c).SPI.SetCS(c.Args[0] == "on")
			c.Println("OK")
		},
	})
	return cmd
}
