// main.go - thin host wrapper around the i8086 core: load a raw binary,
// run it for a bounded number of steps (or until fault), print the
// stable register dump.
//
// This is exactly the kind of host-side loader/CLI the core itself
// deliberately stays out of; compare cmd/ie32to64 in the donor codebase.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zotley/i8086core"
)

var (
	loadAddr uint32
	entryIP  uint16
	entryCS  uint16
	maxSteps int
)

func main() {
	root := &cobra.Command{
		Use:   "i8086dump <binary>",
		Short: "Load raw 8086 machine code, step it, print the register dump",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	root.Flags().Uint32Var(&loadAddr, "load-addr", 0x100, "physical address to load the binary at")
	root.Flags().Uint16Var(&entryCS, "cs", 0x0000, "initial CS")
	root.Flags().Uint16Var(&entryIP, "ip", 0x0100, "initial IP")
	root.Flags().IntVar(&maxSteps, "max-steps", 1, "number of instructions to execute (0 = run until fault)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cpu := i8086.New()
	cpu.Load(loadAddr, data)
	cpu.StateMut().WriteSeg(i8086.SegCS, entryCS)
	cpu.StateMut().WriteIP(entryIP)

	steps := 0
	for maxSteps == 0 || steps < maxSteps {
		if err := cpu.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "i8086dump: fault after %d steps: %v\n", steps, err)
			break
		}
		steps++
	}

	fmt.Println(cpu.Dump())
	return nil
}
