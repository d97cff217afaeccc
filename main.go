package main

import (
	"os"
	"runtime/debug"

	"tickchain/cmd"
	"tickchain/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("PROCESS CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
