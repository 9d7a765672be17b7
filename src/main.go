package main

import (
	"github.com/mvmtool/mvm/src/cmd"
)

func main() {
	cmd.Execute()
}
