//go:build cli
// +build cli

package main

import (
	_ "sportloan.GO/custom"

	"sportloan.GO/cmd"
	"sportloan.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
