//go:build cli
// +build cli

package main

import (
	_ "warehouse.GO/custom"

	"warehouse.GO/cmd"
	"warehouse.GO/config"
)

func main() {
	config.LoadEnv()
	config.InitRedis()
	cmd.Execute()
}
