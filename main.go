package main

import "github.com/khanhnv2901/p2psec/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
