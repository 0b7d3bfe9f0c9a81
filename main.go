package main

import "github.com/mouse-blink/predeploy/cmd"

func main() {
	cmd.Execute()
}
