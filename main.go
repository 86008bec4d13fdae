package main

import "nathanbeddoewebdev/donorlens/cmd"

func main() {
	cmd.Execute()
}
