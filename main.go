package main

import "nathanbeddoewebdev/subdns/cmd"

func main() {
	cmd.Execute()
}
