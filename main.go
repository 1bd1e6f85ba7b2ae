package main

import "mdmend/cmd"

func main() {
	cmd.Execute()
}
