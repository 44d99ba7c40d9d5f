package main

import "github.com/kamal-hamza/sfs-cli/cmd"

func main() {
	cmd.Execute()
}
