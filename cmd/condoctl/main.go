package main

import "condoadmin/cmd/condoctl/cmd"

func main() {
	cmd.Execute()
}
