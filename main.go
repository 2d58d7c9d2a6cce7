package main

import "inventory-vault/cmd"

func main() {
	cmd.Execute()
}
