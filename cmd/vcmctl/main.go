package main

import "github.com/vcm-medical/vcmclient/internal/cli"

func main() {
	cli.Execute()
}
