package main

import "github.com/theirongolddev/dompet/cmd"

func main() {
	cmd.Execute()
}
