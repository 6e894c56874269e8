package main

import "github.com/theirongolddev/dinebal/cmd"

func main() {
	cmd.Execute()
}
