package main

import "github.com/KaramelBytes/sectorlens/cmd"

func main() {
	cmd.Execute()
}
