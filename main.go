package main

import "github.com/SudhakarYogaraj/dgtri/cmd"

func main() {
	cmd.Execute()
}
