package main

import "github.com/ValentinKolb/pdict/cmd"

func main() {
	cmd.Execute()
}
