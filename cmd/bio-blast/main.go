package main

import "github.com/grailbio/blast/cmd/bio-blast/cmd"

func main() {
	cmd.Run()
}
