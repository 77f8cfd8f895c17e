package main

import "github.com/maniapool/osu-brackets/internal/cli"

func main() {
	cli.Execute()
}
