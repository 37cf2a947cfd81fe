package main

import "github.com/SoarinFerret/AppWarden/cmd/awctl/arg"

func main() {
	arg.Execute()
}
