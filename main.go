package main

import "github.com/CheeloHamududu/Toyota-GR-Cup-Race-Analytics-Dashboard/cmd"

func main() {
	cmd.Execute()
}
