/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tristendillon/antigravity/cmd"

func main() {
	cmd.Execute()
}
