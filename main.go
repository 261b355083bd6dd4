/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/converter-api/cmd"

// @title           Video to MP3 Converter API
// @version         1.0.0
// @description     Upload a video and download its audio track as MP3
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/converter-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
