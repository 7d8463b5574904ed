package main

import "officetime/internal/app/server"

func main() {
	server.Run()
}
