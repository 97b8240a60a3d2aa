package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/Giulia1955/Trabalho-Computacional/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	static := flag.String("static", "static", "directory with index.html and help.html")
	flag.Parse()

	router := server.New(*static).Router()
	log.Println("Server listening on", *addr)
	log.Println("Static files served from:", *static)
	log.Fatal(http.ListenAndServe(*addr, router))
}
