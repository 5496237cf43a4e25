// Command buildshell renders the HTML page that hosts the WebAssembly build.
package main

import (
	"flag"
	"log"

	"github.com/younwookim/pixelrun/internal/infrastructure/page"
)

func main() {
	src := flag.String("src", "", "Page template (empty = built-in)")
	data := flag.String("data", "cmd/buildshell/shell.yaml", "Page data YAML (empty = defaults)")
	out := flag.String("out", "build/game.html", "Output file")
	flag.Parse()

	if err := page.Build(*src, *data, *out); err != nil {
		log.Fatalf("Failed to build page: %v", err)
	}
	log.Printf("Page written: %s", *out)
}
