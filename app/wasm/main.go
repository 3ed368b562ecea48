//go:build js && wasm

// Command wasm is the browser side of the theme switch, built with GOOS=js GOARCH=wasm
// and loaded by the page next to wasm_exec.js.
package main

import (
	log "github.com/go-pkgz/lgr"

	"github.com/tinybbs/bbs/app/theme"
)

func main() {
	log.Setup(log.Msec)

	doc := theme.NewBrowserDocument()
	ctrl := theme.New(doc, theme.NewLocalStorage(), theme.MediaEnv{})
	ctrl.Start()

	// click handlers are Go callbacks, the program must stay alive for the page lifetime
	select {}
}
