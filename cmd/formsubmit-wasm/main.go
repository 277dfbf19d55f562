//go:build js && wasm

// Command formsubmit-wasm binds the submission controller to the host page
// served by formsubmit-server. It only links the controller, model and
// transport packages so the binary stays small.
package main

import (
	"context"
	"log"
	"os"
	"syscall/js"
	"time"

	"github.com/goliatone/go-formsubmit/pkg/model"
	"github.com/goliatone/go-formsubmit/pkg/submit"
	"github.com/goliatone/go-formsubmit/pkg/transport"
	"github.com/goliatone/go-formsubmit/pkg/view/dom"
)

const requestTimeout = 10 * time.Second

func main() {
	logger := log.New(os.Stderr, "formsubmit: ", 0)
	ctx := context.Background()

	doc := dom.New()
	doc.Ready(func() {
		fields := model.BaseFields()
		if doc.Has("email") {
			fields = model.EmailFields()
		}

		origin := js.Global().Get("location").Get("origin").String()
		tr, err := transport.NewHTTP(origin, transport.WithTimeout(requestTimeout))
		if err != nil {
			logger.Printf("transport: %v", err)
			return
		}
		ctrl, err := submit.New(fields, doc, tr, submit.WithLogger(logger))
		if err != nil {
			logger.Printf("controller: %v", err)
			return
		}
		if err := ctrl.Bind(ctx, doc); err != nil {
			logger.Printf("bind: %v", err)
		}
	})

	select {}
}
