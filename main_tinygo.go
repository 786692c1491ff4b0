//go:build tinygo

package main

import (
	"dotlcd/app"
	"dotlcd/hal"
)

func main() {
	h := hal.New()
	if err := app.Run(h, app.DefaultConfig(), 30); err != nil {
		h.Logger().WriteLineString("dotlcd: " + err.Error())
	}
	select {}
}
