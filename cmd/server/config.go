package main

import t "github.com/timeful/ics-server/types"

// appConfig is built once at process start (file, env, flags) and injected
// into every component that needs it.
var appConfig = struct {
	AppName string

	Port string
	Env  string `default:"development"`

	// Client holds the third-party keys exposed to the web client.
	Client t.ClientConfig `yaml:"client"`
}{
	AppName: "Timeful ICS Server",
	Port:    "3000",
}
