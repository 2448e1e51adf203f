package main

import (
	"flag"
)

// Args are command line arguments. Adapted from the teacher's getArgs:
// config is now optional (falling back to defaultConfig) since this spec
// has no requirement that the server always be configured from a file,
// and the TS6-only -sid flag is dropped along with server linking.
type Args struct {
	ConfigFile string
	ListenAddr string
}

func getArgs() *Args {
	configFile := flag.String("conf", "", "Configuration file. Optional; built-in defaults are used if omitted.")
	listenAddr := flag.String("listen-addr", "", "Listen address, overriding the config's listen-host/listen-port.")

	flag.Parse()

	return &Args{
		ConfigFile: *configFile,
		ListenAddr: *listenAddr,
	}
}
