/*
 * akircd is a multi-user IRC chat relay server.
 */
package main

import "log"

func main() {
	args := getArgs()

	config := defaultConfig()
	if args.ConfigFile != "" {
		loaded, err := loadConfig(args.ConfigFile)
		if err != nil {
			log.Fatalf("load config: %s", err)
		}
		config = loaded
	}

	server := NewServer(config)
	if err := server.ListenAndServe(args.ListenAddr); err != nil {
		log.Fatalf("serve: %s", err)
	}
}
