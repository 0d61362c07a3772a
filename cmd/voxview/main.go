package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"voxview/internal/config"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("voxview: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("voxview: glfw init: %v", err)
	}

	v, err := setupViewer(cfg)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln("voxview:", err)
	}
	// Workers are stopped on Ctrl+C too; GL teardown happens on the main
	// thread after the loop returns.
	closer.Bind(v.closeWorkers)

	v.run()

	v.dispose()
	glfw.Terminate()
	closer.Close()
}
