package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and probe rays")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "level.yaml", "level prefab in prefabs/")
	headless := flag.Bool("headless", false, "run without a window and log where the player settles")
	ticks := flag.Int("ticks", 300, "ticks to simulate with -headless")
	watch := flag.Bool("watch", true, "hot reload controller tuning when prefabs change")
	flag.Parse()

	if *headless {
		if err := runHeadless(*levelName, *ticks); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("floater")
	ebiten.SetTPS(ticksPerSecond)

	game, err := NewGame(*levelName, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
