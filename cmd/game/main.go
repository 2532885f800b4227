package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Grid-Mode/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var online bool
	var rounds int
	var seed int64
	var storePath string

	defaultPath, err := game.DefaultStorePath()
	if err != nil {
		log.Printf("store: %v", err)
	}

	flag.BoolVar(&online, "online", false, "start in the online custom lobby")
	flag.IntVar(&rounds, "rounds", 5, "rounds per game")
	flag.Int64Var(&seed, "seed", 0, "RNG seed for removal order and scenes (0 = time based)")
	flag.StringVar(&storePath, "store", defaultPath, "path of the persisted flag store (empty = in-memory)")
	flag.Parse()

	var store game.Store = game.NewMemStore()
	if storePath != "" {
		fs, err := game.OpenFileStore(storePath)
		if err != nil {
			log.Printf("store: %v, using in-memory flags", err)
		} else {
			store = fs
		}
	}

	g := game.New(game.Options{
		Online: online,
		Rounds: rounds,
		Seed:   seed,
		Store:  store,
	})
	ebiten.SetWindowTitle("Grid Mode")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
