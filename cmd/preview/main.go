// Command preview opens a desktop window with the portfolio backdrops
// layered as on the page. Number keys toggle layers, the mouse wheel
// scrolls the imaginary page.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/preview"
)

func main() {
	cfg := config.Load()
	scenePath := flag.String("scene", cfg.SceneFile, "scene file (empty for the built-in scene)")
	themeName := flag.String("theme", "", "theme name (default: the scene's theme)")
	only := flag.String("backdrops", "", "comma-separated backdrop names to show (default: all)")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	flag.Parse()

	scene, err := config.LoadScene(*scenePath)
	if err != nil {
		log.Fatal(err)
	}
	pal, err := scene.Palette(*themeName)
	if err != nil {
		log.Fatal(err)
	}

	var specs []preview.LayerSpec
	for _, b := range scene.Backdrops {
		if *only != "" && !contains(strings.Split(*only, ","), b.Name) {
			continue
		}
		v, opts, err := b.Options()
		if err != nil {
			log.Fatalf("backdrop %q: %v", b.Name, err)
		}
		specs = append(specs, preview.LayerSpec{Name: b.Name, Variant: v, Options: opts})
	}

	game, err := preview.NewGame(pal, specs, *width, *height)
	if err != nil {
		log.Fatal(err)
	}
	if err := preview.Run(game, "Portfolio backdrops"); err != nil {
		log.Fatal(err)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.TrimSpace(v) == s {
			return true
		}
	}
	return false
}
