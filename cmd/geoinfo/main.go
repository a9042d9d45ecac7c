// geoinfo is a CLI utility that prints statistics of geodesic meshes.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/spaceship-earth/internal/geodesic"
)

var p = message.NewPrinter(language.English)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "levels":
		cmdLevels()
	case "info":
		cmdInfo(args)
	case "edges":
		cmdEdges(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`geoinfo - geodesic sphere statistics

Usage:
  geoinfo <command> [options]

Commands:
  levels                              Show panel and point counts of every level
  info  [-level N] [-radius R]        Generate and validate one mesh
  edges [-level N] [-threshold DEG]   Count outline edges of one mesh

Examples:
  geoinfo levels
  geoinfo info -level 5
  geoinfo edges -level 3 -threshold 5`)
}

func cmdLevels() {
	p.Printf("%-6s %10s %10s\n", "level", "panels", "points")
	for level := geodesic.MinLevel; level <= geodesic.MaxLevel; level++ {
		marker := ""
		if level == geodesic.DefaultLevel {
			marker = " (default)"
		}
		p.Printf("%-6d %10d %10d%s\n", level,
			geodesic.TriangleCountForLevel(level), geodesic.VertexCountForLevel(level), marker)
	}
}

func meshFlags(name string, args []string, extra func(*flag.FlagSet)) (*geodesic.Mesh, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	level := fs.Int("level", geodesic.DefaultLevel, "Subdivision level")
	radius := fs.Float64("radius", geodesic.DefaultRadius, "Sphere radius")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return geodesic.Generate(*level, *radius)
}

func cmdInfo(args []string) {
	m, err := meshFlags("info", args, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p.Printf("Level:      %d\n", m.Level)
	p.Printf("Radius:     %g\n", m.Radius)
	p.Printf("Panels:     %d\n", m.TriangleCount())
	p.Printf("Points:     %d\n", m.VertexCount())
	p.Printf("Positions:  %d\n", len(m.Positions))

	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid mesh: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Valid:      yes")
}

func cmdEdges(args []string) {
	var threshold *float64
	m, err := meshFlags("edges", args, func(fs *flag.FlagSet) {
		threshold = fs.Float64("threshold", geodesic.DefaultEdgeThreshold, "Dihedral angle in degrees")
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	edges := geodesic.SharpEdges(m, *threshold)
	p.Printf("Level %d, threshold %g°: %d outline edges\n", m.Level, *threshold, len(edges))
}
