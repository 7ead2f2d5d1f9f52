package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/echomaze/level"
	"github.com/lixenwraith/echomaze/maze"
)

var yamlFlag = flag.Bool("yaml", false, "Print each maze as a level pack entry")

func main() {
	flag.Parse()
	reader := bufio.NewReader(os.Stdin)

	for id := 1; ; id++ {
		fmt.Println("\n=== ECHOMAZE GENERATOR ===")

		w := getInt(reader, "Columns [odd preferred] (default 15): ", 15)
		h := getInt(reader, "Rows [odd preferred] (default 15): ", 15)
		conn := getInt(reader, "Extra connectors (default 0): ", 0)
		braid := getFloat(reader, "Braiding factor [0.0 - 1.0] (default 0.0): ", 0.0)
		seed := getInt(reader, "Seed [0 = random] (default 0): ", 0)

		cfg := maze.Config{
			Cols:            w,
			Rows:            h,
			ExtraConnectors: conn,
			Braiding:        braid,
			Seed:            int64(seed),
		}

		fmt.Println("\nGenerating...")
		startT := time.Now()
		res := maze.Generate(cfg)
		dur := time.Since(startT)

		fmt.Printf("Done in %v\n", dur)
		fmt.Printf("Grid Dimensions: %dx%d\n", res.Grid.Cols(), res.Grid.Height())
		if res.SolutionPath != nil {
			fmt.Printf("Solution Path Length: %d steps\n", len(res.SolutionPath))
		} else {
			fmt.Println("Status: Unsolvable (Isolated Start/Exit)")
		}
		fmt.Printf("Wall boxes after compression: %d\n", len(maze.CompressRuns(res.Grid)))

		if *yamlFlag {
			if err := printEntry(id, res); err != nil {
				fmt.Fprintf(os.Stderr, "yaml: %v\n", err)
			}
		} else {
			draw(res)
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

func draw(res maze.Result) {
	pathMap := make(map[maze.Point]bool, len(res.SolutionPath))
	for _, p := range res.SolutionPath {
		pathMap[p] = true
	}

	var sb strings.Builder
	for y := 0; y < res.Grid.Height(); y++ {
		for x := 0; x < res.Grid.Cols(); x++ {
			p := maze.Point{X: x, Y: y}
			switch {
			case p == res.Start:
				sb.WriteString("S")
			case p == res.Exit:
				sb.WriteString("E")
			case res.Grid.IsWall(x, y):
				sb.WriteString("█")
			case pathMap[p]:
				sb.WriteString("•")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

// printEntry writes res as a layout level that a pack file can include
func printEntry(id int, res maze.Result) error {
	layout := make([]string, res.Grid.Height())
	for y := range layout {
		row := make([]byte, res.Grid.Cols())
		for x := range row {
			switch res.Grid.At(x, y) {
			case maze.CellWall:
				row[x] = '#'
			case maze.CellStart:
				row[x] = 'S'
			case maze.CellExit:
				row[x] = 'E'
			default:
				row[x] = '.'
			}
		}
		layout[y] = string(row)
	}
	out, err := yaml.Marshal(level.Pack{Levels: []level.Spec{{
		ID:        id,
		Name:      fmt.Sprintf("Generated %d", id),
		SizeLabel: fmt.Sprintf("%dx%d", res.Grid.Cols(), res.Grid.Height()),
		Layout:    layout,
	}}})
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return min(1.0, max(0.0, v))
}
