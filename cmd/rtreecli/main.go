// Command rtreecli is an interactive shell over an in-memory rtree.Index,
// useful for exercising the index by hand or scripting simple checks.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sushant-115/rtreeindex/core/indexing/rtree"
	"github.com/sushant-115/rtreeindex/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{Level: "warn", Format: "console", OutputFile: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	idx, err := rtree.NewIndex[string](rtree.WithLogger[string](log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build index: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) > 0 {
		processCommand(idx, args)
		return
	}

	rl, err := readline.New("rtree> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start shell: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("rtree shell. Type 'help' for commands, 'exit' or 'quit' to leave.")
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("exiting.")
				return
			}
			if _, interrupted := err.(*readline.InterruptError); interrupted {
				fmt.Println("exiting.")
				return
			}
			fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		processCommand(idx, strings.Fields(line))
	}
}

func processCommand(idx *rtree.Index[string], args []string) {
	if len(args) == 0 {
		fmt.Println("error: no command provided.")
		return
	}

	switch strings.ToLower(args[0]) {
	case "insert":
		if len(args) != 6 {
			fmt.Println("usage: insert <minX> <minY> <maxX> <maxY> <item>")
			return
		}
		rect, err := parseRect(args[1:5])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		if err := idx.Add(rect, args[5]); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Println("ok")

	case "delete":
		if len(args) != 6 {
			fmt.Println("usage: delete <minX> <minY> <maxX> <maxY> <item>")
			return
		}
		rect, err := parseRect(args[1:5])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		if err := idx.Delete(rect, args[5]); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Println("ok")

	case "intersects":
		if len(args) != 5 {
			fmt.Println("usage: intersects <minX> <minY> <maxX> <maxY>")
			return
		}
		rect, err := parseRect(args[1:5])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		items, err := idx.Intersects(rect)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		printItems(items)

	case "contains":
		if len(args) != 5 {
			fmt.Println("usage: contains <minX> <minY> <maxX> <maxY>")
			return
		}
		rect, err := parseRect(args[1:5])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		items, err := idx.Contains(rect)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		printItems(items)

	case "nearest":
		if len(args) != 3 && len(args) != 4 {
			fmt.Println("usage: nearest <x> <y> [maxDistance]")
			return
		}
		x, err1 := strconv.Atoi(args[1])
		y, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil {
			fmt.Println("error: x and y must be integers")
			return
		}
		maxDistance := 0.0
		if len(args) == 4 {
			var err error
			maxDistance, err = strconv.ParseFloat(args[3], 64)
			if err != nil {
				fmt.Println("error: maxDistance must be a number")
				return
			}
		}
		items, err := idx.Nearest(rtree.Point{X: x, Y: y}, maxDistance)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		printItems(items)

	case "count":
		n, err := idx.Count()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Println(n)

	case "bounds":
		rect, ok, err := idx.Bounds()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		if !ok {
			fmt.Println("empty")
			return
		}
		fmt.Printf("%d %d %d %d\n", rect.MinX, rect.MinY, rect.MaxX, rect.MaxY)

	case "help":
		fmt.Println("Commands:")
		fmt.Println("  insert <minX> <minY> <maxX> <maxY> <item>")
		fmt.Println("  delete <minX> <minY> <maxX> <maxY> <item>")
		fmt.Println("  intersects <minX> <minY> <maxX> <maxY>")
		fmt.Println("  contains <minX> <minY> <maxX> <maxY>")
		fmt.Println("  nearest <x> <y> [maxDistance]")
		fmt.Println("  count")
		fmt.Println("  bounds")
		fmt.Println("  help")
		fmt.Println("  exit / quit")

	case "exit", "quit":
		fmt.Println("exiting.")
		os.Exit(0)

	default:
		fmt.Println("error: unknown command. type 'help' for a list of commands.")
	}
}

func parseRect(args []string) (rtree.Rectangle, error) {
	vals := make([]int, 4)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return rtree.Rectangle{}, fmt.Errorf("%q is not an integer", a)
		}
		vals[i] = v
	}
	return rtree.NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}

func printItems(items []string) {
	if len(items) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, item := range items {
		fmt.Println(item)
	}
}
